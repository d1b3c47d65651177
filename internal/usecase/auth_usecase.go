package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/domain/repository"
	"messengerpulse/internal/domain/service"
	apperrors "messengerpulse/pkg/errors"
	"messengerpulse/pkg/logger"
)

type AuthUseCase struct {
	sessionRepo repository.SessionRepository
	facebook    FacebookGateway
	jwtSecret   []byte
	jwtExpiry   time.Duration
}

func NewAuthUseCase(sessionRepo repository.SessionRepository, facebook FacebookGateway, jwtSecret string, jwtExpiry time.Duration) *AuthUseCase {
	return &AuthUseCase{
		sessionRepo: sessionRepo,
		facebook:    facebook,
		jwtSecret:   []byte(jwtSecret),
		jwtExpiry:   jwtExpiry,
	}
}

type AuthResult struct {
	Session *entity.Session
	Token   string
}

// Login validates the supplied page token against the Graph API and stores
// the resulting credential blob wholesale. The page ID always comes from
// the API, never from user input. An empty token switches to demo mode by
// minting a mock credential.
func (uc *AuthUseCase) Login(ctx context.Context, accessToken string) (*AuthResult, error) {
	if accessToken == "" {
		accessToken = fmt.Sprintf("%saccess_token_%d", service.MockTokenPrefix, time.Now().UnixMilli())
		logger.Info("No access token supplied, starting demo mode")
	}

	details, err := uc.facebook.GetPageDetails(ctx, accessToken)
	if err != nil {
		logger.Warn("Login failed: %v", err)
		return nil, err
	}

	session := &entity.Session{
		AccessToken: accessToken,
		PageID:      details.ID,
		PageName:    details.Name,
	}
	if err := uc.sessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}

	token, err := uc.signToken(details.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}

	return &AuthResult{Session: session, Token: token}, nil
}

// Refresh re-validates the stored credential and replaces the session with
// the canonical identity the API returns.
func (uc *AuthUseCase) Refresh(ctx context.Context) (*AuthResult, error) {
	session, err := uc.sessionRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.Unauthorized("No stored session; log in first", nil)
	}

	details, err := uc.facebook.GetPageDetails(ctx, session.AccessToken)
	if err != nil {
		logger.Warn("Session refresh failed: %v", err)
		return nil, err
	}

	refreshed := &entity.Session{
		AccessToken: session.AccessToken,
		PageID:      details.ID,
		PageName:    details.Name,
	}
	if err := uc.sessionRepo.Save(ctx, refreshed); err != nil {
		return nil, err
	}

	token, err := uc.signToken(details.ID)
	if err != nil {
		return nil, apperrors.Internal("Failed to issue session token", err)
	}

	return &AuthResult{Session: refreshed, Token: token}, nil
}

func (uc *AuthUseCase) Logout(ctx context.Context) error {
	return uc.sessionRepo.Clear(ctx)
}

// CurrentSession loads the stored credential for request handling.
func (uc *AuthUseCase) CurrentSession(ctx context.Context) (*entity.Session, error) {
	session, err := uc.sessionRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperrors.Unauthorized("No active session", nil)
	}
	return session, nil
}

func (uc *AuthUseCase) signToken(pageID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   pageID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(uc.jwtExpiry)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.jwtSecret)
}

// VerifyToken checks a session JWT and returns the page ID it was issued for.
func (uc *AuthUseCase) VerifyToken(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return uc.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("Invalid or expired token", err)
	}
	return claims.Subject, nil
}
