package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"messengerpulse/internal/usecase"
)

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// Authenticate verifies the session JWT and loads the stored page
// credential into the request context under "session".
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		pageID, err := m.authUseCase.VerifyToken(parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		session, err := m.authUseCase.CurrentSession(c.Request().Context())
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Session no longer exists, log in again")
		}
		if session.PageID != pageID {
			return echo.NewHTTPError(http.StatusUnauthorized, "Token does not match the active session")
		}

		c.Set("session", session)
		return next(c)
	}
}
