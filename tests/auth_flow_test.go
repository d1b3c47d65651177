package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messengerpulse/internal/adapter/api"
	"messengerpulse/internal/adapter/api/handler"
	"messengerpulse/internal/adapter/api/middleware"
	"messengerpulse/internal/adapter/api/router"
	"messengerpulse/internal/domain/entity"
	"messengerpulse/internal/domain/service"
	"messengerpulse/internal/infrastructure/websocket"
	"messengerpulse/internal/usecase"
)

type stubSessionRepo struct {
	session *entity.Session
}

func (r *stubSessionRepo) Save(ctx context.Context, session *entity.Session) error {
	r.session = session
	return nil
}

func (r *stubSessionRepo) Load(ctx context.Context) (*entity.Session, error) {
	return r.session, nil
}

func (r *stubSessionRepo) Clear(ctx context.Context) error {
	r.session = nil
	return nil
}

type stubGateway struct{}

func (stubGateway) GetPageDetails(ctx context.Context, accessToken string) (*service.PageDetails, error) {
	return &service.PageDetails{ID: "PAGE", Name: "Test Page"}, nil
}

func (stubGateway) FetchConversations(ctx context.Context, pageID, accessToken string) ([]entity.Conversation, error) {
	return []entity.Conversation{{ID: "c1", PartnerID: "U1", PartnerName: "Ana"}}, nil
}

func (stubGateway) SendMessage(ctx context.Context, recipientID, text, accessToken string) error {
	return nil
}

type stubGenerator struct{}

func (stubGenerator) GenerateFollowUp(ctx context.Context, partnerName string, history []entity.Message) (string, error) {
	return "draft", nil
}

func (stubGenerator) SetAPIKey(key string) {}

func newTestServer(repo *stubSessionRepo) *echo.Echo {
	authUseCase := usecase.NewAuthUseCase(repo, stubGateway{}, "test-secret", time.Hour)
	inboxUseCase := usecase.NewInboxUseCase(stubGateway{}, nil)
	followUpUseCase := usecase.NewFollowUpUseCase(inboxUseCase, stubGenerator{})
	settingsUseCase := usecase.NewSettingsUseCase(stubGenerator{}, "")

	e := echo.New()
	e.Validator = api.NewValidator()

	router.Setup(e,
		handler.NewAuthHandler(authUseCase, inboxUseCase),
		handler.NewInboxHandler(inboxUseCase, followUpUseCase),
		handler.NewSettingsHandler(settingsUseCase),
		handler.NewWebSocketHandler(websocket.NewManager()),
		middleware.NewAuthMiddleware(authUseCase),
	)
	return e
}

func TestRefreshReconnectsWithoutBearerToken(t *testing.T) {
	// A browser reload after the JWT expired: the persisted credential is
	// all the client has, and refresh must be able to revive it.
	repo := &stubSessionRepo{session: &entity.Session{
		AccessToken: "stored-token",
		PageID:      "PAGE",
		PageName:    "Test Page",
	}}
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"token"`)
	assert.Contains(t, rec.Body.String(), `"page_id":"PAGE"`)
}

func TestRefreshWithoutStoredSession(t *testing.T) {
	e := newTestServer(&stubSessionRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestConversationsStillRequireBearerToken(t *testing.T) {
	repo := &stubSessionRepo{session: &entity.Session{
		AccessToken: "stored-token",
		PageID:      "PAGE",
		PageName:    "Test Page",
	}}
	e := newTestServer(repo)

	req := httptest.NewRequest(http.MethodGet, "/v1/conversations", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
