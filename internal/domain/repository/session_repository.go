package repository

import (
	"context"

	"messengerpulse/internal/domain/entity"
)

// SessionRepository persists the single page credential blob across
// restarts. Load returns (nil, nil) when no session is stored.
type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session) error
	Load(ctx context.Context) (*entity.Session, error)
	Clear(ctx context.Context) error
}
