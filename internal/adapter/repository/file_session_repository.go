package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"messengerpulse/internal/domain/entity"
	apperrors "messengerpulse/pkg/errors"
)

// FileSessionRepository persists the credential blob as a single JSON file,
// the server-side equivalent of the browser's localStorage entry. The file
// is rewritten wholesale on every change and removed on logout.
type FileSessionRepository struct {
	path  string
	mutex sync.Mutex
}

func NewFileSessionRepository(path string) *FileSessionRepository {
	return &FileSessionRepository{path: path}
}

func (r *FileSessionRepository) Save(ctx context.Context, session *entity.Session) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return apperrors.Internal("Failed to serialize session", err)
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return apperrors.Internal("Failed to create session directory", err)
	}
	// 0600: the blob contains the page access token
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return apperrors.Internal("Failed to persist session", err)
	}
	return nil
}

func (r *FileSessionRepository) Load(ctx context.Context) (*entity.Session, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.Internal("Failed to read session", err)
	}

	var session entity.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, apperrors.Internal("Failed to decode session", err)
	}
	return &session, nil
}

func (r *FileSessionRepository) Clear(ctx context.Context) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Internal("Failed to clear session", err)
	}
	return nil
}
