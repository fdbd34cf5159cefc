package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// memSession keeps encoded snapshots, so callers never share memory with the store.
type memSession struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewSessionRepository - sessions live in process memory and are gone after a restart.
func NewSessionRepository() SessionRepository {
	return &memSession{
		sessions: make(map[string][]byte),
	}
}

func (that *memSession) CreateOrUpdate(ctx context.Context, session *entity.Session) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("could not save session: %w", err)
	}

	if session == nil || session.ID == "" {
		return apperror.ErrEmptySessionID
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	that.sessions[session.ID] = sessionJSON

	return nil
}

func (that *memSession) GetByID(ctx context.Context, id string) (*entity.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("could not get session: %w", err)
	}

	that.mu.RLock()
	sessionJSON, ok := that.sessions[id]
	that.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	var session entity.Session
	if err := json.Unmarshal(sessionJSON, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

func (that *memSession) DeleteByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to delete session by ID: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", apperror.ErrSessionNotFound, id)
	}

	delete(that.sessions, id)

	return nil
}

// Count - number of live sessions.
func (that *memSession) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("could not count sessions: %w", err)
	}

	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.sessions), nil
}
