package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

func newSession(t *testing.T, id string) *entity.Session {
	t.Helper()

	state, err := tictactoe.NewGame(tictactoe.DefaultBoardSize)
	require.NoError(t, err)

	return &entity.Session{ID: id, State: state}
}

func TestSessionRepository_CreateOrUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a copy", func(t *testing.T) {
		repo := NewSessionRepository()

		// Given: a session with an empty board
		session := newSession(t, "123")

		// When: CreateOrUpdate is called and the caller keeps mutating its value
		err := repo.CreateOrUpdate(ctx, session)
		require.NoError(t, err)
		session.State.History[0].Board[0] = entity.PlayerX
		session.Descending = true

		// Then: the stored session is unaffected
		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.None, stored.State.History[0].Board[0])
		assert.False(t, stored.Descending)
	})

	t.Run("Overwrites an existing session", func(t *testing.T) {
		repo := NewSessionRepository()
		session := newSession(t, "123")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		session.State = tictactoe.ClickCell(session.State, 4)
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.State.CurrentStep)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Rejects an empty id", func(t *testing.T) {
		repo := NewSessionRepository()

		err := repo.CreateOrUpdate(ctx, &entity.Session{})

		require.ErrorIs(t, err, apperror.ErrEmptySessionID)
	})

	t.Run("Canceled context", func(t *testing.T) {
		repo := NewSessionRepository()
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		err := repo.CreateOrUpdate(canceled, newSession(t, "123"))

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestSessionRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("GetByID_Success", func(t *testing.T) {
		repo := NewSessionRepository()
		session := newSession(t, "123")
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: GetByID is called twice
		first, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		second, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)

		// Then: both match the saved session but share no boards
		assert.Equal(t, session, first)
		first.State.History[0].Board[0] = entity.PlayerO
		assert.Equal(t, entity.None, second.State.History[0].Board[0])
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := NewSessionRepository()

		session, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Nil(t, session)
	})
}

func TestSessionRepository_DeleteByID(t *testing.T) {
	ctx := context.Background()

	t.Run("DeleteByID_Success", func(t *testing.T) {
		repo := NewSessionRepository()
		require.NoError(t, repo.CreateOrUpdate(ctx, newSession(t, "123")))

		err := repo.DeleteByID(ctx, "123")
		require.NoError(t, err)

		_, err = repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		repo := NewSessionRepository()

		err := repo.DeleteByID(ctx, "123")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}

func TestSessionRepository_Concurrent(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			id := string(rune('a' + i))
			assert.NoError(t, repo.CreateOrUpdate(ctx, newSession(t, id)))
			_, err := repo.GetByID(ctx, id)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}
