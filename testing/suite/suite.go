package suite

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const maxWaitDuration = 30 * time.Second

// Suite - a game manager over a fresh in-memory repository, for adapter tests.
type Suite struct {
	*testing.T
	Logger *slog.Logger

	Sessions repository.SessionRepository
	Games    *usecase.GameManager
}

func New(t *testing.T) (context.Context, *Suite) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sessions := repository.NewSessionRepository()

	return ctx, &Suite{
		T:        t,
		Logger:   logger,
		Sessions: sessions,
		Games:    usecase.NewGameManager(logger, sessions, tictactoe.DefaultBoardSize),
	}
}
