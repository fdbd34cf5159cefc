package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const instrumentationName = "github.com/rocketscienceinc/tictactoe-history/internal/usecase"

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// GameManager - the only writer of sessions. Intents for one session are applied one at a time.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	defaultSize int

	locksMu sync.Mutex
	locks   map[string]*sessionLock
	now     func() time.Time

	tracer   trace.Tracer
	intents  metric.Int64Counter
	finished metric.Int64Counter
}

// sessionLock - lives in GameManager.locks only while refs > 0.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

type Option func(*GameManager)

func WithTracerProvider(provider trace.TracerProvider) Option {
	return func(that *GameManager) {
		that.tracer = provider.Tracer(instrumentationName)
	}
}

func WithMeterProvider(provider metric.MeterProvider) Option {
	return func(that *GameManager) {
		that.initMetrics(provider.Meter(instrumentationName))
	}
}

func WithClock(now func() time.Time) Option {
	return func(that *GameManager) {
		that.now = now
	}
}

func NewGameManager(logger *slog.Logger, sessionRepo sessionRepo, defaultSize int, opts ...Option) *GameManager {
	manager := &GameManager{
		logger:      logger.With("component", "game_manager"),
		sessionRepo: sessionRepo,
		defaultSize: defaultSize,
		locks:       make(map[string]*sessionLock),
		now:         time.Now,
		tracer:      otel.Tracer(instrumentationName),
	}
	manager.initMetrics(otel.Meter(instrumentationName))

	for _, opt := range opts {
		opt(manager)
	}

	return manager
}

// NewGame - starts a session. Size 0 means the configured default.
func (that *GameManager) NewGame(ctx context.Context, size int) (presenter.View, error) {
	ctx, span := that.tracer.Start(ctx, "GameManager.NewGame")
	defer span.End()

	log := that.logger.With("method", "NewGame")

	if size == 0 {
		size = that.defaultSize
	}

	state, err := tictactoe.NewGame(size)
	if err != nil {
		recordError(span, err)
		return presenter.View{}, fmt.Errorf("failed to create game: %w", err)
	}

	now := that.now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		State:     state,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		recordError(span, err)
		return presenter.View{}, fmt.Errorf("failed to save session: %w", err)
	}

	span.SetAttributes(attribute.String("session.id", session.ID), attribute.Int("board.size", size))
	log.Info("game created", "session_id", session.ID, "size", size)

	return that.view(session), nil
}

// GetGame - current view of a session.
func (that *GameManager) GetGame(ctx context.Context, id string) (presenter.View, error) {
	ctx, span := that.tracer.Start(ctx, "GameManager.GetGame", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return presenter.View{}, fmt.Errorf("failed to get session: %w", err)
	}

	return that.view(session), nil
}

func (that *GameManager) ClickCell(ctx context.Context, id string, cell int) (presenter.View, error) {
	return that.Apply(ctx, id, tictactoe.ClickIntent{Cell: cell})
}

func (that *GameManager) JumpTo(ctx context.Context, id string, step int) (presenter.View, error) {
	return that.Apply(ctx, id, tictactoe.JumpIntent{Step: step})
}

func (that *GameManager) ToggleOrder(ctx context.Context, id string) (presenter.View, error) {
	return that.Apply(ctx, id, tictactoe.ToggleOrderIntent{})
}

// Apply - runs one intent against a session: read, dispatch, write, under the session lock.
func (that *GameManager) Apply(ctx context.Context, id string, in tictactoe.Intent) (presenter.View, error) {
	ctx, span := that.tracer.Start(ctx, "GameManager.Apply", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.String("intent", intentName(in)),
	))
	defer span.End()

	log := that.logger.With("method", "Apply", "session_id", id, "intent", intentName(in))

	unlock := that.lock(id)
	defer unlock()

	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return presenter.View{}, fmt.Errorf("failed to get session: %w", err)
	}

	state, err := tictactoe.Dispatch(session.State, in)
	if err != nil {
		recordError(span, err)
		log.Debug("intent rejected", "error", err)
		return presenter.View{}, fmt.Errorf("failed to apply intent: %w", err)
	}

	if _, ok := in.(tictactoe.ToggleOrderIntent); ok {
		session.Descending = !session.Descending
	}

	wasFinished := tictactoe.Status(session.State).IsFinished()
	changed := session.State.CurrentStep != state.CurrentStep || len(session.State.History) != len(state.History)

	that.intents.Add(ctx, 1, metric.WithAttributes(
		attribute.String("intent", intentName(in)),
		attribute.Bool("changed", changed),
	))

	session.State = state
	session.UpdatedAt = that.now()

	if err = that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		recordError(span, err)
		return presenter.View{}, fmt.Errorf("failed to update session: %w", err)
	}

	status := tictactoe.Status(state)
	if status.IsFinished() && !wasFinished {
		that.finished.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status.String())))
		log.Info("game decided", "status", status.String(), "step", state.CurrentStep)
	} else {
		log.Debug("intent applied", "step", state.CurrentStep, "changed", changed)
	}

	span.SetAttributes(attribute.Int("game.step", state.CurrentStep), attribute.Bool("game.changed", changed))

	return that.view(session), nil
}

// DeleteGame - drops a session.
func (that *GameManager) DeleteGame(ctx context.Context, id string) error {
	ctx, span := that.tracer.Start(ctx, "GameManager.DeleteGame", trace.WithAttributes(attribute.String("session.id", id)))
	defer span.End()

	log := that.logger.With("method", "DeleteGame")

	unlock := that.lock(id)
	defer unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		recordError(span, err)
		return fmt.Errorf("failed to delete session: %w", err)
	}

	log.Info("game deleted", "session_id", id)

	return nil
}

func (that *GameManager) view(session *entity.Session) presenter.View {
	return presenter.Build(session.ID, session.State, session.Descending)
}

// lock - serialises work on one session id. The entry is dropped by the last holder, so ids
// that never existed leave nothing behind.
func (that *GameManager) lock(id string) func() {
	that.locksMu.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &sessionLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.locksMu.Unlock()

	entry.mu.Lock()

	return func() {
		entry.mu.Unlock()

		that.locksMu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.locksMu.Unlock()
	}
}

func (that *GameManager) initMetrics(meter metric.Meter) {
	var err error

	that.intents, err = meter.Int64Counter("game.intents",
		metric.WithDescription("Intents applied to game sessions"))
	if err != nil {
		that.logger.Error("failed to create intents counter", "error", err)
	}

	that.finished, err = meter.Int64Counter("game.finished",
		metric.WithDescription("Games that reached a winner or a draw"))
	if err != nil {
		that.logger.Error("failed to create finished counter", "error", err)
	}

	_, err = meter.Int64ObservableGauge("game.sessions",
		metric.WithDescription("Sessions currently held in memory"),
		metric.WithInt64Callback(that.observeSessions))
	if err != nil {
		that.logger.Error("failed to create sessions gauge", "error", err)
	}
}

func (that *GameManager) observeSessions(ctx context.Context, observer metric.Int64Observer) error {
	count, err := that.sessionRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count sessions: %w", err)
	}

	observer.Observe(int64(count))

	return nil
}

func intentName(in tictactoe.Intent) string {
	switch in.(type) {
	case tictactoe.ClickIntent:
		return "click"
	case tictactoe.JumpIntent:
		return "jump"
	case tictactoe.ToggleOrderIntent:
		return "order"
	default:
		return "unknown"
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)

	if errors.Is(err, apperror.ErrSessionNotFound) {
		span.SetStatus(codes.Error, "session not found")
		return
	}
	span.SetStatus(codes.Error, err.Error())
}
