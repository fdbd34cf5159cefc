package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/validator"
)

const maxBodySize = 1 << 12

var errBadRequest = errors.New("bad request")

type gameUseCase interface {
	NewGame(ctx context.Context, size int) (presenter.View, error)
	GetGame(ctx context.Context, id string) (presenter.View, error)
	ClickCell(ctx context.Context, id string, cell int) (presenter.View, error)
	JumpTo(ctx context.Context, id string, step int) (presenter.View, error)
	ToggleOrder(ctx context.Context, id string) (presenter.View, error)
	DeleteGame(ctx context.Context, id string) error
}

type newGameRequest struct {
	Size int `json:"size" validate:"omitempty,min=3,max=9"`
}

type clickRequest struct {
	Cell *int `json:"cell" validate:"required,min=0"`
}

type jumpRequest struct {
	Step *int `json:"step" validate:"required,min=0"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandler struct {
	logger *slog.Logger
	games  gameUseCase
}

func newGameHandler(logger *slog.Logger, games gameUseCase) *gameHandler {
	return &gameHandler{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *gameHandler) create(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if err := decode(r, &req, true); err != nil {
		that.writeError(w, err)
		return
	}

	view, err := that.games.NewGame(r.Context(), req.Size)
	if err != nil {
		that.writeError(w, err)
		return
	}

	w.Header().Set("Location", "/games/"+view.ID)
	that.writeJSON(w, http.StatusCreated, view)
}

func (that *gameHandler) get(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *gameHandler) click(w http.ResponseWriter, r *http.Request) {
	var req clickRequest
	if err := decode(r, &req, false); err != nil {
		that.writeError(w, err)
		return
	}

	view, err := that.games.ClickCell(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *gameHandler) jump(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := decode(r, &req, false); err != nil {
		that.writeError(w, err)
		return
	}

	view, err := that.games.JumpTo(r.Context(), chi.URLParam(r, "id"), *req.Step)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *gameHandler) toggleOrder(w http.ResponseWriter, r *http.Request) {
	view, err := that.games.ToggleOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, view)
}

func (that *gameHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *gameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, status, errorResponse{Error: "Internal Server Error"})
		return
	}

	that.logger.Debug("request rejected", "status", status, "error", err)
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, apperror.ErrInvalidBoardSize):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// decode - reads a JSON body into dst and validates it. An empty body is accepted only when allowEmpty.
func decode(r *http.Request, dst any, allowEmpty bool) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(dst)
	switch {
	case errors.Is(err, io.EOF) && allowEmpty:
	case err != nil:
		return fmt.Errorf("%w: invalid json: %w", errBadRequest, err)
	}

	if err = validator.Get().Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", errBadRequest, err)
	}

	return nil
}
