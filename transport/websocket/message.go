package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

const (
	actionNewGame = "game:new"
	actionGetGame = "game:get"
	actionClick   = "game:click"
	actionJump    = "game:jump"
	actionOrder   = "game:order"
	actionLeave   = "game:leave"
	actionUnknown = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action" validate:"required"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Game  *presenter.View `json:"game,omitempty"`
	Error string          `json:"error,omitempty"`
}

type newGameRequest struct {
	Size int `json:"size" validate:"omitempty,min=3,max=9"`
}

type gameRequest struct {
	GameID string `json:"game_id" validate:"required"`
}

type clickRequest struct {
	GameID string `json:"game_id" validate:"required"`
	Cell   *int   `json:"cell" validate:"required,min=0"`
}

type jumpRequest struct {
	GameID string `json:"game_id" validate:"required"`
	Step   *int   `json:"step" validate:"required,min=0"`
}
