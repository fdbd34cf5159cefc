package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// Intent - a user action forwarded by a view.
type Intent interface {
	intent()
}

type ClickIntent struct {
	Cell int
}

type JumpIntent struct {
	Step int
}

// ToggleOrderIntent flips how the history list is shown. It never changes the game.
type ToggleOrderIntent struct{}

func (ClickIntent) intent()       {}
func (JumpIntent) intent()        {}
func (ToggleOrderIntent) intent() {}

// Dispatch - single entry point for intents.
func Dispatch(state entity.GameState, in Intent) (entity.GameState, error) {
	switch in := in.(type) {
	case ClickIntent:
		return ClickCell(state, in.Cell), nil
	case JumpIntent:
		return JumpTo(state, in.Step)
	case ToggleOrderIntent:
		return state, nil
	default:
		return state, fmt.Errorf("%w: %T", apperror.ErrUnknownIntent, in)
	}
}
