package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	MinBoardSize     = 3
	MaxBoardSize     = 9
	DefaultBoardSize = 3
)

// NewGame - empty board of size×size at step 0.
func NewGame(size int) (entity.GameState, error) {
	if size < MinBoardSize || size > MaxBoardSize {
		return entity.GameState{}, fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, size)
	}

	return entity.GameState{
		Size: size,
		History: entity.History{
			{Board: entity.NewBoard(size), Cell: entity.NoCell},
		},
		CurrentStep: 0,
	}, nil
}

// ClickCell - plays the current player's mark on cell. Clicking an occupied cell, a cell
// outside the board or any cell of a decided board returns state unchanged.
// After a jump the steps beyond the cursor are discarded.
func ClickCell(state entity.GameState, cell int) entity.GameState {
	board := CurrentBoard(state)

	next, err := ApplyMove(board, cell, markForStep(state.CurrentStep))
	if err != nil {
		return state
	}

	history, err := TruncateAndAppend(state.History, state.CurrentStep, entity.HistoryEntry{Board: next, Cell: cell})
	if err != nil {
		return state
	}

	return entity.GameState{
		Size:        state.Size,
		History:     history,
		CurrentStep: state.CurrentStep + 1,
	}
}

// JumpTo - moves the cursor to step. History is left as it is.
func JumpTo(state entity.GameState, step int) (entity.GameState, error) {
	if _, err := EntryAt(state.History, step); err != nil {
		return state, fmt.Errorf("failed to jump: %w", err)
	}

	return entity.GameState{
		Size:        state.Size,
		History:     state.History,
		CurrentStep: step,
	}, nil
}

// CurrentBoard - the board at the cursor.
func CurrentBoard(state entity.GameState) entity.Board {
	entry, err := EntryAt(state.History, state.CurrentStep)
	if err != nil {
		return entity.NewBoard(state.Size)
	}

	return entry.Board
}

// CurrentTurn - X moves on even steps, O on odd ones.
func CurrentTurn(state entity.GameState) entity.Mark {
	return markForStep(state.CurrentStep)
}

// Status - derived from the board at the cursor on every call.
func Status(state entity.GameState) entity.Status {
	board := CurrentBoard(state)

	if winner, ok := DetectWinner(board); ok {
		return entity.Status{Kind: entity.StatusWinner, Player: winner.Player}
	}

	if state.CurrentStep == len(board) {
		return entity.Status{Kind: entity.StatusDraw}
	}

	return entity.Status{Kind: entity.StatusInProgress, Player: CurrentTurn(state)}
}

// WinningLine - the line that decided the board at the cursor, if any.
func WinningLine(state entity.GameState) (entity.WinLine, bool) {
	winner, ok := DetectWinner(CurrentBoard(state))
	if !ok {
		return nil, false
	}

	return winner.Line, true
}

// HistoryDescriptions - one label per step in stored order, with 1-indexed row and column.
func HistoryDescriptions(state entity.GameState) []entity.HistoryItem {
	items := make([]entity.HistoryItem, 0, len(state.History))

	for step, entry := range state.History {
		if step == 0 || entry.Cell == entity.NoCell {
			items = append(items, entity.HistoryItem{Step: step, Label: "Go to game start"})
			continue
		}

		size := state.Size
		if size <= 0 {
			size = entry.Board.Size()
		}
		if size <= 0 {
			items = append(items, entity.HistoryItem{Step: step, Label: fmt.Sprintf("Go to move #%d", step)})
			continue
		}

		row, col := entry.Cell/size+1, entry.Cell%size+1
		items = append(items, entity.HistoryItem{
			Step:  step,
			Label: fmt.Sprintf("Go to move #%d (%d, %d)", step, row, col),
		})
	}

	return items
}

func markForStep(step int) entity.Mark {
	if step%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}
