package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// ApplyMove - returns a copy of board with mark placed on cell. The input board is never modified.
func ApplyMove(board entity.Board, cell int, mark entity.Mark) (entity.Board, error) {
	if err := validateMove(board, cell, mark); err != nil {
		return nil, err
	}

	next := board.Clone()
	next[cell] = mark

	return next, nil
}

// validateMove - checks if the move is valid.
func validateMove(board entity.Board, cell int, mark entity.Mark) error {
	if cell < 0 || cell >= len(board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if mark != entity.PlayerX && mark != entity.PlayerO {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMark, mark)
	}

	if _, won := DetectWinner(board); won {
		return apperror.ErrGameFinished
	}

	if board[cell] != entity.None {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	return nil
}
