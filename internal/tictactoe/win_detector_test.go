package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

const (
	x = entity.PlayerX
	o = entity.PlayerO
	e = entity.None
)

func TestWinLines(t *testing.T) {
	t.Run("3x3 catalog is rows, columns, diagonals", func(t *testing.T) {
		expected := []entity.WinLine{
			{0, 1, 2},
			{3, 4, 5},
			{6, 7, 8},
			{0, 3, 6},
			{1, 4, 7},
			{2, 5, 8},
			{0, 4, 8},
			{2, 4, 6},
		}

		assert.Equal(t, expected, WinLines(3))
	})

	t.Run("4x4 catalog is computed from the size", func(t *testing.T) {
		lines := WinLines(4)

		require.Len(t, lines, 10)
		for _, line := range lines {
			assert.Len(t, line, 4)
		}
		assert.Equal(t, entity.WinLine{0, 5, 10, 15}, lines[8])
		assert.Equal(t, entity.WinLine{3, 6, 9, 12}, lines[9])
	})

	t.Run("Catalog is built once per size", func(t *testing.T) {
		first := catalog(5)
		second := catalog(5)

		assert.Same(t, &first[0][0], &second[0][0])
	})

	t.Run("Returned lines are copies", func(t *testing.T) {
		// Given: a caller that overwrites the lines it received
		lines := WinLines(3)
		lines[0][0] = 8

		// Then: the next caller sees the untouched catalog
		assert.Equal(t, entity.WinLine{0, 1, 2}, WinLines(3)[0])
	})
}

func TestDetectWinner_ResultIsOwnedByCaller(t *testing.T) {
	// Given: X holds the top row
	board := entity.Board{x, x, x, o, o, e, e, e, e}
	result, ok := DetectWinner(board)
	require.True(t, ok)

	// When: the caller writes into the returned line
	result.Line[0] = 8

	// Then: detection still finds the top row
	again, ok := DetectWinner(board)
	require.True(t, ok)
	assert.Equal(t, entity.WinLine{0, 1, 2}, again.Line)

	// Then: the same holds for the line exposed by the controller
	state := entity.GameState{Size: 3, History: entity.History{{Board: board, Cell: 2}}}
	line, ok := WinningLine(state)
	require.True(t, ok)
	line[1] = 7

	again, ok = DetectWinner(board)
	require.True(t, ok)
	assert.Equal(t, entity.WinLine{0, 1, 2}, again.Line)
}

func TestDetectWinner(t *testing.T) {
	tests := []struct {
		name   string
		board  entity.Board
		line   entity.WinLine
		player entity.Mark
		won    bool
	}{
		{
			name:  "Empty board",
			board: entity.NewBoard(3),
		},
		{
			name:   "Top row X",
			board:  entity.Board{x, x, x, e, e, e, e, e, e},
			line:   entity.WinLine{0, 1, 2},
			player: x,
			won:    true,
		},
		{
			name:   "Second column O",
			board:  entity.Board{x, o, e, x, o, e, e, o, x},
			line:   entity.WinLine{1, 4, 7},
			player: o,
			won:    true,
		},
		{
			name:   "Anti-diagonal O",
			board:  entity.Board{x, x, o, e, o, e, o, e, x},
			line:   entity.WinLine{2, 4, 6},
			player: o,
			won:    true,
		},
		{
			name:   "Row wins over diagonal in catalog order",
			board:  entity.Board{x, x, x, e, x, e, e, e, x},
			line:   entity.WinLine{0, 1, 2},
			player: x,
			won:    true,
		},
		{
			name:  "Full board without a line",
			board: entity.Board{x, o, x, x, o, o, o, x, x},
		},
		{
			name:  "Mixed line is not a win",
			board: entity.Board{x, x, o, e, e, e, e, e, e},
		},
		{
			name:   "4x4 main diagonal",
			board:  entity.Board{x, o, e, e, e, x, o, e, e, e, x, o, e, e, e, x},
			line:   entity.WinLine{0, 5, 10, 15},
			player: x,
			won:    true,
		},
		{
			name:  "Board that is not square",
			board: entity.Board{x, x, x, x, x},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, won := DetectWinner(tt.board)

			require.Equal(t, tt.won, won)
			if tt.won {
				assert.Equal(t, tt.line, result.Line)
				assert.Equal(t, tt.player, result.Player)
			}
		})
	}
}
