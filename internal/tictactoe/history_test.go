package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func historyOf(cells ...int) entity.History {
	board := entity.NewBoard(3)
	history := entity.History{{Board: board, Cell: entity.NoCell}}

	for i, cell := range cells {
		board = board.Clone()
		board[cell] = markForStep(i)
		history = append(history, entity.HistoryEntry{Board: board, Cell: cell})
	}

	return history
}

func TestTruncateAndAppend(t *testing.T) {
	t.Run("Appends at the tail", func(t *testing.T) {
		history := historyOf(0, 4)
		entry := entity.HistoryEntry{Board: entity.NewBoard(3), Cell: 8}

		next, err := TruncateAndAppend(history, 2, entry)

		require.NoError(t, err)
		require.Len(t, next, 4)
		assert.Equal(t, 8, next[3].Cell)
	})

	t.Run("Drops the steps beyond the cursor", func(t *testing.T) {
		// Given: a history of three moves
		history := historyOf(0, 4, 8)
		entry := entity.HistoryEntry{Board: entity.NewBoard(3), Cell: 2}

		// When: a move is appended after step 1
		next, err := TruncateAndAppend(history, 1, entry)

		// Then: steps 2 and 3 are gone
		require.NoError(t, err)
		require.Len(t, next, 3)
		assert.Equal(t, 0, next[1].Cell)
		assert.Equal(t, 2, next[2].Cell)
	})

	t.Run("Does not write into the input backing array", func(t *testing.T) {
		// Given: a history with spare capacity
		history := make(entity.History, 0, 8)
		history = append(history, historyOf(0, 4)...)

		// When: a new branch starts at step 1
		_, err := TruncateAndAppend(history, 1, entity.HistoryEntry{Board: entity.NewBoard(3), Cell: 7})
		require.NoError(t, err)

		// Then: the old step 2 is still there
		assert.Equal(t, 4, history[2].Cell)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := TruncateAndAppend(historyOf(0), 5, entity.HistoryEntry{})
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)
	})
}

func TestEntryAt(t *testing.T) {
	history := historyOf(0, 4)

	t.Run("Returns the entry", func(t *testing.T) {
		entry, err := EntryAt(history, 2)

		require.NoError(t, err)
		assert.Equal(t, 4, entry.Cell)
	})

	t.Run("Out of range", func(t *testing.T) {
		_, err := EntryAt(history, 3)
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)

		_, err = EntryAt(history, -1)
		assert.ErrorIs(t, err, apperror.ErrOutOfRange)
	})
}

func TestDisplayOrder(t *testing.T) {
	items := []entity.HistoryItem{{Step: 0}, {Step: 1}, {Step: 2}}

	t.Run("Ascending keeps stored order", func(t *testing.T) {
		assert.Equal(t, items, DisplayOrder(items, false))
	})

	t.Run("Descending reverses without touching the input", func(t *testing.T) {
		reversed := DisplayOrder(items, true)

		assert.Equal(t, []entity.HistoryItem{{Step: 2}, {Step: 1}, {Step: 0}}, reversed)
		assert.Equal(t, 0, items[0].Step)
	})

	t.Run("Reversing twice restores the order", func(t *testing.T) {
		assert.Equal(t, items, DisplayOrder(DisplayOrder(items, true), true))
	})

	t.Run("Empty list", func(t *testing.T) {
		assert.Empty(t, DisplayOrder([]entity.HistoryItem{}, true))
	})
}
