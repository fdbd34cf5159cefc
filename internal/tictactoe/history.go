package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// TruncateAndAppend - keeps history[0..uptoStep] and appends entry. Steps after uptoStep are dropped.
// The result never shares its backing array with history.
func TruncateAndAppend(history entity.History, uptoStep int, entry entity.HistoryEntry) (entity.History, error) {
	if uptoStep < 0 || uptoStep >= len(history) {
		return nil, fmt.Errorf("%w: step %d of %d", apperror.ErrOutOfRange, uptoStep, len(history))
	}

	next := make(entity.History, uptoStep+2)
	copy(next, history[:uptoStep+1])
	next[uptoStep+1] = entry

	return next, nil
}

// EntryAt - bounds-checked lookup.
func EntryAt(history entity.History, step int) (entity.HistoryEntry, error) {
	if step < 0 || step >= len(history) {
		return entity.HistoryEntry{}, fmt.Errorf("%w: step %d of %d", apperror.ErrOutOfRange, step, len(history))
	}

	return history[step], nil
}

// DisplayOrder - returns items oldest first, or newest first when descending.
// The input slice is left as it is.
func DisplayOrder[T any](items []T, descending bool) []T {
	ordered := make([]T, len(items))
	copy(ordered, items)

	if descending {
		for i, j := 0, len(ordered)-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	return ordered
}
