package tictactoe

import (
	"slices"
	"sync"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// winLines caches the catalog per board size. Catalogs are read-only once built.
var winLines sync.Map

// WinLines - the catalog of winning lines for an n×n board: rows top to bottom,
// columns left to right, then the main diagonal and the anti-diagonal.
// A line always spans the whole edge, so larger boards need n in a row.
// The caller owns the returned lines.
func WinLines(n int) []entity.WinLine {
	cached := catalog(n)

	lines := make([]entity.WinLine, len(cached))
	for i, line := range cached {
		lines[i] = slices.Clone(line)
	}

	return lines
}

// catalog - shared, never handed out of this file.
func catalog(n int) []entity.WinLine {
	if cached, ok := winLines.Load(n); ok {
		return cached.([]entity.WinLine) //nolint: forcetypeassert // only this function stores
	}

	lines := make([]entity.WinLine, 0, 2*n+2)

	for row := 0; row < n; row++ {
		line := make(entity.WinLine, n)
		for col := 0; col < n; col++ {
			line[col] = row*n + col
		}
		lines = append(lines, line)
	}

	for col := 0; col < n; col++ {
		line := make(entity.WinLine, n)
		for row := 0; row < n; row++ {
			line[row] = row*n + col
		}
		lines = append(lines, line)
	}

	diagonal := make(entity.WinLine, n)
	antiDiagonal := make(entity.WinLine, n)
	for i := 0; i < n; i++ {
		diagonal[i] = i*n + i
		antiDiagonal[i] = i*n + (n - 1 - i)
	}
	lines = append(lines, diagonal, antiDiagonal)

	actual, _ := winLines.LoadOrStore(n, lines)
	return actual.([]entity.WinLine) //nolint: forcetypeassert // only this function stores
}

// DetectWinner - returns the first line in catalog order fully held by one player.
func DetectWinner(board entity.Board) (entity.WinResult, bool) {
	size := board.Size()
	if size == 0 || size*size != len(board) {
		return entity.WinResult{}, false
	}

	for _, line := range catalog(size) {
		first := board[line[0]]
		if first == entity.None {
			continue
		}

		won := true
		for _, cell := range line[1:] {
			if board[cell] != first {
				won = false
				break
			}
		}

		if won {
			return entity.WinResult{Line: slices.Clone(line), Player: first}, true
		}
	}

	return entity.WinResult{}, false
}
