package entity

import (
	"encoding/json"
	"fmt"
)

// Mark - contents of a cell: empty or one of the two players.
type Mark uint8

const (
	None Mark = iota
	PlayerX
	PlayerO
)

// NoCell marks the initial history entry, which was not produced by a move.
const NoCell = -1

func (that Mark) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return ""
	}
}

// Opponent - returns the other player's mark. None has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return None
	}
}

func (that Mark) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("mark must be a string: %w", err)
	}

	switch raw {
	case "":
		*that = None
	case "X":
		*that = PlayerX
	case "O":
		*that = PlayerO
	default:
		return fmt.Errorf("unknown mark %q", raw)
	}

	return nil
}

// Board - row-major cells of an N×N grid.
type Board []Mark

func NewBoard(size int) Board {
	return make(Board, size*size)
}

// Clone - returns a copy that shares no memory with the receiver.
func (that Board) Clone() Board {
	board := make(Board, len(that))
	copy(board, that)
	return board
}

// Size - edge length of the grid.
func (that Board) Size() int {
	size := 0
	for size*size < len(that) {
		size++
	}
	return size
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == None {
			return false
		}
	}
	return true
}

// WinLine - indices of the cells forming one row, column or diagonal.
type WinLine []int

func (that WinLine) Contains(cell int) bool {
	for _, idx := range that {
		if idx == cell {
			return true
		}
	}
	return false
}

type WinResult struct {
	Line   WinLine `json:"line"`
	Player Mark    `json:"player"`
}

// HistoryEntry - the board right after the move played on Cell.
type HistoryEntry struct {
	Board Board `json:"board"`
	Cell  int   `json:"cell"`
}

type History []HistoryEntry

// GameState - the whole game: every board seen so far and the step currently shown.
type GameState struct {
	Size        int     `json:"size"`
	History     History `json:"history"`
	CurrentStep int     `json:"current_step"`
}

type StatusKind uint8

const (
	StatusInProgress StatusKind = iota
	StatusWinner
	StatusDraw
)

// Status - outcome of the current board. Player is the winner or the player to move.
type Status struct {
	Kind   StatusKind
	Player Mark
}

func (that Status) String() string {
	switch that.Kind {
	case StatusWinner:
		return "Winner: " + that.Player.String()
	case StatusDraw:
		return "Draw"
	default:
		return "Next player: " + that.Player.String()
	}
}

func (that Status) IsFinished() bool {
	return that.Kind != StatusInProgress
}

// HistoryItem - a labelled link to one step of the history.
type HistoryItem struct {
	Step  int    `json:"step"`
	Label string `json:"label"`
}
