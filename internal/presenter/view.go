package presenter

import (
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

const (
	labelNewestFirst = "View newest first"
	labelOldestFirst = "View oldest first"
)

type Cell struct {
	Index   int         `json:"index"`
	Mark    entity.Mark `json:"mark"`
	Winning bool        `json:"winning"`
}

type HistoryLink struct {
	Step   int    `json:"step"`
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// View - read-only snapshot of one session, ready to be rendered by any adapter.
type View struct {
	ID          string        `json:"id"`
	Size        int           `json:"size"`
	Rows        [][]Cell      `json:"rows"`
	Status      string        `json:"status"`
	Finished    bool          `json:"finished"`
	Winner      entity.Mark   `json:"winner"`
	NextPlayer  entity.Mark   `json:"next_player"`
	CurrentStep int           `json:"current_step"`
	History     []HistoryLink `json:"history"`
	Descending  bool          `json:"descending"`
	OrderLabel  string        `json:"order_label"`
}

// Build - derives everything from state; nothing here is stored back.
func Build(id string, state entity.GameState, descending bool) View {
	board := tictactoe.CurrentBoard(state)
	line, _ := tictactoe.WinningLine(state)
	status := tictactoe.Status(state)

	view := View{
		ID:          id,
		Size:        state.Size,
		Rows:        buildRows(board, state.Size, line),
		Status:      status.String(),
		Finished:    status.IsFinished(),
		CurrentStep: state.CurrentStep,
		History:     buildHistory(state, descending),
		Descending:  descending,
		OrderLabel:  OrderLabel(descending),
	}

	switch status.Kind {
	case entity.StatusWinner:
		view.Winner = status.Player
	case entity.StatusInProgress:
		view.NextPlayer = status.Player
	case entity.StatusDraw:
	}

	return view
}

// OrderLabel - text of the button that flips the history order.
func OrderLabel(descending bool) string {
	if descending {
		return labelOldestFirst
	}
	return labelNewestFirst
}

// Cell - looks up a cell by its row-major index.
func (that View) Cell(index int) (Cell, bool) {
	if that.Size == 0 || index < 0 || index >= that.Size*that.Size {
		return Cell{}, false
	}
	return that.Rows[index/that.Size][index%that.Size], true
}

func buildRows(board entity.Board, size int, line entity.WinLine) [][]Cell {
	rows := make([][]Cell, size)

	for row := 0; row < size; row++ {
		rows[row] = make([]Cell, size)
		for col := 0; col < size; col++ {
			index := row*size + col

			var mark entity.Mark
			if index < len(board) {
				mark = board[index]
			}

			rows[row][col] = Cell{
				Index:   index,
				Mark:    mark,
				Winning: line.Contains(index),
			}
		}
	}

	return rows
}

func buildHistory(state entity.GameState, descending bool) []HistoryLink {
	items := tictactoe.HistoryDescriptions(state)

	links := make([]HistoryLink, 0, len(items))
	for _, item := range items {
		links = append(links, HistoryLink{
			Step:   item.Step,
			Label:  item.Label,
			Active: item.Step == state.CurrentStep,
		})
	}

	return tictactoe.DisplayOrder(links, descending)
}
