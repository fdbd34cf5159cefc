package terminal

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

// Renderer - draws a View as text. Colours follow the profile of the output.
type Renderer struct {
	output *termenv.Output
}

func NewRenderer(output *termenv.Output) *Renderer {
	return &Renderer{output: output}
}

func (that *Renderer) Render(view presenter.View) string {
	var sb strings.Builder

	that.renderBoard(&sb, view)
	sb.WriteString("\n")
	sb.WriteString(that.output.String(view.Status).Bold().String())
	sb.WriteString("\n\n")
	that.renderHistory(&sb, view)

	return sb.String()
}

func (that *Renderer) renderBoard(sb *strings.Builder, view presenter.View) {
	separator := strings.Repeat("---+", view.Size)
	separator = separator[:len(separator)-1]

	for r, row := range view.Rows {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, " "+that.cell(cell)+" ")
		}

		sb.WriteString(strings.Join(cells, "|"))
		sb.WriteString("\n")

		if r < len(view.Rows)-1 {
			sb.WriteString(separator)
			sb.WriteString("\n")
		}
	}
}

func (that *Renderer) cell(cell presenter.Cell) string {
	if cell.Mark == entity.None {
		return that.output.String(".").Faint().String()
	}

	style := that.output.String(cell.Mark.String())
	switch cell.Mark {
	case entity.PlayerX:
		style = style.Foreground(that.output.Color("4"))
	case entity.PlayerO:
		style = style.Foreground(that.output.Color("1"))
	case entity.None:
	}

	if cell.Winning {
		style = style.Bold().Reverse()
	}

	return style.String()
}

func (that *Renderer) renderHistory(sb *strings.Builder, view presenter.View) {
	for _, link := range view.History {
		marker := " "
		label := that.output.String(link.Label)
		if link.Active {
			marker = ">"
			label = label.Bold()
		}

		fmt.Fprintf(sb, "%s %2d. %s\n", marker, link.Step, label)
	}

	fmt.Fprintf(sb, "[order] %s\n", view.OrderLabel)
}
