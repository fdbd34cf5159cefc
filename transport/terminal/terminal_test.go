package terminal

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/testing/suite"
)

func plainOutput(w io.Writer) *termenv.Output {
	return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
}

func TestRenderer_Render(t *testing.T) {
	// Given: X at the centre, O top-left
	state, err := tictactoe.NewGame(tictactoe.DefaultBoardSize)
	require.NoError(t, err)
	state = tictactoe.ClickCell(state, 4)
	state = tictactoe.ClickCell(state, 0)

	// When: rendering without colours
	text := NewRenderer(plainOutput(&bytes.Buffer{})).Render(presenter.Build("id", state, false))

	// Then: the board, the status and the history are drawn
	expected := " O | . | . \n" +
		"---+---+---\n" +
		" . | X | . \n" +
		"---+---+---\n" +
		" . | . | . \n" +
		"\n" +
		"Next player: X\n" +
		"\n" +
		"   0. Go to game start\n" +
		"   1. Go to move #1 (2, 2)\n" +
		">  2. Go to move #2 (1, 1)\n" +
		"[order] View newest first\n"
	assert.Equal(t, expected, text)
}

func TestRenderer_Cell(t *testing.T) {
	renderer := NewRenderer(plainOutput(&bytes.Buffer{}))

	assert.Equal(t, ".", renderer.cell(presenter.Cell{Mark: entity.None}))
	assert.Equal(t, "X", renderer.cell(presenter.Cell{Mark: entity.PlayerX, Winning: true}))
	assert.Equal(t, "O", renderer.cell(presenter.Cell{Mark: entity.PlayerO}))
}

func runREPL(t *testing.T, input string) (string, error) {
	t.Helper()

	ctx, st := suite.New(t)

	var out bytes.Buffer
	repl := NewREPL(st.Logger, st.Games, plainOutput(&out), tictactoe.DefaultBoardSize)
	err := repl.Run(ctx, strings.NewReader(input))

	return out.String(), err
}

func TestREPL_Run(t *testing.T) {
	t.Run("Plays to a win", func(t *testing.T) {
		// Given: X takes the top row using both click forms
		input := "click 1 1\nc 4\nclick 1 2\nc 5\nclick 1 3\nquit\n"

		// When: the session runs
		out, err := runREPL(t, input)

		// Then: the win is announced
		require.NoError(t, err)
		assert.Contains(t, out, "Winner: X")
		assert.Contains(t, out, "Go to move #5 (1, 3)")
	})

	t.Run("Jump and order", func(t *testing.T) {
		out, err := runREPL(t, "c 0\nc 4\njump 1\norder\n")

		require.NoError(t, err)
		assert.Contains(t, out, "Next player: O")
		assert.Contains(t, out, "[order] View oldest first")

		last := out[strings.LastIndex(out, "Next player"):]
		assert.Less(t, strings.Index(last, "#2"), strings.Index(last, "#1"))
	})

	t.Run("Errors do not end the session", func(t *testing.T) {
		out, err := runREPL(t, "jump 9\nclick 4 1\nfly\nc x\nc 0\n")

		require.NoError(t, err)
		assert.Contains(t, out, "no such step in history")
		assert.Contains(t, out, "row and column must be between 1 and 3")
		assert.Contains(t, out, `unknown command "fly"`)
		assert.Contains(t, out, "usage: c <cell>")
		assert.Contains(t, out, "Next player: O")
	})

	t.Run("New game with a size", func(t *testing.T) {
		out, err := runREPL(t, "c 0\nnew 4\n")

		require.NoError(t, err)
		assert.Contains(t, out, " . | . | . | . \n")
	})

	t.Run("Help", func(t *testing.T) {
		out, err := runREPL(t, "help\n")

		require.NoError(t, err)
		assert.Contains(t, out, "jump <step>")
	})
}
