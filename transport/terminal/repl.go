package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

const helpText = `commands:
  click <row> <col>   play on a cell, 1-indexed
  c <cell>            play on a cell by index
  jump <step>         go back to a step of the history
  order               flip the history order
  new [size]          start over
  help                show this text
  quit                leave
`

var (
	errUsage = errors.New("usage")
	errQuit  = errors.New("quit")
)

type gameUseCase interface {
	NewGame(ctx context.Context, size int) (presenter.View, error)
	ClickCell(ctx context.Context, id string, cell int) (presenter.View, error)
	JumpTo(ctx context.Context, id string, step int) (presenter.View, error)
	ToggleOrder(ctx context.Context, id string) (presenter.View, error)
	DeleteGame(ctx context.Context, id string) error
}

// REPL - a single local session driven by text commands.
type REPL struct {
	logger   *slog.Logger
	games    gameUseCase
	output   *termenv.Output
	renderer *Renderer
	size     int

	view presenter.View
}

func NewREPL(logger *slog.Logger, games gameUseCase, output *termenv.Output, size int) *REPL {
	return &REPL{
		logger:   logger.With("component", "terminal"),
		games:    games,
		output:   output,
		renderer: NewRenderer(output),
		size:     size,
	}
}

// Run - reads commands from in until quit, EOF or ctx is done.
func (that *REPL) Run(ctx context.Context, in io.Reader) error {
	view, err := that.games.NewGame(ctx, that.size)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	that.view = view
	that.draw()

	scanner := bufio.NewScanner(in)
	for {
		if err = ctx.Err(); err != nil {
			return nil //nolint: nilerr // cancellation ends the session
		}

		that.print("> ")
		if !scanner.Scan() {
			break
		}

		err = that.execute(ctx, scanner.Text())
		switch {
		case errors.Is(err, errQuit):
			return that.games.DeleteGame(ctx, that.view.ID)
		case err != nil:
			that.printError(err)
		}
	}

	if err = scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	return nil
}

func (that *REPL) execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	args := fields[1:]

	var (
		view presenter.View
		err  error
	)

	switch strings.ToLower(fields[0]) {
	case "click":
		var cell int
		if cell, err = that.parseRowCol(args); err != nil {
			return err
		}
		view, err = that.games.ClickCell(ctx, that.view.ID, cell)
	case "c":
		var cell int
		if cell, err = parseInts(args, 1, "c <cell>"); err != nil {
			return err
		}
		view, err = that.games.ClickCell(ctx, that.view.ID, cell)
	case "jump", "j":
		var step int
		if step, err = parseInts(args, 1, "jump <step>"); err != nil {
			return err
		}
		view, err = that.games.JumpTo(ctx, that.view.ID, step)
	case "order", "o":
		view, err = that.games.ToggleOrder(ctx, that.view.ID)
	case "new", "n":
		view, err = that.newGame(ctx, args)
	case "help", "h", "?":
		that.print(helpText)
		return nil
	case "quit", "q", "exit":
		return errQuit
	default:
		return fmt.Errorf("%w: unknown command %q, try help", errUsage, fields[0])
	}

	if err != nil {
		return err
	}

	that.view = view
	that.draw()

	return nil
}

func (that *REPL) newGame(ctx context.Context, args []string) (presenter.View, error) {
	size := that.size
	if len(args) > 0 {
		parsed, err := parseInts(args, 1, "new [size]")
		if err != nil {
			return presenter.View{}, err
		}
		size = parsed
	}

	view, err := that.games.NewGame(ctx, size)
	if err != nil {
		return presenter.View{}, err
	}

	if err = that.games.DeleteGame(ctx, that.view.ID); err != nil {
		that.logger.Warn("failed to drop previous game", "game_id", that.view.ID, "error", err)
	}

	return view, nil
}

// parseRowCol - converts 1-indexed row and column into a cell index.
func (that *REPL) parseRowCol(args []string) (int, error) {
	if len(args) != 2 {
		return 0, fmt.Errorf("%w: click <row> <col>", errUsage)
	}

	row, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: row must be a number", errUsage)
	}

	col, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, fmt.Errorf("%w: column must be a number", errUsage)
	}

	size := that.view.Size
	if row < 1 || row > size || col < 1 || col > size {
		return 0, fmt.Errorf("%w: row and column must be between 1 and %d", errUsage, size)
	}

	return (row-1)*size + (col - 1), nil
}

func parseInts(args []string, want int, usage string) (int, error) {
	if len(args) != want {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errUsage, usage)
	}

	return value, nil
}

func (that *REPL) draw() {
	that.print(that.renderer.Render(that.view))
}

func (that *REPL) print(text string) {
	if _, err := io.WriteString(that.output, text); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}

func (that *REPL) printError(err error) {
	text := err.Error()
	if errors.Is(err, apperror.ErrOutOfRange) {
		text = "no such step in history"
	}

	that.print(that.output.String(text).Foreground(that.output.Color("1")).String() + "\n")
}
