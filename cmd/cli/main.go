package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-history/transport/terminal"
)

// main - plays one local game in the terminal.
func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run - returns the process exit code so deferred cleanup always happens.
func run(args []string, in io.Reader, out, errOut io.Writer) int {
	flags := flag.NewFlagSet("tictactoe", flag.ContinueOnError)
	flags.SetOutput(errOut)
	size := flags.Int("size", tictactoe.DefaultBoardSize, "board edge length")
	debug := flags.Bool("debug", false, "write debug logs to stderr")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	level := slog.LevelWarn
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(errOut, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	manager := usecase.NewGameManager(logger, repository.NewSessionRepository(), *size)
	repl := terminal.NewREPL(logger, manager, termenv.NewOutput(out), *size)

	if err := repl.Run(ctx, in); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return 1
	}

	return 0
}
