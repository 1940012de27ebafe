// Command tgraph replays mutation shards step by step and writes the earliest
// arrival time of every vertex from a source vertex.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/tgraph/pipeline"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Stdout, os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run parses args and executes one run, logging to outW.
func run(ctx context.Context, outW io.Writer, args []string) error {
	cfg, shouldExit, err := parseArgs(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	log := pipeline.NewLogger(cfg.LogLevel, cfg.LogFormat, outW)
	r, err := pipeline.New(cfg, log)
	if err != nil {
		return &ExitError{Code: 2, Message: err.Error()}
	}

	return r.Run(ctx)
}
