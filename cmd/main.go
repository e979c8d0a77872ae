package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	err := runner.app().Run(context.Background(), os.Args)
	runner.Close()

	if err != nil {
		if errors.Is(err, shared.ErrEntryCancelled) {
			logger.Warn("entry cancelled")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:      "magdesk",
		Usage:     "Record authors, magazines and articles and query who wrote what",
		Version:   "0.1.0",
		Writer:    r.output,
		Flags:     globalFlags(),
		Before:    r.before,
		Commands:  r.register(),
		ErrWriter: os.Stderr,
	}
}
