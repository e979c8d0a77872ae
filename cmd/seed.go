package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/magdesk/internal/formatter"
	"github.com/desertthunder/magdesk/internal/tasks"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// Seed loads the TOML document given with --file in one transaction.
func (r *Runner) Seed(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("file")

	doc, err := tasks.LoadSeedFile(path)
	if err != nil {
		return err
	}

	catalogue, err := r.catalogue()
	if err != nil {
		return err
	}

	result, err := catalogue.Seed(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", path, err)
	}

	t := formatter.Table{
		Header: table.Row{"Authors", "Magazines", "Articles"},
		Rows:   []table.Row{{result.Authors, result.Magazines, result.Articles}},
	}
	return r.render(cmd, result, t)
}
