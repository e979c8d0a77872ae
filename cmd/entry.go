package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/magdesk/internal/formatter"
	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/desertthunder/magdesk/internal/tasks"
	"github.com/desertthunder/magdesk/internal/ui"
	"github.com/urfave/cli/v3"
)

const formLogPath = "./tmp/magdesk-form.log"

// Entry records an author, a magazine and an article in one transaction, then prints the catalogue.
//
// Values missing from flags are collected with the interactive form unless --no-form is set.
func (r *Runner) Entry(ctx context.Context, cmd *cli.Command) error {
	in := tasks.EntryInput{
		AuthorName:       cmd.String("author"),
		MagazineName:     cmd.String("magazine"),
		MagazineCategory: cmd.String("category"),
		ArticleTitle:     cmd.String("title"),
		ArticleContent:   cmd.String("content"),
	}

	if in.AuthorName == "" || in.MagazineName == "" || in.ArticleTitle == "" {
		if cmd.Bool("no-form") {
			return fmt.Errorf("%w: --author, --magazine and --title are required with --no-form", shared.ErrMissingArgument)
		}

		collected, err := r.collect(ctx, in)
		if err != nil {
			return err
		}
		in = collected
	}

	if err := in.Validate(); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrInvalidInput, err)
	}

	catalogue, err := r.catalogue()
	if err != nil {
		return err
	}

	report, err := catalogue.Entry(ctx, in)
	if err != nil {
		return fmt.Errorf("failed to record entry: %w", err)
	}

	return r.printReport(cmd, report)
}

// collect runs the entry form with logging redirected to a file so it does not corrupt the screen.
func (r *Runner) collect(ctx context.Context, initial tasks.EntryInput) (tasks.EntryInput, error) {
	previous := r.logger
	if fileLogger, err := shared.NewFileLogger(formLogPath); err == nil {
		fileLogger.SetLevel(previous.GetLevel())
		r.SetLogger(fileLogger)
		defer r.SetLogger(previous)
	} else {
		previous.Warn("failed to open form log file, logging to stderr", "error", err)
	}

	return ui.RunForm(ctx, initial)
}

func (r *Runner) printReport(cmd *cli.Command, report *tasks.EntryReport) error {
	format, err := r.format(cmd)
	if err != nil {
		return err
	}
	if format == formatter.FormatJSON {
		return formatter.WriteJSON(r.output, report, r.config.Output.Pretty)
	}

	sections := []struct {
		title string
		table formatter.Table
	}{
		{"Magazines", formatter.MagazinesTable(report.Magazines)},
		{"Authors", formatter.AuthorsTable(report.Authors)},
		{"Article Titles", formatter.TitlesTable(report.Titles)},
		{"Created Article", formatter.ArticlesTable([]*models.Article{report.Article})},
	}

	for _, s := range sections {
		if err := r.writeHeader(s.title); err != nil {
			return err
		}
		if err := s.table.Render(r.output, format); err != nil {
			return err
		}
		if err := r.writePlain("\n"); err != nil {
			return err
		}
	}

	if err := r.writePlain("Author of the article: %s\n", report.AuthorName); err != nil {
		return err
	}
	return r.writePlain("Magazine of the article: %s\n", report.MagazineName)
}
