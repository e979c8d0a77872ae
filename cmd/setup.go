package main

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/magdesk/internal/formatter"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

// SetupDatabase creates the config file when missing, then initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	if _, err := os.Stat(configPath); err != nil {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
		} else {
			r.logger.Info("config file created", "path", configPath)
		}
	}

	r.logger.Info("initializing database", "path", r.config.Database.Path)
	if _, err := r.database(); err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	r.logger.Infof("setup complete for database: %v", r.config.Database.Path)
	return nil
}

// SetupStatus lists each known migration and whether it has been applied.
func (r *Runner) SetupStatus(ctx context.Context, cmd *cli.Command) error {
	db, err := r.open()
	if err != nil {
		return err
	}

	statuses, err := shared.MigrationStatuses(db)
	if err != nil {
		return err
	}

	t := formatter.Table{Header: table.Row{"Version", "Name", "Applied"}}
	for _, s := range statuses {
		t.Rows = append(t.Rows, table.Row{s.Version, s.Name, s.Applied})
	}

	type status struct {
		Version int    `json:"version"`
		Name    string `json:"name"`
		Applied bool   `json:"applied"`
	}
	data := make([]status, 0, len(statuses))
	for _, s := range statuses {
		data = append(data, status{s.Version, s.Name, s.Applied})
	}

	return r.render(cmd, data, t)
}

// SetupRollback reverts the most recently applied migration.
func (r *Runner) SetupRollback(ctx context.Context, cmd *cli.Command) error {
	db, err := r.open()
	if err != nil {
		return err
	}

	if err := shared.RollbackMigration(db); err != nil {
		return fmt.Errorf("failed to roll back migration: %w", err)
	}

	r.logger.Info("rolled back latest migration")
	return nil
}
