package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/magdesk/internal/formatter"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/desertthunder/magdesk/internal/tasks"
	"github.com/desertthunder/magdesk/internal/ui"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	fixedConfig bool
	logger      *log.Logger
	output      io.Writer
	db          *sql.DB
	ownsDB      bool
	migrated    bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config // When set, --config is only read if given explicitly
	Logger *log.Logger
	Output io.Writer
	DB     *sql.DB // When set, used as is and never closed by the Runner
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	fixed := opts.Config != nil
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:      opts.Config,
		fixedConfig: fixed,
		logger:      opts.Logger,
		output:      opts.Output,
		db:          opts.DB,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, entryCommand, authorsCommand, magazinesCommand, articlesCommand, seedCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// before loads configuration and applies the global flags.
func (r *Runner) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if cmd.Bool("verbose") {
		shared.SetLogLevel(r.logger, log.DebugLevel)
	}

	if !r.fixedConfig || cmd.IsSet("config") {
		config, err := shared.LoadConfigOrDefault(cmd.String("config"))
		if err != nil {
			return ctx, err
		}
		r.config = config
	}

	if path := cmd.String("db"); path != "" {
		r.config.Database.Path = path
	}

	r.logger.Debug("configuration loaded", "database", r.config.Database.Path, "format", r.config.Output.Format)
	return ctx, nil
}

// SetLogger replaces the logger, e.g. while the entry form owns the terminal.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// open opens the configured database on first use without touching the schema.
func (r *Runner) open() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.OpenConfigured(r.config.Database)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("database opened", "path", r.config.Database.Path)
	r.db, r.ownsDB = db, true
	return db, nil
}

// database returns the open database with pending migrations applied.
func (r *Runner) database() (*sql.DB, error) {
	db, err := r.open()
	if err != nil {
		return nil, err
	}
	if r.migrated {
		return db, nil
	}

	if err := shared.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	r.migrated = true
	return db, nil
}

func (r *Runner) catalogue() (*tasks.Catalogue, error) {
	db, err := r.database()
	if err != nil {
		return nil, err
	}
	return tasks.NewCatalogue(db, r.logger), nil
}

// Close releases the database if the Runner opened it.
func (r *Runner) Close() error {
	if r.db == nil || !r.ownsDB {
		return nil
	}
	err := r.db.Close()
	r.db, r.ownsDB, r.migrated = nil, false, false
	return err
}

// format resolves the output format from --json, --format and the config, in that order.
func (r *Runner) format(cmd *cli.Command) (formatter.Format, error) {
	if cmd.Bool("json") {
		return formatter.FormatJSON, nil
	}
	if f := cmd.String("format"); f != "" {
		return formatter.ParseFormat(f)
	}
	return formatter.ParseFormat(r.config.Output.Format)
}

// render writes data as JSON, or t in the selected tabular format.
func (r *Runner) render(cmd *cli.Command, data any, t formatter.Table) error {
	format, err := r.format(cmd)
	if err != nil {
		return err
	}
	if format == formatter.FormatJSON {
		return formatter.WriteJSON(r.output, data, r.config.Output.Pretty)
	}
	return t.Render(r.output, format)
}

// renderNoData reports an absent result: JSON null, or a notice that is distinct from an empty table.
func (r *Runner) renderNoData(cmd *cli.Command) error {
	format, err := r.format(cmd)
	if err != nil {
		return err
	}
	if format == formatter.FormatJSON {
		return formatter.WriteJSON(r.output, nil, false)
	}
	return r.writePlain("%s\n", ui.Styles.Warn("(no data)"))
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writeHeader(title string) error {
	return r.writePlain("%s\n", ui.Styles.Title(title))
}
