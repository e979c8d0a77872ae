// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Database path, overrides database.path from the config",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: table, csv, markdown or json",
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output JSON (same as --format json)",
		},
		&cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enable debug logging",
		},
	}
}

func idFlag(usage string) *cli.IntFlag {
	return &cli.IntFlag{
		Name:     "id",
		Usage:    usage,
		Required: true,
	}
}

// setupCommand handles database setup and migration bookkeeping.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Create the config file if missing, initialize the database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "status",
				Usage:  "List migrations and whether each is applied",
				Action: r.SetupStatus,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// entryCommand records one author, magazine and article.
func entryCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "entry",
		Aliases: []string{"new"},
		Usage:   "Record an author, a magazine and an article, then print the catalogue",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "author", Usage: "Author's name"},
			&cli.StringFlag{Name: "magazine", Usage: "Magazine name (2-16 characters)"},
			&cli.StringFlag{Name: "category", Usage: "Magazine category (optional)"},
			&cli.StringFlag{Name: "title", Usage: "Article title (5-50 characters)"},
			&cli.StringFlag{Name: "content", Usage: "Article content"},
			&cli.BoolFlag{Name: "no-form", Usage: "Never prompt; fail on missing values"},
		},
		Action: r.Entry,
	}
}

// authorsCommand handles author queries.
func authorsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "authors",
		Usage: "Author queries",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every author",
				Action: r.AuthorsList,
			},
			{
				Name:   "articles",
				Usage:  "List an author's articles",
				Flags:  []cli.Flag{idFlag("Author ID")},
				Action: r.AuthorArticles,
			},
			{
				Name:   "magazines",
				Usage:  "List the magazines an author has written for",
				Flags:  []cli.Flag{idFlag("Author ID")},
				Action: r.AuthorMagazines,
			},
		},
	}
}

// magazinesCommand handles magazine queries.
func magazinesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "magazines",
		Aliases: []string{"mags"},
		Usage:   "Magazine queries",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List every magazine",
				Action: r.MagazinesList,
			},
			{
				Name:   "articles",
				Usage:  "List a magazine's articles",
				Flags:  []cli.Flag{idFlag("Magazine ID")},
				Action: r.MagazineArticles,
			},
			{
				Name:   "contributors",
				Usage:  "List every author who has written for a magazine",
				Flags:  []cli.Flag{idFlag("Magazine ID")},
				Action: r.MagazineContributors,
			},
			{
				Name:   "titles",
				Usage:  "List a magazine's article titles",
				Flags:  []cli.Flag{idFlag("Magazine ID")},
				Action: r.MagazineTitles,
			},
			{
				Name:   "top",
				Usage:  "List authors with more than two articles in a magazine",
				Flags:  []cli.Flag{idFlag("Magazine ID")},
				Action: r.MagazineTopContributors,
			},
		},
	}
}

// articlesCommand handles article queries.
func articlesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "articles",
		Usage: "Article queries",
		Commands: []*cli.Command{
			{
				Name:   "titles",
				Usage:  "List every article title",
				Action: r.ArticleTitles,
			},
			{
				Name:   "show",
				Usage:  "Show an article with its author and magazine names",
				Flags:  []cli.Flag{idFlag("Article ID")},
				Action: r.ArticleShow,
			},
		},
	}
}

// seedCommand loads a TOML seed document.
func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Load authors, magazines and articles from a TOML file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Usage:    "Path to the seed document",
				Required: true,
			},
		},
		Action: r.Seed,
	}
}
