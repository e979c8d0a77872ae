package main

import (
	"context"
	"errors"

	"github.com/desertthunder/magdesk/internal/formatter"
	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/repositories"
	"github.com/urfave/cli/v3"
)

func (r *Runner) repositories() (*repositories.AuthorRepository, *repositories.MagazineRepository, *repositories.ArticleRepository, error) {
	db, err := r.database()
	if err != nil {
		return nil, nil, nil, err
	}
	return repositories.NewAuthorRepository(db), repositories.NewMagazineRepository(db), repositories.NewArticleRepository(db), nil
}

// AuthorsList prints every author.
func (r *Runner) AuthorsList(ctx context.Context, cmd *cli.Command) error {
	authors, _, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := authors.List(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.AuthorsTable(list))
}

// AuthorArticles prints the articles written by the author given with --id.
func (r *Runner) AuthorArticles(ctx context.Context, cmd *cli.Command) error {
	authors, _, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := authors.Articles(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.ArticlesTable(list))
}

// AuthorMagazines prints the magazines the author has written for, one row per article.
func (r *Runner) AuthorMagazines(ctx context.Context, cmd *cli.Command) error {
	authors, _, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := authors.Magazines(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.MagazinesTable(list))
}

// MagazinesList prints every magazine.
func (r *Runner) MagazinesList(ctx context.Context, cmd *cli.Command) error {
	_, magazines, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := magazines.List(ctx)
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.MagazinesTable(list))
}

// MagazineArticles prints the articles published in the magazine given with --id.
func (r *Runner) MagazineArticles(ctx context.Context, cmd *cli.Command) error {
	_, magazines, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := magazines.Articles(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.ArticlesTable(list))
}

// MagazineContributors prints the magazine's authors, one row per article.
func (r *Runner) MagazineContributors(ctx context.Context, cmd *cli.Command) error {
	_, magazines, _, err := r.repositories()
	if err != nil {
		return err
	}

	list, err := magazines.Contributors(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}
	return r.render(cmd, list, formatter.AuthorsTable(list))
}

// MagazineTitles prints the magazine's article titles, or a no-data notice.
func (r *Runner) MagazineTitles(ctx context.Context, cmd *cli.Command) error {
	_, magazines, _, err := r.repositories()
	if err != nil {
		return err
	}

	titles, err := magazines.ArticleTitles(ctx, cmd.Int("id"))
	if errors.Is(err, models.ErrNoData) {
		return r.renderNoData(cmd)
	} else if err != nil {
		return err
	}
	return r.render(cmd, titles, formatter.TitlesTable(titles))
}

// MagazineTopContributors prints authors with more than [repositories.ContributorThreshold] articles in the
// magazine, or a no-data notice.
func (r *Runner) MagazineTopContributors(ctx context.Context, cmd *cli.Command) error {
	_, magazines, _, err := r.repositories()
	if err != nil {
		return err
	}

	contributions, err := magazines.ContributingAuthors(ctx, cmd.Int("id"))
	if errors.Is(err, models.ErrNoData) {
		return r.renderNoData(cmd)
	} else if err != nil {
		return err
	}
	return r.render(cmd, contributions, formatter.ContributionsTable(contributions))
}

// ArticleTitles prints every article title, or a no-data notice.
func (r *Runner) ArticleTitles(ctx context.Context, cmd *cli.Command) error {
	_, _, articles, err := r.repositories()
	if err != nil {
		return err
	}

	titles, err := articles.Titles(ctx)
	if errors.Is(err, models.ErrNoData) {
		return r.renderNoData(cmd)
	} else if err != nil {
		return err
	}
	return r.render(cmd, titles, formatter.TitlesTable(titles))
}

// ArticleShow prints one article with its resolved author and magazine names.
func (r *Runner) ArticleShow(ctx context.Context, cmd *cli.Command) error {
	_, _, articles, err := r.repositories()
	if err != nil {
		return err
	}

	article, err := articles.Get(ctx, cmd.Int("id"))
	if err != nil {
		return err
	}

	authorName, err := articles.AuthorName(ctx, article)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}
	magazineName, err := articles.MagazineName(ctx, article)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		return err
	}

	format, err := r.format(cmd)
	if err != nil {
		return err
	}
	if format == formatter.FormatJSON {
		data := struct {
			Article      *models.Article `json:"article"`
			AuthorName   string          `json:"author_name"`
			MagazineName string          `json:"magazine_name"`
		}{article, authorName, magazineName}
		return formatter.WriteJSON(r.output, data, r.config.Output.Pretty)
	}

	if err := formatter.ArticlesTable([]*models.Article{article}).Render(r.output, format); err != nil {
		return err
	}
	return r.writePlain("Author of the article: %s\nMagazine of the article: %s\n", orNone(authorName), orNone(magazineName))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
