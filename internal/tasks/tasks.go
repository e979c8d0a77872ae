package tasks

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/repositories"
	"github.com/desertthunder/magdesk/internal/shared"
)

// EntryInput holds the values collected by the entry prompt.
type EntryInput struct {
	AuthorName       string
	MagazineName     string
	MagazineCategory string // optional
	ArticleTitle     string
	ArticleContent   string
}

// EntryReport contains everything printed after an entry has been committed.
type EntryReport struct {
	Magazines    []*models.Magazine `json:"magazines"`     // All magazines in store order
	Authors      []*models.Author   `json:"authors"`       // All authors in store order
	Titles       []string           `json:"titles"`        // All article titles
	Article      *models.Article    `json:"article"`       // The article just created
	AuthorName   string             `json:"author_name"`   // Resolved from Article.AuthorID
	MagazineName string             `json:"magazine_name"` // Resolved from Article.MagazineID
}

// Catalogue runs workflows against one database.
type Catalogue struct {
	db     *sql.DB
	logger *log.Logger
}

// NewCatalogue creates a [Catalogue]. A nil logger falls back to [shared.NewLogger].
func NewCatalogue(db *sql.DB, logger *log.Logger) *Catalogue {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Catalogue{db: db, logger: logger}
}

// Validate builds the three entities without touching the store, so input errors surface before a transaction
// is opened.
func (in EntryInput) Validate() error {
	_, _, err := in.build()
	return err
}

func (in EntryInput) build() (*models.Author, *models.Magazine, error) {
	author, err := models.NewAuthor(in.AuthorName)
	if err != nil {
		return nil, nil, fmt.Errorf("author: %w", err)
	}

	magazine, err := models.NewMagazine(in.MagazineName, in.MagazineCategory)
	if err != nil {
		return nil, nil, fmt.Errorf("magazine: %w", err)
	}

	if _, err := models.NewArticle(in.ArticleTitle, in.ArticleContent, 0, 0); err != nil {
		return nil, nil, fmt.Errorf("article: %w", err)
	}

	return author, magazine, nil
}

// Entry inserts the author, magazine and article in one transaction, commits, then reads the catalogue back.
func (c *Catalogue) Entry(ctx context.Context, in EntryInput) (*EntryReport, error) {
	logger := shared.WithLogger(c.logger, "session", shared.GenerateID())

	author, magazine, err := in.build()
	if err != nil {
		return nil, err
	}

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := repositories.NewAuthorRepository(tx).Create(ctx, author); err != nil {
		return nil, err
	}
	logger.Debug("inserted author", "id", author.ID(), "name", author.Name())

	if err := repositories.NewMagazineRepository(tx).Create(ctx, magazine); err != nil {
		return nil, err
	}
	logger.Debug("inserted magazine", "id", magazine.ID(), "name", magazine.Name())

	article, err := repositories.NewArticleRepository(tx).Create(ctx, in.ArticleTitle, in.ArticleContent, author.ID(), magazine.ID())
	if err != nil {
		return nil, err
	}
	logger.Debug("inserted article", "id", article.ID(), "title", article.Title())

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry: %w", err)
	}
	logger.Info("entry committed", "author_id", author.ID(), "magazine_id", magazine.ID(), "article_id", article.ID())

	return c.report(ctx, article)
}

func (c *Catalogue) report(ctx context.Context, article *models.Article) (*EntryReport, error) {
	var (
		report   = &EntryReport{Article: article}
		articles = repositories.NewArticleRepository(c.db)
		err      error
	)

	if report.Magazines, err = repositories.NewMagazineRepository(c.db).List(ctx); err != nil {
		return nil, err
	}
	if report.Authors, err = repositories.NewAuthorRepository(c.db).List(ctx); err != nil {
		return nil, err
	}
	if report.Titles, err = articles.Titles(ctx); err != nil {
		return nil, err
	}
	if report.AuthorName, err = articles.AuthorName(ctx, article); err != nil {
		return nil, err
	}
	if report.MagazineName, err = articles.MagazineName(ctx, article); err != nil {
		return nil, err
	}

	return report, nil
}
