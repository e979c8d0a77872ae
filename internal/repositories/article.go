package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/desertthunder/magdesk/internal/models"
)

// ArticleRepository persists [models.Article] rows and resolves their foreign keys.
type ArticleRepository struct {
	q models.Querier
}

// NewArticleRepository creates a new [ArticleRepository] on the given store handle
func NewArticleRepository(q models.Querier) *ArticleRepository {
	return &ArticleRepository{q: q}
}

// Create validates the title, inserts the article and returns it carrying the generated ID.
//
// The author and magazine IDs are not checked here; that is left to the store's foreign keys when enabled.
func (r *ArticleRepository) Create(ctx context.Context, title, content string, authorID, magazineID int64) (*models.Article, error) {
	article, err := models.NewArticle(title, content, authorID, magazineID)
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	id, err := insert(ctx, r.q,
		"INSERT INTO articles (title, content, author_id, magazine_id) VALUES (?, ?, ?, ?)",
		article.Title(), article.Content(), article.AuthorID(), article.MagazineID(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert article: %w", err)
	}

	article.SetID(id)
	return article, nil
}

// Get retrieves an article by ID.
func (r *ArticleRepository) Get(ctx context.Context, id int64) (*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE articles.id = ?"

	article, err := scanArticle(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("article %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Titles returns every article title in store order, or [models.ErrNoData] when the table is empty.
func (r *ArticleRepository) Titles(ctx context.Context) ([]string, error) {
	titles, err := queryAll(ctx, r.q, scanString, "SELECT title FROM articles")
	if err != nil {
		return nil, fmt.Errorf("failed to list titles: %w", err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("article titles: %w", models.ErrNoData)
	}
	return titles, nil
}

// AuthorName resolves the article's author_id to the author's name.
func (r *ArticleRepository) AuthorName(ctx context.Context, article *models.Article) (string, error) {
	return r.lookupName(ctx, "SELECT name FROM authors WHERE id = ?", "author", article.AuthorID())
}

// MagazineName resolves the article's magazine_id to the magazine's name.
func (r *ArticleRepository) MagazineName(ctx context.Context, article *models.Article) (string, error) {
	return r.lookupName(ctx, "SELECT name FROM magazines WHERE id = ?", "magazine", article.MagazineID())
}

func (r *ArticleRepository) lookupName(ctx context.Context, query, entity string, id int64) (string, error) {
	name, err := scanString(r.q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%s %d: %w", entity, id, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up %s %d: %w", entity, id, err)
	}
	return name, nil
}
