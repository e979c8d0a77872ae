package repositories

import (
	"context"
	"fmt"

	"github.com/desertthunder/magdesk/internal/models"
)

// AuthorRepository persists [models.Author] rows.
type AuthorRepository struct {
	q models.Querier
}

// NewAuthorRepository creates a new [AuthorRepository] on the given store handle
func NewAuthorRepository(q models.Querier) *AuthorRepository {
	return &AuthorRepository{q: q}
}

// Create inserts the author's name and back-fills its ID from the generated key.
func (r *AuthorRepository) Create(ctx context.Context, author *models.Author) error {
	if author.IsPersisted() {
		return fmt.Errorf("author %d: %w", author.ID(), models.ErrAlreadyPersisted)
	}
	if err := author.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, err := insert(ctx, r.q, "INSERT INTO authors (name) VALUES (?)", author.Name())
	if err != nil {
		return fmt.Errorf("failed to insert author: %w", err)
	}

	author.SetID(id)
	return nil
}

// List returns every author in store order.
func (r *AuthorRepository) List(ctx context.Context) ([]*models.Author, error) {
	authors, err := queryAll(ctx, r.q, scanAuthor, "SELECT id, name FROM authors")
	if err != nil {
		return nil, fmt.Errorf("failed to list authors: %w", err)
	}
	return authors, nil
}

// Articles returns the articles written by the author.
func (r *AuthorRepository) Articles(ctx context.Context, authorID int64) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE articles.author_id = ?"

	articles, err := queryAll(ctx, r.q, scanArticle, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles for author %d: %w", authorID, err)
	}
	return articles, nil
}

// Magazines returns the magazines the author has written for, one row per article, in article order.
func (r *AuthorRepository) Magazines(ctx context.Context, authorID int64) ([]*models.Magazine, error) {
	query := `
		SELECT magazines.id, magazines.name, magazines.category
		FROM magazines
		JOIN articles ON magazines.id = articles.magazine_id
		WHERE articles.author_id = ?
		ORDER BY articles.id
	`

	magazines, err := queryAll(ctx, r.q, scanMagazine, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list magazines for author %d: %w", authorID, err)
	}
	return magazines, nil
}
