package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/magdesk/internal/models"
)

// ContributorThreshold is the article count an author must exceed to count as a contributing author.
const ContributorThreshold = 2

// MagazineRepository persists [models.Magazine] rows.
type MagazineRepository struct {
	q models.Querier
}

// NewMagazineRepository creates a new [MagazineRepository] on the given store handle
func NewMagazineRepository(q models.Querier) *MagazineRepository {
	return &MagazineRepository{q: q}
}

// Create inserts the magazine and back-fills its ID. An empty category is stored as NULL.
func (r *MagazineRepository) Create(ctx context.Context, magazine *models.Magazine) error {
	if magazine.IsPersisted() {
		return fmt.Errorf("magazine %d: %w", magazine.ID(), models.ErrAlreadyPersisted)
	}
	if err := magazine.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	id, err := insert(ctx, r.q,
		"INSERT INTO magazines (name, category) VALUES (?, ?)",
		magazine.Name(), nullIfEmpty(magazine.Category()),
	)
	if err != nil {
		return fmt.Errorf("failed to insert magazine: %w", err)
	}

	magazine.SetID(id)
	return nil
}

// List returns every magazine in store order.
func (r *MagazineRepository) List(ctx context.Context) ([]*models.Magazine, error) {
	magazines, err := queryAll(ctx, r.q, scanMagazine, "SELECT id, name, category FROM magazines")
	if err != nil {
		return nil, fmt.Errorf("failed to list magazines: %w", err)
	}
	return magazines, nil
}

// Articles returns the articles published in the magazine.
func (r *MagazineRepository) Articles(ctx context.Context, magazineID int64) ([]*models.Article, error) {
	query := "SELECT " + articleColumns + " FROM articles WHERE articles.magazine_id = ?"

	articles, err := queryAll(ctx, r.q, scanArticle, query, magazineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles for magazine %d: %w", magazineID, err)
	}
	return articles, nil
}

// Contributors returns the authors who have written for the magazine, one row per article, in article order.
func (r *MagazineRepository) Contributors(ctx context.Context, magazineID int64) ([]*models.Author, error) {
	query := `
		SELECT authors.id, authors.name
		FROM authors
		JOIN articles ON authors.id = articles.author_id
		WHERE articles.magazine_id = ?
		ORDER BY articles.id
	`

	authors, err := queryAll(ctx, r.q, scanAuthor, query, magazineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributors for magazine %d: %w", magazineID, err)
	}
	return authors, nil
}

// ArticleTitles returns the titles of the magazine's articles, or [models.ErrNoData] when it has none.
func (r *MagazineRepository) ArticleTitles(ctx context.Context, magazineID int64) ([]string, error) {
	titles, err := queryAll(ctx, r.q, scanString, "SELECT title FROM articles WHERE magazine_id = ?", magazineID)
	if err != nil {
		return nil, fmt.Errorf("failed to list titles for magazine %d: %w", magazineID, err)
	}
	if len(titles) == 0 {
		return nil, fmt.Errorf("titles for magazine %d: %w", magazineID, models.ErrNoData)
	}
	return titles, nil
}

// ContributingAuthors returns the authors with more than [ContributorThreshold] articles in the magazine, each
// with its count, or [models.ErrNoData] when no author qualifies.
func (r *MagazineRepository) ContributingAuthors(ctx context.Context, magazineID int64) ([]models.Contribution, error) {
	query := `
		SELECT authors.id, authors.name, COUNT(*) AS article_count
		FROM authors
		JOIN articles ON authors.id = articles.author_id
		WHERE articles.magazine_id = ?
		GROUP BY authors.id
		HAVING article_count > ?
	`

	scan := func(s rowScanner) (models.Contribution, error) {
		var (
			id    int64
			name  sql.NullString
			count int
		)
		if err := s.Scan(&id, &name, &count); err != nil {
			return models.Contribution{}, fmt.Errorf("failed to scan contribution: %w", err)
		}
		return models.Contribution{Author: models.RestoreAuthor(id, name.String), ArticleCount: count}, nil
	}

	contributions, err := queryAll(ctx, r.q, scan, query, magazineID, ContributorThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list contributing authors for magazine %d: %w", magazineID, err)
	}
	if len(contributions) == 0 {
		return nil, fmt.Errorf("contributing authors for magazine %d: %w", magazineID, models.ErrNoData)
	}
	return contributions, nil
}
