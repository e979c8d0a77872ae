// package repositories provides persistence layer implementations for all model types.
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/magdesk/internal/models"
)

const articleColumns = "articles.id, articles.title, articles.content, articles.author_id, articles.magazine_id"

// rowScanner is satisfied by both [sql.Row] and [sql.Rows].
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAuthor(s rowScanner) (*models.Author, error) {
	var (
		id   int64
		name sql.NullString
	)
	if err := s.Scan(&id, &name); err != nil {
		return nil, fmt.Errorf("failed to scan author: %w", err)
	}
	return models.RestoreAuthor(id, name.String), nil
}

func scanMagazine(s rowScanner) (*models.Magazine, error) {
	var (
		id       int64
		name     sql.NullString
		category sql.NullString
	)
	if err := s.Scan(&id, &name, &category); err != nil {
		return nil, fmt.Errorf("failed to scan magazine: %w", err)
	}
	return models.RestoreMagazine(id, name.String, category.String), nil
}

func scanArticle(s rowScanner) (*models.Article, error) {
	var (
		id         int64
		title      sql.NullString
		content    sql.NullString
		authorID   sql.NullInt64
		magazineID sql.NullInt64
	)
	if err := s.Scan(&id, &title, &content, &authorID, &magazineID); err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}
	return models.RestoreArticle(id, title.String, content.String, authorID.Int64, magazineID.Int64), nil
}

func scanString(s rowScanner) (string, error) {
	var v sql.NullString
	if err := s.Scan(&v); err != nil {
		return "", fmt.Errorf("failed to scan value: %w", err)
	}
	return v.String, nil
}

// queryAll runs query and scans every row with scan. The result is never nil.
func queryAll[T any](ctx context.Context, q models.Querier, scan func(rowScanner) (T, error), query string, args ...any) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}
	defer rows.Close()

	results := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return results, nil
}

// insert executes an INSERT and returns the generated key.
func insert(ctx context.Context, q models.Querier, query string, args ...any) (int64, error) {
	result, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read generated id: %w", err)
	}
	return id, nil
}

// nullIfEmpty stores empty strings as NULL.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
