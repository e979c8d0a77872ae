// package models defines the data model for the magazine catalogue
package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Querier is the caller-supplied store handle. Both [*sql.DB] and [*sql.Tx] satisfy it, so the caller decides
// where the transaction boundary sits.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Model defines the base interface for all persistent models.
type Model interface {
	ID() int64         // ID returns the store-assigned key, zero while transient
	IsPersisted() bool // IsPersisted reports whether the row exists in the store
	Validate() error   // Validate checks every field against its assignment rules
}

var (
	// ErrTypeViolation marks a field that received a value of the wrong type.
	ErrTypeViolation = errors.New("type violation")
	// ErrValueViolation marks a field whose value breaks a length or emptiness rule.
	ErrValueViolation = errors.New("value violation")
	// ErrImmutable marks a second assignment to a write-once field.
	ErrImmutable = errors.New("immutability violation")

	// ErrNoData is returned instead of an empty list when a query yields zero rows.
	ErrNoData = errors.New("no data")
	// ErrNotFound is returned when a single-row lookup yields nothing.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyPersisted is returned when create is called on an entity that already has an ID.
	ErrAlreadyPersisted = errors.New("already persisted")
)

// ValidationError reports which field failed and how.
type ValidationError struct {
	Field string
	Kind  error // one of ErrTypeViolation, ErrValueViolation, ErrImmutable
	Err   error // underlying rule error, may be nil
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Field, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Field, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the rule error to [errors.Is] and [errors.As].
func (e *ValidationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func typeViolation(field string, got any) error {
	return &ValidationError{Field: field, Kind: ErrTypeViolation, Err: fmt.Errorf("must be a string, got %T", got)}
}

func valueViolation(field string, err error) error {
	return &ValidationError{Field: field, Kind: ErrValueViolation, Err: err}
}

// Contribution is an author with the number of articles they published in one magazine.
type Contribution struct {
	Author       *Author `json:"author"`
	ArticleCount int     `json:"article_count"`
}
