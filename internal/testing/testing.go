// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/magdesk/internal/shared"
)

// NewTestDB opens an in-memory SQLite database on a single connection, with foreign keys on and migrations
// applied. It is closed when the test ends.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenConfigured(shared.DatabaseConfig{Path: ":memory:", ForeignKeys: true})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

// NewTestDBFile creates a migrated SQLite database file under a temp dir and returns its path.
func NewTestDBFile(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "magdesk.db")
	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return path
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
