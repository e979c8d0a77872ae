package shared

import (
	"bytes"
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

func TestTruncate(t *testing.T) {
	tc := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{name: "shorter than limit", in: "body", n: 10, want: "body"},
		{name: "exact limit", in: "body", n: 4, want: "body"},
		{name: "cut with ellipsis", in: "body text here", n: 5, want: "body…"},
		{name: "multibyte runes", in: "élan vital", n: 3, want: "él…"},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.in, tt.n); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateID(t *testing.T) {
	id := GenerateID()
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("expected a valid uuid, got %q: %v", id, err)
	}
	if id == GenerateID() {
		t.Error("expected distinct ids")
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := WithLogger(NewLogger(&buf), "session", "abc")
	SetLogLevel(logger, log.DebugLevel)

	logger.Debug("opened database")
	if !strings.Contains(buf.String(), "session=abc") {
		t.Errorf("expected session key in output, got %q", buf.String())
	}

	fileLogger, err := NewFileLogger(filepath.Join(t.TempDir(), "nested", "magdesk.log"))
	if err != nil {
		t.Fatalf("failed to create file logger: %v", err)
	}
	fileLogger.Info("ok")
}

func TestOpenConfigured(t *testing.T) {
	db, err := OpenConfigured(DatabaseConfig{Path: ":memory:", MaxOpenConns: 8, MaxIdleConns: 8, ForeignKeys: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if got := db.Stats().MaxOpenConnections; got != 1 {
		t.Errorf("expected in-memory pool capped at 1, got %d", got)
	}

	var enabled sql.NullInt64
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled.Int64 != 1 {
		t.Error("expected foreign keys to be enabled")
	}
}

func TestDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{"without foreign keys", DatabaseConfig{Path: "magdesk.db"}, "magdesk.db"},
		{"with foreign keys", DatabaseConfig{Path: "magdesk.db", ForeignKeys: true}, "magdesk.db?_foreign_keys=on"},
		{"existing query", DatabaseConfig{Path: "file:magdesk.db?cache=shared", ForeignKeys: true}, "file:magdesk.db?cache=shared&_foreign_keys=on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestForeignKeysOnEveryConnection(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pool.db")

	db, err := OpenConfigured(DatabaseConfig{Path: path, MaxOpenConns: 4, MaxIdleConns: 4, ForeignKeys: true})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	var held []*sql.Conn
	defer func() {
		for _, c := range held {
			c.Close()
		}
	}()
	for i := 0; i < 3; i++ {
		c, err := db.Conn(ctx)
		if err != nil {
			t.Fatalf("failed to acquire connection: %v", err)
		}
		held = append(held, c)
	}

	fourth, err := db.Conn(ctx)
	if err != nil {
		t.Fatalf("failed to acquire connection: %v", err)
	}
	defer fourth.Close()

	var enabled int
	if err := fourth.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("failed to read pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("expected foreign keys on a fresh pooled connection, got %d", enabled)
	}

	_, err = fourth.ExecContext(ctx,
		"INSERT INTO articles (title, content, author_id, magazine_id) VALUES (?, ?, ?, ?)",
		"Dangling ref", "x", 999, 999)
	if err == nil {
		t.Error("expected dangling references to be rejected")
	}
}
