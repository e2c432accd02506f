// Package sqlite persists the ledger document in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"party-loot-ledger/internal/core/domain"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_document (
	id          INTEGER PRIMARY KEY CHECK (id = 1),
	document    TEXT    NOT NULL,
	updated_at  INTEGER NOT NULL
);`

// Store persists the ledger document as a single row. The row is replaced
// wholesale on every save, mirroring the file store's swap semantics.
type Store struct {
	sqlDB *sql.DB
}

// Open opens a SQLite ledger store and creates the schema if needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create ledger schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Load reads and strictly validates the stored document. Returns (nil, nil)
// when no document has been saved yet.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	var raw string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT document FROM ledger_document WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger document: %w", err)
	}
	return domain.ParseDocument([]byte(raw))
}

// Save replaces the stored document wholesale.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	raw, err := domain.EncodeDocument(ledger)
	if err != nil {
		return err
	}
	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO ledger_document (id, document, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		string(raw), ledger.LastModifiedAt.UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert ledger document: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.sqlDB.PingContext(ctx)
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "sqlite"
}
