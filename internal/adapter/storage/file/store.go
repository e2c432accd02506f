// Package file persists the ledger document as a single JSON file.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"party-loot-ledger/internal/core/domain"
)

// Store persists the ledger document at a fixed path. Save writes a temp
// file and renames it over the target, so a reader never observes a partial
// document — the swap is the whole-document replace the engine expects.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a file store for the given path.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("ledger file path is required")
	}
	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o700); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}
	return &Store{path: clean}, nil
}

// Load reads and strictly validates the stored document. A restored file
// passes the same replay gate as an import. Returns (nil, nil) when no
// document has been saved yet.
func (s *Store) Load(ctx context.Context) (*domain.Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger file: %w", err)
	}
	return domain.ParseDocument(raw)
}

// Save replaces the stored document wholesale.
func (s *Store) Save(ctx context.Context, ledger *domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := domain.EncodeDocument(ledger)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write ledger temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("swap ledger file: %w", err)
	}
	return nil
}

// Ping verifies the ledger directory is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := os.Stat(filepath.Dir(s.path))
	return err
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "file"
}
