package integration

import (
	"context"
	"sync"

	"party-loot-ledger/internal/core/domain"
)

// inMemoryLedgerStore is a LedgerStore for integration tests. Like the real
// stores it swaps the whole document on save and round-trips it through the
// canonical JSON codec, so the strict parse gate is exercised on every load.
type inMemoryLedgerStore struct {
	mu  sync.RWMutex
	raw []byte
}

func newInMemoryLedgerStore() *inMemoryLedgerStore {
	return &inMemoryLedgerStore{}
}

func (s *inMemoryLedgerStore) Load(_ context.Context) (*domain.Ledger, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.raw == nil {
		return nil, nil
	}
	return domain.ParseDocument(s.raw)
}

func (s *inMemoryLedgerStore) Save(_ context.Context, ledger *domain.Ledger) error {
	raw, err := domain.EncodeDocument(ledger)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.raw = raw
	return nil
}

func (s *inMemoryLedgerStore) Ping(_ context.Context) error { return nil }

func (s *inMemoryLedgerStore) Name() string { return "inmemory" }
