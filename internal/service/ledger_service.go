package service

import (
	"context"
	"fmt"

	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports"
	"party-loot-ledger/pkg/apperror"

	"github.com/rs/zerolog"
)

// LedgerServiceImpl implements ports.LedgerService over a LedgerStore.
// Every mutation follows load -> pure domain operation -> wholesale save;
// the stored document is only ever swapped as a value.
type LedgerServiceImpl struct {
	store ports.LedgerStore
	log   zerolog.Logger
}

// NewLedgerService creates a new LedgerServiceImpl.
func NewLedgerService(store ports.LedgerStore, log zerolog.Logger) *LedgerServiceImpl {
	return &LedgerServiceImpl{store: store, log: log}
}

// Balance replays the stored document into the current fund balance.
func (s *LedgerServiceImpl) Balance(ctx context.Context) (domain.CoinVector, int64, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return domain.CoinVector{}, 0, err
	}
	if ledger == nil {
		return domain.Zero(), 0, nil
	}

	balance, err := ledger.Balance()
	if err != nil {
		// Replay overdraft in a stored document is an invariant violation,
		// not a user input problem.
		s.log.Error().Err(err).Msg("stored ledger document failed replay")
		return domain.CoinVector{}, 0, err
	}
	return balance, balance.TotalValue(), nil
}

// History returns the stored transactions in log order.
func (s *LedgerServiceImpl) History(ctx context.Context) ([]domain.Transaction, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return []domain.Transaction{}, nil
	}
	return ledger.Transactions, nil
}

// Append validates and appends one transaction. A fresh empty document is
// created on first use, stamped with the transaction's own timestamp.
func (s *LedgerServiceImpl) Append(ctx context.Context, tx domain.Transaction) (*domain.Ledger, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = domain.NewLedger(tx.Timestamp)
	}

	next, err := ledger.Append(tx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, next); err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("save ledger document: %w", err))
	}

	s.log.Info().
		Str("tx_id", tx.ID).
		Str("kind", string(tx.Kind)).
		Int("transactions", len(next.Transactions)).
		Msg("transaction appended")

	return next, nil
}

// Import strictly validates raw document JSON and replaces the stored
// document. Validation failure leaves the current document untouched.
func (s *LedgerServiceImpl) Import(ctx context.Context, raw []byte) (*domain.Ledger, error) {
	ledger, err := domain.ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, ledger); err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("save imported document: %w", err))
	}

	s.log.Info().
		Int("transactions", len(ledger.Transactions)).
		Time("created_at", ledger.CreatedAt).
		Msg("ledger document imported")

	return ledger, nil
}

// Export renders the stored document as canonical JSON.
func (s *LedgerServiceImpl) Export(ctx context.Context) ([]byte, error) {
	ledger, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		return nil, apperror.ErrNoDocument()
	}
	return domain.EncodeDocument(ledger)
}

func (s *LedgerServiceImpl) load(ctx context.Context) (*domain.Ledger, error) {
	ledger, err := s.store.Load(ctx)
	if err != nil {
		return nil, apperror.ErrStorage(fmt.Errorf("load ledger document: %w", err))
	}
	return ledger, nil
}
