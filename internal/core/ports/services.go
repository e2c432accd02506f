package ports

import (
	"context"
	"time"

	"party-loot-ledger/internal/core/domain"
)

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

// LedgerService orchestrates the append-only ledger over a LedgerStore.
type LedgerService interface {
	// Balance replays the stored document into the current fund balance and
	// its informational total value. An empty store yields the zero vector.
	Balance(ctx context.Context) (domain.CoinVector, int64, error)
	// History returns the stored transactions in log order.
	History(ctx context.Context) ([]domain.Transaction, error)
	// Append validates and appends one transaction, swapping the stored
	// document wholesale on success.
	Append(ctx context.Context, tx domain.Transaction) (*domain.Ledger, error)
	// Import strictly validates raw document JSON and replaces the stored
	// document. A failed import leaves the current document active.
	Import(ctx context.Context, raw []byte) (*domain.Ledger, error)
	// Export renders the stored document as canonical JSON.
	Export(ctx context.Context) ([]byte, error)
}

// SplitService runs the loot-allocation pipeline: pre-allocation, fair split,
// and the single-transaction commit.
type SplitService interface {
	// PreviewSplit computes a loot split without touching the ledger.
	PreviewSplit(in domain.LootSplitInput) (domain.LootSplitResult, error)
	// CommitSplit computes a loot split, builds the one fund transaction from
	// its skim and split-remainder, and appends it. The caller supplies the
	// transaction id and timestamp.
	CommitSplit(ctx context.Context, in domain.LootSplitInput, id string, timestamp time.Time, note string) (domain.LootSplitResult, *domain.Transaction, error)
}
