package ports

import (
	"context"

	"party-loot-ledger/internal/core/domain"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

// LedgerStore persists the single ledger document as a value. Save replaces
// the stored document wholesale — there are no partial or interleaved writes,
// matching the single-actor model. Load returns (nil, nil) when no document
// has been persisted yet.
type LedgerStore interface {
	Load(ctx context.Context) (*domain.Ledger, error)
	Save(ctx context.Context, ledger *domain.Ledger) error
}

// HealthChecker checks storage dependency health.
type HealthChecker interface {
	// Ping verifies the dependency is reachable. Returns nil if healthy.
	Ping(ctx context.Context) error
	// Name returns the dependency name (e.g., "file", "sqlite").
	Name() string
}
