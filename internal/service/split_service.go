package service

import (
	"context"
	"time"

	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports"

	"github.com/rs/zerolog"
)

// SplitServiceImpl implements ports.SplitService. The fairness tolerance is
// injected once at construction so the split algorithm itself stays free of
// configuration lookups.
type SplitServiceImpl struct {
	ledgerSvc ports.LedgerService
	tolerance int64
	log       zerolog.Logger
}

// NewSplitService creates a new SplitServiceImpl. tolerance is the fairness
// tolerance in value units; pass domain.DefaultFairnessTolerance unless
// configured otherwise.
func NewSplitService(ledgerSvc ports.LedgerService, tolerance int64, log zerolog.Logger) *SplitServiceImpl {
	return &SplitServiceImpl{
		ledgerSvc: ledgerSvc,
		tolerance: tolerance,
		log:       log,
	}
}

// PreviewSplit computes a loot split without touching the ledger.
func (s *SplitServiceImpl) PreviewSplit(in domain.LootSplitInput) (domain.LootSplitResult, error) {
	return domain.ComputeLootSplit(in, s.tolerance)
}

// CommitSplit computes a loot split and appends the single fund transaction
// built from its skim and split-remainder. The caller supplies id and
// timestamp; the engine never mints either.
func (s *SplitServiceImpl) CommitSplit(ctx context.Context, in domain.LootSplitInput, id string, timestamp time.Time, note string) (domain.LootSplitResult, *domain.Transaction, error) {
	result, err := domain.ComputeLootSplit(in, s.tolerance)
	if err != nil {
		return domain.LootSplitResult{}, nil, err
	}

	tx, err := domain.BuildCommitTransaction(result.PreAllocation.Skim, result.Split.Remainder, id, timestamp, note, nil)
	if err != nil {
		return domain.LootSplitResult{}, nil, err
	}

	if _, err := s.ledgerSvc.Append(ctx, tx); err != nil {
		return domain.LootSplitResult{}, nil, err
	}

	s.log.Info().
		Str("tx_id", tx.ID).
		Int("party_size", in.PartySize).
		Str("mode", string(in.PreAllocation.Mode)).
		Int64("fund_value", result.FundTotalValue).
		Msg("loot split committed")

	return result, &tx, nil
}
