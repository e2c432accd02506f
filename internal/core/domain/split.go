package domain

import "party-loot-ledger/pkg/apperror"

// LootSplitInput is the transient input to the combined loot-split operation.
// It is never persisted.
type LootSplitInput struct {
	Loot          CoinVector
	PartySize     int
	PreAllocation PreAllocation
}

// LootSplitResult is the transient result bundle: per-recipient allocations,
// the fund skim, the fund split-remainder, and the fund total from the
// operation (skim + split-remainder).
//
// Conservation holds by construction: recipient allocations + fund skim +
// fund split-remainder equal the input loot, denomination by denomination.
type LootSplitResult struct {
	PreAllocation  PreAllocationResult `json:"pre_allocation"`
	Split          FairSplitResult     `json:"split"`
	FundTotal      CoinVector          `json:"fund_total"`
	FundTotalValue int64               `json:"fund_total_value"`
}

// ComputeLootSplit runs pre-allocation and then the fair split over the
// remainder. tolerance is the fairness tolerance in value units (see
// ComputeFairSplit).
func ComputeLootSplit(in LootSplitInput, tolerance int64) (LootSplitResult, error) {
	if in.PartySize < 1 {
		return LootSplitResult{}, apperror.ErrInvalidPartySize()
	}

	pre, err := ComputePreAllocation(in.Loot, in.PreAllocation)
	if err != nil {
		return LootSplitResult{}, err
	}

	split, err := ComputeFairSplit(pre.Remainder, in.PartySize, tolerance)
	if err != nil {
		return LootSplitResult{}, err
	}

	fund := pre.Skim.Add(split.Remainder)
	return LootSplitResult{
		PreAllocation:  pre,
		Split:          split,
		FundTotal:      fund,
		FundTotalValue: fund.TotalValue(),
	}, nil
}
