package domain

import (
	"party-loot-ledger/pkg/apperror"
)

// DefaultFairnessTolerance is the maximum allowed increase in spread
// (max − min recipient total, in value units) a single coin assignment may
// cause before that coin is diverted to the fund instead.
const DefaultFairnessTolerance int64 = 10

// RecipientShare is one recipient's allocation and its running total value.
type RecipientShare struct {
	Coins CoinVector `json:"coins"`
	Total int64      `json:"total"`
}

// SplitStats summarizes the recipient totals after a split. Average uses
// floor division.
type SplitStats struct {
	Average int64 `json:"average"`
	Min     int64 `json:"min"`
	Max     int64 `json:"max"`
	Spread  int64 `json:"spread"`
}

// FairSplitResult holds the per-recipient allocations, the coins diverted to
// the fund, and summary statistics.
type FairSplitResult struct {
	Shares    []RecipientShare `json:"shares"`
	Remainder CoinVector       `json:"remainder"`
	Stats     SplitStats       `json:"stats"`
}

// ComputeFairSplit partitions coins among partySize recipients by discrete
// greedy balancing. Coins are processed from the highest unit value down
// (order within a denomination is irrelevant, the sweep is stable by
// denomination rank). Each coin goes to the recipient with the lowest running
// total, earliest index winning ties — unless committing it would widen the
// spread by more than the tolerance, in which case the coin is diverted to
// the fund remainder. No coin is ever split or exchanged.
func ComputeFairSplit(remainder CoinVector, partySize int, tolerance int64) (FairSplitResult, error) {
	if partySize < 1 {
		return FairSplitResult{}, apperror.ErrInvalidPartySize()
	}
	if err := remainder.Validate(); err != nil {
		return FairSplitResult{}, err
	}

	shares := make([]RecipientShare, partySize)
	diverted := Zero()

	for _, d := range Denominations {
		unit := UnitValue(d)
		for c := int64(0); c < remainder.Get(d); c++ {
			target := minTotalIndex(shares)
			curMin, curMax := totalBounds(shares)

			simulated := shares[target].Total + unit
			simMin, simMax := simulated, curMax
			for i, s := range shares {
				if i == target {
					continue
				}
				if s.Total < simMin {
					simMin = s.Total
				}
			}
			if simulated > simMax {
				simMax = simulated
			}

			if simMax-simMin <= (curMax-curMin)+tolerance {
				shares[target].Coins = shares[target].Coins.With(d, shares[target].Coins.Get(d)+1)
				shares[target].Total += unit
			} else {
				diverted = diverted.With(d, diverted.Get(d)+1)
			}
		}
	}

	return FairSplitResult{
		Shares:    shares,
		Remainder: diverted,
		Stats:     summarize(shares),
	}, nil
}

// minTotalIndex returns the index of the lowest running total; the earliest
// index wins ties.
func minTotalIndex(shares []RecipientShare) int {
	min := 0
	for i := 1; i < len(shares); i++ {
		if shares[i].Total < shares[min].Total {
			min = i
		}
	}
	return min
}

func totalBounds(shares []RecipientShare) (min, max int64) {
	min, max = shares[0].Total, shares[0].Total
	for _, s := range shares[1:] {
		if s.Total < min {
			min = s.Total
		}
		if s.Total > max {
			max = s.Total
		}
	}
	return min, max
}

func summarize(shares []RecipientShare) SplitStats {
	var sum int64
	min, max := totalBounds(shares)
	for _, s := range shares {
		sum += s.Total
	}
	return SplitStats{
		Average: sum / int64(len(shares)),
		Min:     min,
		Max:     max,
		Spread:  max - min,
	}
}
