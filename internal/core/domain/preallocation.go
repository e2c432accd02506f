package domain

import (
	"math"

	"party-loot-ledger/pkg/apperror"
)

// PreAllocationMode selects how the party-fund skim is computed before the
// per-recipient split.
type PreAllocationMode string

const (
	PreAllocationNone    PreAllocationMode = "none"
	PreAllocationFixed   PreAllocationMode = "fixed"
	PreAllocationPercent PreAllocationMode = "percent"
)

// PreAllocation is the caller's skim choice. Fixed carries the exact vector
// for fixed mode; Percent carries the fraction in [0,1] for percent mode.
type PreAllocation struct {
	Mode    PreAllocationMode
	Fixed   CoinVector
	Percent float64
}

// PreAllocationResult reports the skim and what is left for the recipient
// split. TargetValue and SelectedValue are informational, for percent mode
// display (both zero in the other modes).
type PreAllocationResult struct {
	Skim          CoinVector `json:"skim"`
	Remainder     CoinVector `json:"remainder"`
	TargetValue   int64      `json:"target_value"`
	SelectedValue int64      `json:"selected_value"`
}

// ComputePreAllocation splits loot into {fund skim, remainder}.
//
// Percent mode is under-only: the skim's total value never exceeds
// floor(totalValue(loot) × percent). Selection is a single greedy sweep from
// the highest unit value to the lowest, taking individual coins while they
// fit under the target; there is no backtracking and no cross-denomination
// top-up, so identical inputs always produce identical skims.
func ComputePreAllocation(loot CoinVector, choice PreAllocation) (PreAllocationResult, error) {
	if err := loot.Validate(); err != nil {
		return PreAllocationResult{}, err
	}

	switch choice.Mode {
	case PreAllocationNone:
		return PreAllocationResult{Skim: Zero(), Remainder: loot}, nil

	case PreAllocationFixed:
		if err := choice.Fixed.Validate(); err != nil {
			return PreAllocationResult{}, err
		}
		for _, d := range Denominations {
			requested, available := choice.Fixed.Get(d), loot.Get(d)
			if requested > available {
				return PreAllocationResult{}, apperror.ErrFixedPreAllocationExceedsLoot(string(d), requested, available)
			}
		}
		remainder, err := loot.Subtract(choice.Fixed)
		if err != nil {
			return PreAllocationResult{}, err
		}
		return PreAllocationResult{Skim: choice.Fixed, Remainder: remainder}, nil

	case PreAllocationPercent:
		p := choice.Percent
		if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 || p > 1 {
			return PreAllocationResult{}, apperror.ErrInvalidPercent()
		}
		total := loot.TotalValue()
		if total == 0 {
			return PreAllocationResult{}, apperror.ErrDegenerateLootTotal()
		}
		target := int64(math.Floor(float64(total) * p))

		skim := Zero()
		var selected int64
		for _, d := range Denominations {
			unit := UnitValue(d)
			available := loot.Get(d)
			fit := (target - selected) / unit
			if fit > available {
				fit = available
			}
			if fit > 0 {
				skim = skim.With(d, fit)
				selected += fit * unit
			}
		}

		remainder, err := loot.Subtract(skim)
		if err != nil {
			return PreAllocationResult{}, err
		}
		return PreAllocationResult{
			Skim:          skim,
			Remainder:     remainder,
			TargetValue:   target,
			SelectedValue: selected,
		}, nil
	}

	return PreAllocationResult{}, apperror.ErrInvalidPreAllocationMode(string(choice.Mode))
}
