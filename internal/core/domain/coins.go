package domain

import (
	"encoding/json"
	"math"
	"strconv"

	"party-loot-ledger/pkg/apperror"
)

// Denomination identifies one of the five fixed currency tiers.
type Denomination string

const (
	Platinum Denomination = "pp"
	Gold     Denomination = "gp"
	Electrum Denomination = "ep"
	Silver   Denomination = "sp"
	Copper   Denomination = "cp"
)

// Denominations lists the five tiers in descending unit value. Every
// order-dependent algorithm iterates this list by index, never map keys.
var Denominations = [5]Denomination{Platinum, Gold, Electrum, Silver, Copper}

// MaxCoinCount is the largest count every collaborator can represent exactly
// (the persisted JSON may pass through IEEE-754 consumers): 2^53 - 1.
const MaxCoinCount = int64(1)<<53 - 1

// UnitValue returns a denomination's value in the smallest unit (copper).
// Informational only; coins are never exchanged across denominations.
func UnitValue(d Denomination) int64 {
	switch d {
	case Platinum:
		return 1000
	case Gold:
		return 100
	case Electrum:
		return 50
	case Silver:
		return 10
	case Copper:
		return 1
	}
	return 0
}

// CoinVector holds a non-negative count per denomination. It is an immutable
// value type: every operation returns a fresh vector.
type CoinVector struct {
	Platinum int64 `json:"pp"`
	Gold     int64 `json:"gp"`
	Electrum int64 `json:"ep"`
	Silver   int64 `json:"sp"`
	Copper   int64 `json:"cp"`
}

// Zero returns the all-zero vector.
func Zero() CoinVector {
	return CoinVector{}
}

// Get returns the count for a denomination.
func (v CoinVector) Get(d Denomination) int64 {
	switch d {
	case Platinum:
		return v.Platinum
	case Gold:
		return v.Gold
	case Electrum:
		return v.Electrum
	case Silver:
		return v.Silver
	case Copper:
		return v.Copper
	}
	return 0
}

// With returns a copy of the vector with one denomination's count replaced.
func (v CoinVector) With(d Denomination, count int64) CoinVector {
	switch d {
	case Platinum:
		v.Platinum = count
	case Gold:
		v.Gold = count
	case Electrum:
		v.Electrum = count
	case Silver:
		v.Silver = count
	case Copper:
		v.Copper = count
	}
	return v
}

// Add returns the element-wise sum of two vectors.
func (v CoinVector) Add(o CoinVector) CoinVector {
	return CoinVector{
		Platinum: v.Platinum + o.Platinum,
		Gold:     v.Gold + o.Gold,
		Electrum: v.Electrum + o.Electrum,
		Silver:   v.Silver + o.Silver,
		Copper:   v.Copper + o.Copper,
	}
}

// Subtract returns the element-wise difference v - o. It fails with
// InsufficientFunds naming the first denomination, in descending-value order,
// that would go negative. Coins are never borrowed across denominations.
func (v CoinVector) Subtract(o CoinVector) (CoinVector, error) {
	out := v
	for _, d := range Denominations {
		remaining := v.Get(d) - o.Get(d)
		if remaining < 0 {
			return CoinVector{}, apperror.ErrInsufficientFunds(string(d))
		}
		out = out.With(d, remaining)
	}
	return out, nil
}

// IsZero reports whether every count is zero.
func (v CoinVector) IsZero() bool {
	return v == CoinVector{}
}

// TotalValue returns the vector's value in the smallest unit, exact integer
// arithmetic. Used for informational totals and percent targets only. Five
// counts at the per-denomination bound still overflow an int64 when summed,
// so the total saturates at MaxInt64 instead of wrapping negative.
func (v CoinVector) TotalValue() int64 {
	var total int64
	for _, d := range Denominations {
		count, unit := v.Get(d), UnitValue(d)
		if count > (math.MaxInt64-total)/unit {
			return math.MaxInt64
		}
		total += count * unit
	}
	return total
}

// Validate checks every count is non-negative and within the safe range.
// The first violation is reported with its denomination, in descending-value
// order.
func (v CoinVector) Validate() error {
	for _, d := range Denominations {
		count := v.Get(d)
		if count < 0 {
			return apperror.ErrNegativeAmount(string(d))
		}
		if count > MaxCoinCount {
			return apperror.ErrNotFiniteAmount(string(d))
		}
	}
	return nil
}

// ParseCoinVector builds a validated vector from raw JSON numbers, one per
// denomination key. All five keys must be present and no others. Raw tokens
// are inspected so fractional and out-of-range values get their own
// sub-kind instead of a generic decode failure.
func ParseCoinVector(raw map[string]json.Number) (CoinVector, error) {
	for key := range raw {
		if UnitValue(Denomination(key)) == 0 {
			return CoinVector{}, apperror.ErrImportInvalidSchema("unknown denomination key: " + key)
		}
	}

	out := CoinVector{}
	for _, d := range Denominations {
		num, ok := raw[string(d)]
		if !ok {
			return CoinVector{}, apperror.ErrMissingRequiredField("amounts." + string(d))
		}
		count, err := parseCoinCount(d, num)
		if err != nil {
			return CoinVector{}, err
		}
		out = out.With(d, count)
	}
	return out, nil
}

func parseCoinCount(d Denomination, num json.Number) (int64, error) {
	if count, err := strconv.ParseInt(num.String(), 10, 64); err == nil {
		if count < 0 {
			return 0, apperror.ErrNegativeAmount(string(d))
		}
		if count > MaxCoinCount {
			return 0, apperror.ErrNotFiniteAmount(string(d))
		}
		return count, nil
	}

	// Not a plain integer token: fractional, exponent form, or too large.
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, apperror.ErrNotFiniteAmount(string(d))
	}
	if f != math.Trunc(f) {
		return 0, apperror.ErrNonIntegerAmount(string(d))
	}
	if f < 0 {
		return 0, apperror.ErrNegativeAmount(string(d))
	}
	if f > float64(MaxCoinCount) {
		return 0, apperror.ErrNotFiniteAmount(string(d))
	}
	return int64(f), nil
}
