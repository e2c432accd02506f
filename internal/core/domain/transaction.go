package domain

import (
	"encoding/json"
	"time"

	"party-loot-ledger/pkg/apperror"
)

// TransactionKind represents the direction of a ledger entry. Amounts are
// always non-negative; direction is implied solely by the kind.
type TransactionKind string

const (
	TransactionKindDeposit  TransactionKind = "deposit"
	TransactionKindWithdraw TransactionKind = "withdraw"
)

// IsValid reports whether the kind is one of the two known values.
func (k TransactionKind) IsValid() bool {
	return k == TransactionKindDeposit || k == TransactionKindWithdraw
}

// Transaction is an immutable entry in the party-fund ledger. Entries are
// appended exactly once and never edited or deleted. The id and timestamp are
// supplied by the caller; the engine never mints identifiers or reads clocks.
type Transaction struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Kind      TransactionKind `json:"kind"`
	Amounts   CoinVector      `json:"amounts"`
	Note      string          `json:"note,omitempty"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// Validate checks the entry's own invariants: well-formed amounts that are
// not all-zero, a known kind, and a non-empty id.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return apperror.ErrMissingRequiredField("id")
	}
	if t.Timestamp.IsZero() {
		return apperror.ErrMissingRequiredField("timestamp")
	}
	if !t.Kind.IsValid() {
		return apperror.ErrImportInvalidSchema("unknown transaction kind: " + string(t.Kind))
	}
	if err := t.Amounts.Validate(); err != nil {
		return err
	}
	if t.Amounts.IsZero() {
		return apperror.ErrZeroAmountTransaction()
	}
	return nil
}
