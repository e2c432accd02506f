package dto

import (
	"encoding/json"

	"party-loot-ledger/internal/core/domain"
)

// CoinAmounts carries raw denomination counts as undecoded JSON numbers so
// the engine can report the precise validation sub-kind (negative,
// non-integer, not-finite) per denomination.
type CoinAmounts map[string]json.Number

// TransactionRequest is the request body for manual deposits and withdrawals.
type TransactionRequest struct {
	Amounts  CoinAmounts     `json:"amounts" binding:"required"`
	Note     string          `json:"note,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
}

// PreAllocationPayload is the caller's skim choice for a loot split.
type PreAllocationPayload struct {
	Mode    string      `json:"mode" binding:"required"`
	Percent *float64    `json:"percent,omitempty"`
	Fixed   CoinAmounts `json:"fixed,omitempty"`
}

// SplitRequest is the request body for split preview and commit. PartySize is
// kept as a raw number so fractional values map to InvalidPartySize rather
// than a generic decode failure.
type SplitRequest struct {
	Loot          CoinAmounts          `json:"loot" binding:"required"`
	PartySize     json.Number          `json:"party_size" binding:"required"`
	PreAllocation PreAllocationPayload `json:"pre_allocation" binding:"required"`
	Note          string               `json:"note,omitempty"`
}

// BalanceResponse reports the replayed fund balance.
type BalanceResponse struct {
	Balance    domain.CoinVector `json:"balance"`
	TotalValue int64             `json:"total_value"`
}

// TransactionResponse is the response body for ledger entries.
type TransactionResponse struct {
	ID        string            `json:"id"`
	Timestamp string            `json:"timestamp"`
	Kind      string            `json:"kind"`
	Amounts   domain.CoinVector `json:"amounts"`
	Note      string            `json:"note,omitempty"`
	Metadata  json.RawMessage   `json:"metadata,omitempty"`
}

// LedgerResponse summarizes a ledger document without its balance (the
// balance is never stored, only derived).
type LedgerResponse struct {
	SchemaVersion    int    `json:"schema_version"`
	CreatedAt        string `json:"created_at"`
	LastModifiedAt   string `json:"last_modified_at"`
	TransactionCount int    `json:"transaction_count"`
}

// SplitCommitResponse pairs a split result with the single appended fund
// transaction.
type SplitCommitResponse struct {
	Result      domain.LootSplitResult `json:"result"`
	Transaction TransactionResponse    `json:"transaction"`
}
