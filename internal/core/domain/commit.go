package domain

import (
	"encoding/json"
	"time"

	"party-loot-ledger/pkg/apperror"
)

// BuildCommitTransaction merges the two fund-bound pieces of a loot split —
// the pre-allocation skim and the fair-split remainder — into exactly one
// deposit transaction. Never one per recipient, never separate skim and
// remainder entries. The id and timestamp come from the caller.
func BuildCommitTransaction(skim, splitRemainder CoinVector, id string, timestamp time.Time, note string, metadata json.RawMessage) (Transaction, error) {
	amounts := skim.Add(splitRemainder)
	if err := amounts.Validate(); err != nil {
		return Transaction{}, err
	}
	if amounts.IsZero() {
		return Transaction{}, apperror.ErrZeroAmountTransaction()
	}
	if id == "" {
		return Transaction{}, apperror.ErrMissingRequiredField("id")
	}
	if timestamp.IsZero() {
		return Transaction{}, apperror.ErrMissingRequiredField("timestamp")
	}

	return Transaction{
		ID:        id,
		Timestamp: timestamp.UTC(),
		Kind:      TransactionKindDeposit,
		Amounts:   amounts,
		Note:      note,
		Metadata:  metadata,
	}, nil
}
