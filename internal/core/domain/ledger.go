package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"party-loot-ledger/pkg/apperror"
)

// SchemaVersion is the persisted document schema version. Imports require an
// exact match.
const SchemaVersion = 1

// Ledger is the append-only party-fund document. The fund balance is never
// stored; it is always derived by replaying the transaction log.
type Ledger struct {
	SchemaVersion  int           `json:"schemaVersion"`
	CreatedAt      time.Time     `json:"createdAt"`
	LastModifiedAt time.Time     `json:"lastModifiedAt"`
	Transactions   []Transaction `json:"transactions"`
}

// NewLedger creates an empty document stamped with the caller-supplied
// session start time.
func NewLedger(createdAt time.Time) *Ledger {
	return &Ledger{
		SchemaVersion:  SchemaVersion,
		CreatedAt:      createdAt.UTC(),
		LastModifiedAt: createdAt.UTC(),
		Transactions:   []Transaction{},
	}
}

// ComputeBalance replays a transaction log into the current fund balance.
// Transactions are ordered by timestamp ascending with the id as the
// deterministic tie-break (lexicographic). A withdraw that overdraws the
// running balance means the log violated append-time validation upstream;
// that is surfaced as LedgerCorrupted, never clamped.
func ComputeBalance(transactions []Transaction) (CoinVector, error) {
	ordered := replayOrder(transactions)

	balance := Zero()
	for _, tx := range ordered {
		switch tx.Kind {
		case TransactionKindDeposit:
			balance = balance.Add(tx.Amounts)
		case TransactionKindWithdraw:
			next, err := balance.Subtract(tx.Amounts)
			if err != nil {
				return CoinVector{}, apperror.ErrLedgerCorrupted(
					fmt.Errorf("withdraw %s overdraws replayed balance: %w", tx.ID, err))
			}
			balance = next
		default:
			return CoinVector{}, apperror.ErrLedgerCorrupted(
				fmt.Errorf("transaction %s has unknown kind %q", tx.ID, tx.Kind))
		}
	}
	return balance, nil
}

// replayOrder returns a copy of the log sorted by timestamp ascending with
// the id as the deterministic tie-break (lexicographic).
func replayOrder(transactions []Transaction) []Transaction {
	ordered := make([]Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

// Balance replays the document's own log.
func (l *Ledger) Balance() (CoinVector, error) {
	return ComputeBalance(l.Transactions)
}

// Append validates a transaction against the replayed log and returns a NEW
// document with it appended; the receiver is never mutated. The transaction's
// timestamp decides its replay position, which may fall anywhere in the log,
// so a withdraw is checked prefix-wise over the sorted candidate log: it must
// leave every running balance non-negative, not just subtract from the final
// one. On success lastModifiedAt is set to the transaction's timestamp.
func (l *Ledger) Append(tx Transaction) (*Ledger, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}
	if _, err := ComputeBalance(l.Transactions); err != nil {
		return nil, err
	}

	next := &Ledger{
		SchemaVersion:  l.SchemaVersion,
		CreatedAt:      l.CreatedAt,
		LastModifiedAt: tx.Timestamp.UTC(),
		Transactions:   make([]Transaction, 0, len(l.Transactions)+1),
	}
	next.Transactions = append(next.Transactions, l.Transactions...)
	next.Transactions = append(next.Transactions, tx)

	if tx.Kind == TransactionKindWithdraw {
		if err := checkWithdrawCoverage(next.Transactions); err != nil {
			return nil, err
		}
	}
	return next, nil
}

// checkWithdrawCoverage replays the candidate log in sorted order and returns
// the Subtract error of the first withdraw that overdraws its prefix. Unlike
// ComputeBalance it reports an ordinary insufficient-funds error: it runs at
// append time, before anything is committed, so the overdraft is a rejected
// input rather than corruption.
func checkWithdrawCoverage(transactions []Transaction) error {
	balance := Zero()
	for _, tx := range replayOrder(transactions) {
		if tx.Kind == TransactionKindWithdraw {
			remaining, err := balance.Subtract(tx.Amounts)
			if err != nil {
				return err
			}
			balance = remaining
			continue
		}
		balance = balance.Add(tx.Amounts)
	}
	return nil
}

// IsCorrupted reports whether err marks a replay-time internal-consistency
// failure rather than an ordinary validation error.
func IsCorrupted(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == "LED_003"
}
