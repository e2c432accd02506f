package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"party-loot-ledger/pkg/apperror"
)

// rawDocument mirrors the persisted JSON shape with every field optional so
// missing ones can be reported precisely instead of defaulting silently.
type rawDocument struct {
	SchemaVersion  *json.Number      `json:"schemaVersion"`
	CreatedAt      *string           `json:"createdAt"`
	LastModifiedAt *string           `json:"lastModifiedAt"`
	Transactions   *[]rawTransaction `json:"transactions"`
}

type rawTransaction struct {
	ID        *string                `json:"id"`
	Timestamp *string                `json:"timestamp"`
	Kind      *string                `json:"kind"`
	Amounts   map[string]json.Number `json:"amounts"`
	Note      *string                `json:"note"`
	Metadata  json.RawMessage        `json:"metadata"`
}

// ParseDocument strictly validates a persisted or imported ledger document.
// It requires an exact schema version match, every field the schema names,
// valid coin vectors, and a full replay of the transaction list in FILE
// ORDER applying the same per-step overdraft check as append. This is the
// consistency gate against hand-edited or corrupted files; a failed parse
// must leave any previously loaded document untouched (import is full
// replace, never a merge).
func ParseDocument(raw []byte) (*Ledger, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	dec.DisallowUnknownFields()

	var doc rawDocument
	if err := dec.Decode(&doc); err != nil {
		if strings.Contains(err.Error(), "unknown field") {
			return nil, apperror.ErrImportInvalidSchema(err.Error())
		}
		return nil, apperror.ErrImportParse(err)
	}
	// Trailing garbage after the document object is also a parse failure.
	if dec.More() {
		return nil, apperror.ErrImportParse(fmt.Errorf("trailing data after document object"))
	}

	if doc.SchemaVersion == nil {
		return nil, apperror.ErrMissingRequiredField("schemaVersion")
	}
	version, err := doc.SchemaVersion.Int64()
	if err != nil {
		return nil, apperror.ErrImportInvalidSchema("schemaVersion must be an integer")
	}
	if version != SchemaVersion {
		return nil, apperror.ErrImportUnsupportedSchemaVersion(int(version))
	}

	createdAt, err := parseInstant("createdAt", doc.CreatedAt)
	if err != nil {
		return nil, err
	}
	lastModifiedAt, err := parseInstant("lastModifiedAt", doc.LastModifiedAt)
	if err != nil {
		return nil, err
	}
	if doc.Transactions == nil {
		return nil, apperror.ErrMissingRequiredField("transactions")
	}

	transactions := make([]Transaction, 0, len(*doc.Transactions))
	balance := Zero()
	for i, rawTx := range *doc.Transactions {
		tx, err := parseTransaction(i, rawTx)
		if err != nil {
			return nil, err
		}

		// Replay in file order with the append-time overdraft check.
		switch tx.Kind {
		case TransactionKindDeposit:
			balance = balance.Add(tx.Amounts)
		case TransactionKindWithdraw:
			balance, err = balance.Subtract(tx.Amounts)
			if err != nil {
				return nil, err
			}
		}
		transactions = append(transactions, tx)
	}

	return &Ledger{
		SchemaVersion:  int(version),
		CreatedAt:      createdAt,
		LastModifiedAt: lastModifiedAt,
		Transactions:   transactions,
	}, nil
}

// EncodeDocument renders the canonical persisted JSON for a ledger document.
func EncodeDocument(l *Ledger) ([]byte, error) {
	raw, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("encode ledger document: %w", err))
	}
	return raw, nil
}

func parseTransaction(index int, raw rawTransaction) (Transaction, error) {
	field := func(name string) string {
		return fmt.Sprintf("transactions[%d].%s", index, name)
	}

	if raw.ID == nil || *raw.ID == "" {
		return Transaction{}, apperror.ErrMissingRequiredField(field("id"))
	}
	if raw.Kind == nil {
		return Transaction{}, apperror.ErrMissingRequiredField(field("kind"))
	}
	kind := TransactionKind(*raw.Kind)
	if !kind.IsValid() {
		return Transaction{}, apperror.ErrImportInvalidSchema(
			fmt.Sprintf("%s has unknown kind %q", field("kind"), *raw.Kind))
	}
	timestamp, err := parseInstant(field("timestamp"), raw.Timestamp)
	if err != nil {
		return Transaction{}, err
	}
	if raw.Amounts == nil {
		return Transaction{}, apperror.ErrMissingRequiredField(field("amounts"))
	}
	amounts, err := ParseCoinVector(raw.Amounts)
	if err != nil {
		return Transaction{}, err
	}
	if amounts.IsZero() {
		return Transaction{}, apperror.ErrZeroAmountTransaction()
	}

	tx := Transaction{
		ID:        *raw.ID,
		Timestamp: timestamp,
		Kind:      kind,
		Amounts:   amounts,
		Metadata:  raw.Metadata,
	}
	if raw.Note != nil {
		tx.Note = *raw.Note
	}
	return tx, nil
}

func parseInstant(field string, value *string) (time.Time, error) {
	if value == nil || *value == "" {
		return time.Time{}, apperror.ErrMissingRequiredField(field)
	}
	instant, err := time.Parse(time.RFC3339Nano, *value)
	if err != nil {
		return time.Time{}, apperror.ErrImportInvalidSchema(
			fmt.Sprintf("%s is not a valid UTC instant: %v", field, err))
	}
	return instant.UTC(), nil
}
