package apperror

import (
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses. Details carries
// machine-readable context (denomination, requested/available counts) so
// callers can inspect a failure without parsing the message.
type AppError struct {
	Code       string         `json:"error_code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// WithDetails attaches machine-readable context and returns the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

// ---- Coin Vector Validation (VEC) ----

func ErrNegativeAmount(denom string) *AppError {
	return New("VEC_001", "Coin count must not be negative", http.StatusBadRequest).
		WithDetails(map[string]any{"denomination": denom})
}

func ErrNonIntegerAmount(denom string) *AppError {
	return New("VEC_002", "Coin count must be an integer", http.StatusBadRequest).
		WithDetails(map[string]any{"denomination": denom})
}

func ErrNotFiniteAmount(denom string) *AppError {
	return New("VEC_003", "Coin count must be a finite number within the safe range", http.StatusBadRequest).
		WithDetails(map[string]any{"denomination": denom})
}

// ---- Ledger Business Logic (LED) ----

func ErrInsufficientFunds(denom string) *AppError {
	return New("LED_001", "Insufficient funds in the party ledger", http.StatusPaymentRequired).
		WithDetails(map[string]any{"denomination": denom})
}

func ErrZeroAmountTransaction() *AppError {
	return New("LED_002", "Transaction amounts must not all be zero", http.StatusBadRequest)
}

func ErrNoDocument() *AppError {
	return New("LED_004", "No ledger document exists yet", http.StatusNotFound)
}

// ErrLedgerCorrupted marks a replay overdraft in a document that already
// passed append-time validation. This is an internal-consistency failure,
// never an input validation one.
func ErrLedgerCorrupted(err error) *AppError {
	return Wrap("LED_003", "Ledger replay produced a negative balance", http.StatusInternalServerError, err)
}

// ---- Split & Pre-Allocation (SPL) ----

func ErrInvalidPartySize() *AppError {
	return New("SPL_001", "Party size must be an integer greater than zero", http.StatusBadRequest)
}

func ErrFixedPreAllocationExceedsLoot(denom string, requested, available int64) *AppError {
	return New("SPL_002", "Fixed pre-allocation exceeds the available loot", http.StatusBadRequest).
		WithDetails(map[string]any{
			"denomination": denom,
			"requested":    requested,
			"available":    available,
		})
}

func ErrInvalidPercent() *AppError {
	return New("SPL_003", "Percent must be a finite number between 0 and 1", http.StatusBadRequest)
}

func ErrDegenerateLootTotal() *AppError {
	return New("SPL_004", "Percent pre-allocation of zero-value loot is undefined", http.StatusBadRequest)
}

func ErrInvalidPreAllocationMode(mode string) *AppError {
	return New("SPL_005", "Unknown pre-allocation mode", http.StatusBadRequest).
		WithDetails(map[string]any{"mode": mode})
}

// ---- Document Import (IMP) ----

func ErrImportParse(err error) *AppError {
	return Wrap("IMP_001", "Imported document is not valid JSON", http.StatusBadRequest, err)
}

func ErrImportInvalidSchema(reason string) *AppError {
	return New("IMP_002", "Imported document does not match the ledger schema", http.StatusBadRequest).
		WithDetails(map[string]any{"reason": reason})
}

func ErrImportUnsupportedSchemaVersion(got int) *AppError {
	return New("IMP_003", "Imported document has an unsupported schema version", http.StatusBadRequest).
		WithDetails(map[string]any{"schema_version": got})
}

func ErrMissingRequiredField(field string) *AppError {
	return New("IMP_004", "Imported document is missing a required field", http.StatusBadRequest).
		WithDetails(map[string]any{"field": field})
}

// ---- System & Infrastructure (SYS) ----

func ErrStorage(err error) *AppError {
	return Wrap("SYS_001", "Internal storage error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_002 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_002", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a generic request validation error.
func Validation(message string) *AppError {
	return New("VEC_000", message, http.StatusBadRequest)
}
