package handler

import (
	"io"
	"time"

	"party-loot-ledger/internal/adapter/http/dto"
	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports"
	"party-loot-ledger/pkg/apperror"
	"party-loot-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LedgerHandler handles party-fund ledger endpoints. It mints transaction
// ids and timestamps on behalf of the engine, which never does either.
type LedgerHandler struct {
	ledgerSvc ports.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerSvc ports.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

// GetBalance handles GET /api/v1/ledger/balance.
func (h *LedgerHandler) GetBalance(c *gin.Context) {
	balance, total, err := h.ledgerSvc.Balance(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.BalanceResponse{Balance: balance, TotalValue: total})
}

// ListTransactions handles GET /api/v1/ledger/transactions.
func (h *LedgerHandler) ListTransactions(c *gin.Context) {
	history, err := h.ledgerSvc.History(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.TransactionResponse, 0, len(history))
	for _, tx := range history {
		out = append(out, toTransactionResponse(tx))
	}
	response.OK(c, out)
}

// Deposit handles POST /api/v1/ledger/deposits.
func (h *LedgerHandler) Deposit(c *gin.Context) {
	h.appendTransaction(c, domain.TransactionKindDeposit)
}

// Withdraw handles POST /api/v1/ledger/withdrawals.
func (h *LedgerHandler) Withdraw(c *gin.Context) {
	h.appendTransaction(c, domain.TransactionKindWithdraw)
}

func (h *LedgerHandler) appendTransaction(c *gin.Context, kind domain.TransactionKind) {
	var req dto.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	amounts, err := domain.ParseCoinVector(req.Amounts)
	if err != nil {
		response.Error(c, err)
		return
	}

	tx := domain.Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Kind:      kind,
		Amounts:   amounts,
		Note:      req.Note,
		Metadata:  req.Metadata,
	}

	if _, err := h.ledgerSvc.Append(c.Request.Context(), tx); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, toTransactionResponse(tx))
}

// Export handles GET /api/v1/ledger/export — the file-download counterpart.
func (h *LedgerHandler) Export(c *gin.Context) {
	raw, err := h.ledgerSvc.Export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="party-ledger.json"`)
	c.Data(200, "application/json", raw)
}

// Import handles POST /api/v1/ledger/import — a strict full replace. A
// rejected file leaves the current document active.
func (h *LedgerHandler) Import(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, apperror.Validation("cannot read request body"))
		return
	}

	ledger, err := h.ledgerSvc.Import(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, toLedgerResponse(ledger))
}

func toTransactionResponse(tx domain.Transaction) dto.TransactionResponse {
	return dto.TransactionResponse{
		ID:        tx.ID,
		Timestamp: tx.Timestamp.UTC().Format(time.RFC3339Nano),
		Kind:      string(tx.Kind),
		Amounts:   tx.Amounts,
		Note:      tx.Note,
		Metadata:  tx.Metadata,
	}
}

func toLedgerResponse(l *domain.Ledger) dto.LedgerResponse {
	return dto.LedgerResponse{
		SchemaVersion:    l.SchemaVersion,
		CreatedAt:        l.CreatedAt.UTC().Format(time.RFC3339Nano),
		LastModifiedAt:   l.LastModifiedAt.UTC().Format(time.RFC3339Nano),
		TransactionCount: len(l.Transactions),
	}
}
