package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports/mocks"
	"party-loot-ledger/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newJSONContext(t *testing.T, method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Ledger Handler Tests ---

func TestGetBalance_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().Balance(gomock.Any()).
		Return(domain.CoinVector{Gold: 2, Copper: 5}, int64(205), nil)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/ledger/balance", nil)
	h.GetBalance(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(205), data["total_value"])
	balance := data["balance"].(map[string]interface{})
	assert.Equal(t, float64(2), balance["gp"])
	assert.Equal(t, float64(5), balance["cp"])
}

func TestGetBalance_CorruptedDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().Balance(gomock.Any()).
		Return(domain.CoinVector{}, int64(0), apperror.ErrLedgerCorrupted(errors.New("replay overdraft")))

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/ledger/balance", nil)
	h.GetBalance(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "LED_003", resp["error_code"])
}

func TestListTransactions_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().History(gomock.Any()).Return([]domain.Transaction{}, nil)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/ledger/transactions", nil)
	h.ListTransactions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].([]interface{})
	assert.Empty(t, data)
}

func TestDeposit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().Append(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, tx domain.Transaction) (*domain.Ledger, error) {
			// The handler mints the id and timestamp.
			_, err := uuid.Parse(tx.ID)
			assert.NoError(t, err)
			assert.False(t, tx.Timestamp.IsZero())
			assert.Equal(t, time.UTC, tx.Timestamp.Location())
			assert.Equal(t, domain.TransactionKindDeposit, tx.Kind)
			assert.Equal(t, domain.CoinVector{Gold: 3, Silver: 1}, tx.Amounts)
			assert.Equal(t, "dragon hoard", tx.Note)
			ledger := domain.NewLedger(tx.Timestamp)
			return ledger.Append(tx)
		})

	body := []byte(`{"amounts": {"pp": 0, "gp": 3, "ep": 0, "sp": 1, "cp": 0}, "note": "dragon hoard"}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/deposits", body)
	h.Deposit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "deposit", data["kind"])
	assert.Equal(t, "dragon hoard", data["note"])
}

func TestDeposit_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	body := []byte(`{"amounts": {"pp": 0, "gp": -1, "ep": 0, "sp": 0, "cp": 0}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/deposits", body)
	h.Deposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "VEC_001", resp["error_code"])
}

func TestDeposit_FractionalAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	body := []byte(`{"amounts": {"pp": 0, "gp": 0, "ep": 0, "sp": 0, "cp": 1.5}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/deposits", body)
	h.Deposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "VEC_002", resp["error_code"])
}

func TestDeposit_MissingAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/deposits", []byte(`{}`))
	h.Deposit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().Append(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInsufficientFunds("gp"))

	body := []byte(`{"amounts": {"pp": 0, "gp": 100, "ep": 0, "sp": 0, "cp": 0}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/withdrawals", body)
	h.Withdraw(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "LED_001", resp["error_code"])
	details := resp["details"].(map[string]interface{})
	assert.Equal(t, "gp", details["denomination"])
}

func TestExport_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	raw := []byte(`{"schemaVersion": 1}`)
	mockLedger.EXPECT().Export(gomock.Any()).Return(raw, nil)

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/ledger/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="party-ledger.json"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, raw, w.Body.Bytes())
}

func TestExport_NoDocument(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	mockLedger.EXPECT().Export(gomock.Any()).Return(nil, apperror.ErrNoDocument())

	c, w := newJSONContext(t, http.MethodGet, "/api/v1/ledger/export", nil)
	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImport_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	body := []byte(`{"schemaVersion": 1, "createdAt": "2026-03-14T12:00:00Z", "lastModifiedAt": "2026-03-14T12:00:00Z", "transactions": []}`)
	mockLedger.EXPECT().Import(gomock.Any(), body).
		Return(domain.NewLedger(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)), nil)

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/import", body)
	h.Import(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["schema_version"])
	assert.Equal(t, float64(0), data["transaction_count"])
}

func TestImport_UnknownField(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLedger := mocks.NewMockLedgerService(ctrl)
	h := NewLedgerHandler(mockLedger)

	body := []byte(`{"schemaVersion": 1, "extra": true}`)
	mockLedger.EXPECT().Import(gomock.Any(), body).
		Return(nil, apperror.ErrImportInvalidSchema(`unknown field "extra"`))

	c, w := newJSONContext(t, http.MethodPost, "/api/v1/ledger/import", body)
	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "IMP_002", resp["error_code"])
}

// --- Split Handler Tests ---

func TestSplitPreview_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	want := domain.LootSplitInput{
		Loot:          domain.CoinVector{Gold: 2, Silver: 4},
		PartySize:     2,
		PreAllocation: domain.PreAllocation{Mode: domain.PreAllocationNone},
	}
	result, err := domain.ComputeLootSplit(want, domain.DefaultFairnessTolerance)
	require.NoError(t, err)

	mockSplit.EXPECT().PreviewSplit(want).Return(result, nil)

	body := []byte(`{"loot": {"pp": 0, "gp": 2, "ep": 0, "sp": 4, "cp": 0}, "party_size": 2, "pre_allocation": {"mode": "none"}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/preview", body)
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	split := data["split"].(map[string]interface{})
	assert.Len(t, split["shares"].([]interface{}), 2)
}

func TestSplitPreview_FixedModeForwardsVector(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	want := domain.LootSplitInput{
		Loot:      domain.CoinVector{Gold: 5},
		PartySize: 3,
		PreAllocation: domain.PreAllocation{
			Mode:  domain.PreAllocationFixed,
			Fixed: domain.CoinVector{Gold: 2},
		},
	}
	mockSplit.EXPECT().PreviewSplit(want).Return(domain.LootSplitResult{}, nil)

	body := []byte(`{"loot": {"pp": 0, "gp": 5, "ep": 0, "sp": 0, "cp": 0}, "party_size": 3, "pre_allocation": {"mode": "fixed", "fixed": {"pp": 0, "gp": 2, "ep": 0, "sp": 0, "cp": 0}}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/preview", body)
	h.Preview(c)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSplitPreview_FractionalPartySize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	body := []byte(`{"loot": {"pp": 0, "gp": 1, "ep": 0, "sp": 0, "cp": 0}, "party_size": 2.5, "pre_allocation": {"mode": "none"}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/preview", body)
	h.Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "SPL_001", resp["error_code"])
}

func TestSplitPreview_PercentModeRequiresPercent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	body := []byte(`{"loot": {"pp": 0, "gp": 1, "ep": 0, "sp": 0, "cp": 0}, "party_size": 2, "pre_allocation": {"mode": "percent"}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/preview", body)
	h.Preview(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "SPL_003", resp["error_code"])
}

func TestSplitCommit_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	committed := domain.Transaction{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Kind:      domain.TransactionKindDeposit,
		Amounts:   domain.CoinVector{Gold: 1},
		Note:      "goblin cave",
	}
	mockSplit.EXPECT().
		CommitSplit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), "goblin cave").
		Return(domain.LootSplitResult{FundTotal: domain.CoinVector{Gold: 1}, FundTotalValue: 100}, &committed, nil)

	body := []byte(`{"loot": {"pp": 0, "gp": 3, "ep": 0, "sp": 0, "cp": 0}, "party_size": 2, "pre_allocation": {"mode": "none"}, "note": "goblin cave"}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/commit", body)
	h.Commit(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	tx := data["transaction"].(map[string]interface{})
	assert.Equal(t, committed.ID, tx["id"])
	assert.Equal(t, "deposit", tx["kind"])
}

func TestSplitCommit_EmptyFund(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSplit := mocks.NewMockSplitService(ctrl)
	h := NewSplitHandler(mockSplit)

	mockSplit.EXPECT().
		CommitSplit(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.LootSplitResult{}, nil, apperror.ErrZeroAmountTransaction())

	body := []byte(`{"loot": {"pp": 0, "gp": 0, "ep": 0, "sp": 0, "cp": 100}, "party_size": 4, "pre_allocation": {"mode": "none"}}`)
	c, w := newJSONContext(t, http.MethodPost, "/api/v1/split/commit", body)
	h.Commit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "LED_002", resp["error_code"])
}

// --- Health Handler Tests ---

func TestHealthCheck_Healthy(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := mocks.NewMockHealthChecker(ctrl)
	checker.EXPECT().Ping(gomock.Any()).Return(nil)
	checker.EXPECT().Name().Return("file")

	c, w := newJSONContext(t, http.MethodGet, "/health", nil)
	HealthCheck(checker)(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "healthy", resp["status"])
}

func TestHealthCheck_Degraded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	checker := mocks.NewMockHealthChecker(ctrl)
	checker.EXPECT().Ping(gomock.Any()).Return(errors.New("disk gone"))
	checker.EXPECT().Name().Return("sqlite")

	c, w := newJSONContext(t, http.MethodGet, "/health", nil)
	HealthCheck(checker)(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeEnvelope(t, w)
	assert.Equal(t, "degraded", resp["status"])
	deps := resp["dependencies"].(map[string]interface{})
	sqlite := deps["sqlite"].(map[string]interface{})
	assert.Equal(t, "unhealthy", sqlite["status"])
}
