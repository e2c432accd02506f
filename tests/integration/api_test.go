package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "party-loot-ledger/internal/adapter/http/handler"
	"party-loot-ledger/internal/core/domain"
	"party-loot-ledger/internal/core/ports"
	"party-loot-ledger/internal/service"
	"party-loot-ledger/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds the full application stack over an in-memory ledger store.
// This exercises the real HTTP layer, middleware, handlers, services, and the
// strict document codec end-to-end.

type testApp struct {
	server *httptest.Server
	store  *inMemoryLedgerStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := newInMemoryLedgerStore()
	log := logger.New("debug", false)

	ledgerSvc := service.NewLedgerService(store, log)
	splitSvc := service.NewSplitService(ledgerSvc, domain.DefaultFairnessTolerance, log)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		SplitSvc:       splitSvc,
		HealthCheckers: []ports.HealthChecker{store},
		Logger:         log,
	})

	return &testApp{
		server: httptest.NewServer(router),
		store:  store,
	}
}

func (a *testApp) close() {
	a.server.Close()
}

func (a *testApp) post(t *testing.T, path, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	return resp.StatusCode, parsed
}

func (a *testApp) get(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	return resp.StatusCode, parsed
}

func balanceOf(t *testing.T, data map[string]interface{}) map[string]float64 {
	t.Helper()
	balance := data["data"].(map[string]interface{})["balance"].(map[string]interface{})
	out := make(map[string]float64, len(balance))
	for k, v := range balance {
		out[k] = v.(float64)
	}
	return out
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, body := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_EmptyLedgerBalance(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, body := app.get(t, "/api/v1/ledger/balance")
	require.Equal(t, http.StatusOK, code)

	balance := balanceOf(t, body)
	for _, denom := range []string{"pp", "gp", "ep", "sp", "cp"} {
		assert.Zero(t, balance[denom])
	}
}

func TestIntegration_DepositWithdrawFlow(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, _ := app.post(t, "/api/v1/ledger/deposits",
		`{"amounts": {"pp": 0, "gp": 10, "ep": 0, "sp": 5, "cp": 0}, "note": "session one"}`)
	require.Equal(t, http.StatusCreated, code)

	code, _ = app.post(t, "/api/v1/ledger/withdrawals",
		`{"amounts": {"pp": 0, "gp": 4, "ep": 0, "sp": 0, "cp": 0}, "note": "healing potions"}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := app.get(t, "/api/v1/ledger/balance")
	require.Equal(t, http.StatusOK, code)
	balance := balanceOf(t, body)
	assert.Equal(t, float64(6), balance["gp"])
	assert.Equal(t, float64(5), balance["sp"])

	// Overdrawing one denomination fails even though others could cover it.
	code, body = app.post(t, "/api/v1/ledger/withdrawals",
		`{"amounts": {"pp": 0, "gp": 7, "ep": 0, "sp": 0, "cp": 0}}`)
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "LED_001", body["error_code"])

	// Balance unchanged after the rejected withdrawal.
	_, body = app.get(t, "/api/v1/ledger/balance")
	assert.Equal(t, float64(6), balanceOf(t, body)["gp"])
}

func TestIntegration_SplitCommitConservation(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// 2 gp cannot be spread across 3 recipients within the tolerance, so both
	// are diverted to the fund; the 31 sp distribute as 11/10/10.
	code, body := app.post(t, "/api/v1/split/commit",
		`{"loot": {"pp": 0, "gp": 2, "ep": 0, "sp": 31, "cp": 0}, "party_size": 3, "pre_allocation": {"mode": "none"}, "note": "bandit camp"}`)
	require.Equal(t, http.StatusCreated, code, "body: %v", body)

	data := body["data"].(map[string]interface{})
	result := data["result"].(map[string]interface{})
	split := result["split"].(map[string]interface{})
	shares := split["shares"].([]interface{})
	require.Len(t, shares, 3)

	// Conservation: shares + fund == loot, denomination by denomination.
	total := map[string]float64{}
	for _, s := range shares {
		coins := s.(map[string]interface{})["coins"].(map[string]interface{})
		for k, v := range coins {
			total[k] += v.(float64)
		}
	}
	fund := result["fund_total"].(map[string]interface{})
	for k, v := range fund {
		total[k] += v.(float64)
	}
	assert.Equal(t, float64(2), total["gp"])
	assert.Equal(t, float64(31), total["sp"])

	// The committed fund deposit is now the ledger balance.
	_, balanceBody := app.get(t, "/api/v1/ledger/balance")
	balance := balanceOf(t, balanceBody)
	for k, v := range fund {
		assert.Equal(t, v.(float64), balance[k], k)
	}

	// Exactly one transaction was appended.
	_, txBody := app.get(t, "/api/v1/ledger/transactions")
	assert.Len(t, txBody["data"].([]interface{}), 1)
}

func TestIntegration_SplitCommitWithPercentSkim(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, body := app.post(t, "/api/v1/split/commit",
		`{"loot": {"pp": 1, "gp": 2, "ep": 0, "sp": 3, "cp": 0}, "party_size": 2, "pre_allocation": {"mode": "percent", "percent": 0.5}}`)
	require.Equal(t, http.StatusCreated, code, "body: %v", body)

	result := body["data"].(map[string]interface{})["result"].(map[string]interface{})
	pre := result["pre_allocation"].(map[string]interface{})
	// totalValue 1230, target 615; the sweep takes both gp and all sp for 230.
	assert.Equal(t, float64(615), pre["target_value"])
	assert.Equal(t, float64(230), pre["selected_value"])
}

func TestIntegration_ExportImportRoundTrip(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, _ := app.post(t, "/api/v1/ledger/deposits",
		`{"amounts": {"pp": 1, "gp": 0, "ep": 0, "sp": 0, "cp": 42}}`)
	require.Equal(t, http.StatusCreated, code)

	resp, err := http.Get(app.server.URL + "/api/v1/ledger/export")
	require.NoError(t, err)
	exported, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "party-ledger.json")

	// Import the export into a fresh app and compare balances.
	fresh := newTestApp(t)
	defer fresh.close()

	code, _ = fresh.post(t, "/api/v1/ledger/import", string(exported))
	require.Equal(t, http.StatusOK, code)

	_, body := fresh.get(t, "/api/v1/ledger/balance")
	balance := balanceOf(t, body)
	assert.Equal(t, float64(1), balance["pp"])
	assert.Equal(t, float64(42), balance["cp"])
}

func TestIntegration_RejectedImportKeepsDocument(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, _ := app.post(t, "/api/v1/ledger/deposits",
		`{"amounts": {"pp": 0, "gp": 1, "ep": 0, "sp": 0, "cp": 0}}`)
	require.Equal(t, http.StatusCreated, code)

	// Unknown field is rejected by the strict parser.
	code, body := app.post(t, "/api/v1/ledger/import",
		`{"schemaVersion": 1, "createdAt": "2026-03-14T12:00:00Z", "lastModifiedAt": "2026-03-14T12:00:00Z", "transactions": [], "surprise": true}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "IMP_002", body["error_code"])

	// Wrong schema version too.
	code, body = app.post(t, "/api/v1/ledger/import",
		`{"schemaVersion": 2, "createdAt": "2026-03-14T12:00:00Z", "lastModifiedAt": "2026-03-14T12:00:00Z", "transactions": []}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "IMP_003", body["error_code"])

	// The original document is still active.
	_, balanceBody := app.get(t, "/api/v1/ledger/balance")
	assert.Equal(t, float64(1), balanceOf(t, balanceBody)["gp"])
}

func TestIntegration_SplitPreviewLeavesLedgerUntouched(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, _ := app.post(t, "/api/v1/split/preview",
		`{"loot": {"pp": 0, "gp": 2, "ep": 0, "sp": 4, "cp": 0}, "party_size": 2, "pre_allocation": {"mode": "none"}}`)
	require.Equal(t, http.StatusOK, code)

	_, body := app.get(t, "/api/v1/ledger/transactions")
	assert.Empty(t, body["data"].([]interface{}))
}
