package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/middleware"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/migrations"
)

type apiTransaction struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Amount    float64 `json:"amount"`
	SessionID string  `json:"session_id"`
	CreatedAt string  `json:"created_at"`
}

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	env := &config.Config{
		Environment:    config.EnvironmentTest,
		DatabaseClient: config.DatabaseClientSQLite,
		DatabaseURL:    filepath.Join(t.TempDir(), "ledger.db"),
		Port:           3333,
		LogLevel:       logrus.InfoLevel,
	}

	_, err := migrations.Up(ctx, env)
	require.NoError(t, err)

	store, err := storage.NewStorage(ctx, env)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	logger := logging.SetupLogging(logrus.InfoLevel)
	logger.Out = io.Discard

	rest := &Rest{
		Logger:  logger,
		Port:    env.Port,
		Service: service.NewService(store),
		DB:      store.DB,
	}
	return rest.Handler()
}

func do(t *testing.T, h http.Handler, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: "sessionId", Value: sessionID})
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func sessionFrom(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == "sessionId" {
			return c.Value
		}
	}
	t.Fatal("no sessionId cookie issued")
	return ""
}

func listTransactions(t *testing.T, h http.Handler, sessionID string) []apiTransaction {
	t.Helper()
	w := do(t, h, http.MethodGet, "/transactions", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Transactions []apiTransaction `json:"transactions"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Transactions
}

func balance(t *testing.T, h http.Handler, sessionID string) float64 {
	t.Helper()
	w := do(t, h, http.MethodGet, "/transactions/summary", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Summary struct {
			Balance float64 `json:"balance"`
		} `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body.Summary.Balance
}

func TestLedgerScenario(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title":  "Post transaction test",
		"amount": 42,
		"type":   "credit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())
	sessionID := sessionFrom(t, w)
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=604800")

	txs := listTransactions(t, h, sessionID)
	require.Len(t, txs, 1)
	assert.Equal(t, "Post transaction test", txs[0].Title)
	assert.Equal(t, float64(42), txs[0].Amount)
	assert.Equal(t, sessionID, txs[0].SessionID)
	assert.NotEmpty(t, txs[0].CreatedAt)

	w = do(t, h, http.MethodGet, "/transactions/"+txs[0].ID, sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got struct {
		Transaction *apiTransaction `json:"transaction"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.NotNil(t, got.Transaction)
	assert.Equal(t, txs[0], *got.Transaction)

	w = do(t, h, http.MethodPost, "/transactions", sessionID, map[string]interface{}{
		"title":  "Post transaction test",
		"amount": 12,
		"type":   "debit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"))

	txs = listTransactions(t, h, sessionID)
	require.Len(t, txs, 2)
	assert.Equal(t, float64(-12), txs[1].Amount)

	assert.Equal(t, float64(30), balance(t, h, sessionID))
}

func TestSessionIsolation(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title": "Mine", "amount": 100, "type": "credit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	mine := sessionFrom(t, w)

	w = do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title": "Theirs", "amount": 5, "type": "debit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	theirs := sessionFrom(t, w)
	require.NotEqual(t, mine, theirs)

	myTxs := listTransactions(t, h, mine)
	require.Len(t, myTxs, 1)
	assert.Equal(t, "Mine", myTxs[0].Title)

	w = do(t, h, http.MethodGet, "/transactions/"+myTxs[0].ID, theirs, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transaction":null}`, w.Body.String())

	assert.Equal(t, float64(100), balance(t, h, mine))
	assert.Equal(t, float64(-5), balance(t, h, theirs))
	assert.Equal(t, float64(0), balance(t, h, "never-used-session"))
	assert.Empty(t, listTransactions(t, h, "never-used-session"))
}

func TestReadsRequireSession(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{
		"/transactions",
		"/transactions/summary",
		"/transactions/9b2f7c1e-4c4e-4b8e-9a57-2a1d0c6f3e11",
	} {
		w := do(t, h, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String(), path)
	}
}

func TestCreateValidation(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title": "No type", "amount": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Empty(t, w.Header().Values("Set-Cookie"))
}

func TestStatus(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/status", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestOpenAPIDocument(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "/transactions/summary"))
}

func TestResponseBodiesHaveNoSchemaLink(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title": "Post transaction test", "amount": 42, "type": "credit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := sessionFrom(t, w)

	w = do(t, h, http.MethodGet, "/transactions", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Link"))
	var list map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
	assert.Contains(t, list, "transactions")

	w = do(t, h, http.MethodGet, "/transactions/summary", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Link"))
	assert.JSONEq(t, `{"summary":{"balance":42}}`, w.Body.String())

	w = do(t, h, http.MethodGet, "/transactions/9b2f7c1e-4c4e-4b8e-9a57-2a1d0c6f3e11", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"transaction":null}`, w.Body.String())
}

func TestAmountPrecision(t *testing.T) {
	h := newTestHandler(t)

	w := do(t, h, http.MethodPost, "/transactions", "", map[string]interface{}{
		"title": "Dime", "amount": 0.1, "type": "credit",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	sessionID := sessionFrom(t, w)

	w = do(t, h, http.MethodPost, "/transactions", sessionID, map[string]interface{}{
		"title": "Two dimes", "amount": 0.2, "type": "credit",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	for _, amount := range []float64{1.005, 1e300, -1e13} {
		w = do(t, h, http.MethodPost, "/transactions", sessionID, map[string]interface{}{
			"title": "Rejected", "amount": amount, "type": "debit",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, "amount %v", amount)
	}

	w = do(t, h, http.MethodGet, "/transactions/summary", sessionID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"summary":{"balance":0.3}}`, w.Body.String())

	txs := listTransactions(t, h, sessionID)
	require.Len(t, txs, 2)
	assert.Equal(t, 0.1, txs[0].Amount)
	assert.Equal(t, 0.2, txs[1].Amount)
}
