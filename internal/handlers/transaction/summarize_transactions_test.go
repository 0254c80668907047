package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/service"
)

func TestHTTP_SummarizeTransactions_Success(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Summarize", mock.Anything, testSessionID).
		Return(service.Summary{Balance: decimal.NewFromInt(30)}, nil)

	resp := newTestAPI(t, mockSvc).Get("/transactions/summary", sessionCookie)

	assert.Equal(t, http.StatusOK, resp.Code)
	var body SummarizeTransactionsResponseBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(30), body.Summary.Balance)
	mockSvc.AssertNotCalled(t, "GetTransaction")
	mockSvc.AssertExpectations(t)
}

func TestHTTP_SummarizeTransactions_EmptySessionIsZero(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Summarize", mock.Anything, testSessionID).
		Return(service.Summary{Balance: decimal.Zero}, nil)

	resp := newTestAPI(t, mockSvc).Get("/transactions/summary", sessionCookie)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"summary":{"balance":0}`)
}

func TestHTTP_SummarizeTransactions_Unauthorized(t *testing.T) {
	mockSvc := new(mockTransactionService)

	resp := newTestAPI(t, mockSvc).Get("/transactions/summary")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	mockSvc.AssertNotCalled(t, "Summarize")
}

func TestHTTP_SummarizeTransactions_ServiceError(t *testing.T) {
	mockSvc := new(mockTransactionService)
	mockSvc.On("Summarize", mock.Anything, mock.Anything).
		Return(service.Summary{}, errors.New("database unavailable"))

	resp := newTestAPI(t, mockSvc).Get("/transactions/summary", sessionCookie)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}
