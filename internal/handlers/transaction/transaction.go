package transaction

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// BasePath is the prefix every transaction route is mounted under.
const BasePath = "/transactions"

// Transaction is the API response model for a transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string  `json:"id" doc:"Transaction UUID"`
	Title     string  `json:"title" doc:"Transaction title"`
	Amount    float64 `json:"amount" doc:"Signed amount, negative for debits"`
	SessionID string  `json:"session_id" doc:"Owning session"`
	CreatedAt string  `json:"created_at" doc:"RFC3339 creation time"`
}

func transactionFromService(tx service.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID.String(),
		Title:     tx.Title,
		Amount:    tx.Amount.InexactFloat64(),
		SessionID: tx.SessionID,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// startTiming and addToTiming tolerate a nil LogData, which handlers see
// when no logging middleware is installed.
func startTiming(logData *logging.LogData, name string) func() {
	if logData == nil {
		return func() {}
	}
	return logData.AddTiming(name)
}

func addToTiming(logData *logging.LogData, name string) func() {
	if logData == nil {
		return func() {}
	}
	return logData.AddToExistingTiming(name)
}

func internalError(logData *logging.LogData, msg string, err error) error {
	if logData != nil {
		logData.AddData("error", err.Error())
	}
	return huma.NewError(http.StatusInternalServerError, msg, err)
}
