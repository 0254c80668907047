package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// Summary is the API response model for a session's balance.
type Summary struct {
	Balance float64 `json:"balance" doc:"Sum of the session's signed amounts"`
}

// SummarizeTransactionsResponseBody is the response body for summarizing transactions.
type SummarizeTransactionsResponseBody struct {
	Summary Summary `json:"summary"`
}

// SummarizeTransactionsOutput is the Huma output for summarizing transactions.
type SummarizeTransactionsOutput struct {
	Body SummarizeTransactionsResponseBody
}

// transactionSummarizer is the interface for summarizing transactions.
type transactionSummarizer interface {
	Summarize(ctx context.Context, sessionID string) (service.Summary, error)
}

// SummarizeTransactionsHandler handles GET /transactions/summary.
type SummarizeTransactionsHandler struct {
	TransactionService transactionSummarizer
}

// NewSummarizeTransactionsHandler creates a new SummarizeTransactionsHandler.
func NewSummarizeTransactionsHandler(svc transactionSummarizer) *SummarizeTransactionsHandler {
	return &SummarizeTransactionsHandler{TransactionService: svc}
}

// Register must run before GetTransactionHandler.Register so routers that
// match in registration order do not treat "summary" as an id.
func (h *SummarizeTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "summarize-transactions",
		Method:      http.MethodGet,
		Path:        BasePath + "/summary",
		Summary:     "Summarize transactions",
		Description: "Returns the balance of the caller's session.",
		Tags:        []string{"Transactions"},
		Middlewares: huma.Middlewares{session.Require},
	}, h.handle)
}

func (h *SummarizeTransactionsHandler) handle(ctx context.Context, _ *struct{}) (*SummarizeTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)

	stopTimer := startTiming(logData, "summarizeTransactionsMs")
	summary, err := h.TransactionService.Summarize(ctx, session.FromContext(ctx))
	stopTimer()
	if err != nil {
		return nil, internalError(logData, "failed to summarize transactions", err)
	}

	return &SummarizeTransactionsOutput{
		Body: SummarizeTransactionsResponseBody{
			Summary: Summary{Balance: summary.Balance.InexactFloat64()},
		},
	}, nil
}
