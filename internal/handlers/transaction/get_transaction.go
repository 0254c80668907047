package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// GetTransactionInput is the Huma input for fetching one transaction.
type GetTransactionInput struct {
	ID string `path:"id" format:"uuid" doc:"Transaction UUID"`
}

// GetTransactionResponseBody is the response body for fetching one transaction.
// A transaction the session does not own is reported as null, not 404.
type GetTransactionResponseBody struct {
	Transaction *Transaction `json:"transaction" doc:"The transaction, or null when not found"`
}

// GetTransactionOutput is the Huma output for fetching one transaction.
type GetTransactionOutput struct {
	Body GetTransactionResponseBody
}

// transactionGetter is the interface for fetching one transaction.
type transactionGetter interface {
	GetTransaction(ctx context.Context, id uuid.UUID, sessionID string) (*service.Transaction, error)
}

// GetTransactionHandler handles GET /transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

// NewGetTransactionHandler creates a new GetTransactionHandler.
func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

// Register registers the get transaction endpoint with the Huma API.
func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        BasePath + "/{id}",
		Summary:     "Get transaction",
		Description: "Returns one transaction of the caller's session.",
		Tags:        []string{"Transactions"},
		Middlewares: huma.Middlewares{session.Require},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *GetTransactionInput) (*GetTransactionOutput, error) {
	logData := logging.GetLogData(ctx)

	id, err := uuid.FromString(input.ID)
	if err != nil {
		return nil, huma.NewError(http.StatusUnprocessableEntity, "invalid id", err)
	}

	stopTimer := startTiming(logData, "getTransactionMs")
	transaction, err := h.TransactionService.GetTransaction(ctx, id, session.FromContext(ctx))
	stopTimer()
	if err != nil {
		return nil, internalError(logData, "failed to get transaction", err)
	}

	output := &GetTransactionOutput{}
	if transaction != nil {
		resp := transactionFromService(*transaction)
		output.Body.Transaction = &resp
	}

	if logData != nil {
		logData.AddData("found", transaction != nil)
	}

	return output, nil
}
