package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/session"
)

// CreateTransactionBody is the request body for creating a transaction.
type CreateTransactionBody struct {
	Title  string  `json:"title" minLength:"1" doc:"Transaction title"`
	Amount float64 `json:"amount" minimum:"-9999999999.99" maximum:"9999999999.99" doc:"Amount with at most two decimals; the type decides its sign"`
	Type   string  `json:"type" enum:"credit,debit" doc:"credit adds to the balance, debit subtracts from it"`
}

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	SessionID string `cookie:"sessionId" doc:"Existing session; a new one is issued when absent"`
	Body      CreateTransactionBody
}

// Resolve rejects amounts the amount column cannot store exactly.
func (i *CreateTransactionInput) Resolve(_ huma.Context) []error {
	if decimal.NewFromFloat(i.Body.Amount).Exponent() < -service.AmountScale {
		return []error{&huma.ErrorDetail{
			Message:  "amount must have at most 2 decimal places",
			Location: "body.amount",
			Value:    i.Body.Amount,
		}}
	}
	return nil
}

// CreateTransactionOutput is the Huma output for creating a transaction.
type CreateTransactionOutput struct {
	Status    int
	SetCookie string `header:"Set-Cookie" doc:"Issues the sessionId cookie for new sessions"`
}

// transactionCreator is the interface for creating transactions.
type transactionCreator interface {
	CreateTransaction(ctx context.Context, transaction service.NewTransaction) (uuid.UUID, error)
}

// CreateTransactionHandler handles POST /transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

// NewCreateTransactionHandler creates a new CreateTransactionHandler.
func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
// It deliberately has no session gate: sessions are created here.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          BasePath,
		Summary:       "Create transaction",
		Description:   "Creates a credit or debit transaction, starting a new session when the request has none.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateTransactionInput(input *CreateTransactionInput) service.NewTransaction {
	return service.NewTransaction{
		Title:     input.Body.Title,
		Amount:    decimal.NewFromFloat(input.Body.Amount),
		Type:      service.TransactionType(input.Body.Type),
		SessionID: input.SessionID,
	}
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*CreateTransactionOutput, error) {
	logData := logging.GetLogData(ctx)
	output := &CreateTransactionOutput{Status: http.StatusCreated}

	transaction := parseCreateTransactionInput(input)
	if transaction.SessionID == "" {
		stopTimer := startTiming(logData, "createTransactionMs")
		sessionID, err := session.NewID()
		stopTimer()
		if err != nil {
			return nil, internalError(logData, "failed to start session", err)
		}
		transaction.SessionID = sessionID
		output.SetCookie = session.NewCookie(sessionID).String()
	}

	// Accumulates onto the session minting time when a session was issued.
	stopTimer := addToTiming(logData, "createTransactionMs")
	id, err := h.TransactionService.CreateTransaction(ctx, transaction)
	stopTimer()
	if err != nil {
		return nil, internalError(logData, "failed to create transaction", err)
	}

	if logData != nil {
		logData.AddData("transactionID", id.String())
		logData.AddData("newSession", output.SetCookie != "")
	}

	return output, nil
}
