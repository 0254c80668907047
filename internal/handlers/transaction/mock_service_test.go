package transaction

import (
	"context"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/ledger-server/internal/service"
)

// mockTransactionService implements every handler's service interface.
type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) CreateTransaction(ctx context.Context, transaction service.NewTransaction) (uuid.UUID, error) {
	args := m.Called(ctx, transaction)
	if args.Get(0) == nil {
		return uuid.Nil, args.Error(1)
	}
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, sessionID string) ([]service.Transaction, error) {
	args := m.Called(ctx, sessionID)
	txs, _ := args.Get(0).([]service.Transaction)
	return txs, args.Error(1)
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id uuid.UUID, sessionID string) (*service.Transaction, error) {
	args := m.Called(ctx, id, sessionID)
	tx, _ := args.Get(0).(*service.Transaction)
	return tx, args.Error(1)
}

func (m *mockTransactionService) Summarize(ctx context.Context, sessionID string) (service.Summary, error) {
	args := m.Called(ctx, sessionID)
	summary, _ := args.Get(0).(service.Summary)
	return summary, args.Error(1)
}

// newTestAPI registers every transaction handler against a humatest API.
func newTestAPI(t *testing.T, svc *mockTransactionService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreateTransactionHandler(svc).Register(api)
	NewListTransactionsHandler(svc).Register(api)
	NewSummarizeTransactionsHandler(svc).Register(api)
	NewGetTransactionHandler(svc).Register(api)
	return api
}

const sessionCookie = "Cookie: sessionId=3f1c2b7e-9a51-4e0f-8d4a-6f1e2c3b4a59"

const testSessionID = "3f1c2b7e-9a51-4e0f-8d4a-6f1e2c3b4a59"
