package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage) *TransactionService {
	return &TransactionService{storage: store}
}

// CreateTransaction stores the signed amount for the transaction's type and returns its ID.
func (s *TransactionService) CreateTransaction(ctx context.Context, transaction NewTransaction) (uuid.UUID, error) {
	amount, err := transaction.Type.SignedAmount(transaction.Amount)
	if err != nil {
		return uuid.Nil, err
	}

	storageCreate := &sqlconfig.TransactionCreate{
		Title:     transaction.Title,
		Amount:    amount,
		SessionID: transaction.SessionID,
	}

	return s.storage.Transactions.Insert(ctx, storageCreate)
}

// ListTransactions returns every transaction of the session, oldest first.
func (s *TransactionService) ListTransactions(ctx context.Context, sessionID string) ([]Transaction, error) {
	rows, err := s.storage.Transactions.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	convertedTransactions := make([]Transaction, len(rows))
	for i, row := range rows {
		convertedTransactions[i] = transactionFromStorage(row)
	}

	return convertedTransactions, nil
}

// GetTransaction returns the session's transaction with the given ID, or nil
// when the session owns no such transaction.
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID, sessionID string) (*Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id, sessionID)
	if err != nil || row == nil {
		return nil, err
	}
	transaction := transactionFromStorage(row)
	return &transaction, nil
}

// Summarize returns the session's balance.
func (s *TransactionService) Summarize(ctx context.Context, sessionID string) (Summary, error) {
	balance, err := s.storage.Transactions.SumBySession(ctx, sessionID)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Balance: balance}, nil
}

func transactionFromStorage(row *sqlconfig.Transaction) Transaction {
	return Transaction{
		ID:        row.ID,
		Title:     row.Title,
		Amount:    row.Amount,
		SessionID: row.SessionID,
		CreatedAt: row.CreatedAt,
	}
}
