package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

const transactionsTable = "transactions"

// AmountScale is the number of decimals the NUMERIC(12, 2) amount column keeps.
const AmountScale = 2

var transactionColumns = []any{"id", "title", "amount", "session_id", "created_at"}

// Transaction represents a transaction record.
type Transaction struct {
	ID        uuid.UUID       `db:"id"`
	Title     string          `db:"title"`
	Amount    decimal.Decimal `db:"amount"`
	SessionID string          `db:"session_id"`
	CreatedAt time.Time       `db:"created_at"`
}

// TransactionCreate is the input for creating a new transaction. Amount is
// stored as given, already signed.
type TransactionCreate struct {
	Title     string
	Amount    decimal.Decimal
	SessionID string
}

// ITransactionTable defines the interface for transaction storage operations.
// Every read is scoped to a session.
//
//go:generate mockery --name ITransactionTable --output . --filename mock_ITransactionTable.go --inpackage --with-expecter
type ITransactionTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)
	ListBySession(ctx context.Context, sessionID string) ([]*Transaction, error)
	// FindByID returns nil without error when no row matches.
	FindByID(ctx context.Context, id uuid.UUID, sessionID string) (*Transaction, error)
	SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error)
}
