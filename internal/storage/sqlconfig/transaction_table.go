package sqlconfig

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"
)

// Dialect selects the SQL flavour queries are rendered in.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// transactionQueries builds one statement per table operation.
type transactionQueries interface {
	insert(row *Transaction) bob.Query
	selectBySession(sessionID string) bob.Query
	selectByID(id uuid.UUID, sessionID string) bob.Query
	sumBySession(sessionID string) bob.Query
}

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	exec    bob.Executor
	queries transactionQueries
	now     func() time.Time
}

func NewTransactionsTable(db *sql.DB, dialect Dialect) (*TransactionsTable, error) {
	var queries transactionQueries
	switch dialect {
	case DialectPostgres:
		queries = psqlTransactionQueries{}
	case DialectSQLite:
		queries = sqliteTransactionQueries{}
	default:
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}

	return &TransactionsTable{
		exec:    bob.NewDB(db),
		queries: queries,
		now:     func() time.Time { return time.Now().UTC() },
	}, nil
}

// Insert creates a new transaction and returns its generated ID. The ID and
// created_at are always set here rather than left to column defaults.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}

	row := &Transaction{
		ID:        id,
		Title:     create.Title,
		Amount:    create.Amount,
		SessionID: create.SessionID,
		CreatedAt: t.now(),
	}
	if _, err := bob.Exec(ctx, t.exec, t.queries.insert(row)); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// ListBySession returns the session's transactions, oldest first.
func (t *TransactionsTable) ListBySession(ctx context.Context, sessionID string) ([]*Transaction, error) {
	rows, err := bob.All(ctx, t.exec, t.queries.selectBySession(sessionID), scan.StructMapper[Transaction]())
	if err != nil {
		return nil, err
	}
	result := make([]*Transaction, len(rows))
	for i := range rows {
		result[i] = &rows[i]
	}
	return result, nil
}

// FindByID retrieves a transaction by primary key, restricted to the owning session.
func (t *TransactionsTable) FindByID(ctx context.Context, id uuid.UUID, sessionID string) (*Transaction, error) {
	row, err := bob.One(ctx, t.exec, t.queries.selectByID(id, sessionID), scan.StructMapper[Transaction]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SumBySession returns the sum of the session's signed amounts, zero when it has none.
// SQLite stores fractional NUMERIC values as REAL, so the sum is rounded back
// to the column scale.
func (t *TransactionsTable) SumBySession(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	sum, err := bob.One(ctx, t.exec, t.queries.sumBySession(sessionID), scan.SingleColumnMapper[decimal.Decimal])
	if err != nil {
		return decimal.Zero, err
	}
	return sum.Round(AmountScale), nil
}
