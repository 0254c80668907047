package service

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

// AmountScale is the most decimals an amount may carry.
const AmountScale = sqlconfig.AmountScale

// TransactionType is the direction of a new transaction. It is not stored;
// the sign of the stored amount carries it.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

// SignedAmount returns amount as it is persisted for t.
func (t TransactionType) SignedAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	switch t {
	case TransactionTypeCredit:
		return amount, nil
	case TransactionTypeDebit:
		return amount.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown transaction type %q", string(t))
	}
}

// Transaction represents a transaction in the service layer.
type Transaction struct {
	ID        uuid.UUID
	Title     string
	Amount    decimal.Decimal
	SessionID string
	CreatedAt time.Time
}

// NewTransaction is the input for creating a transaction. Amount is the
// submitted, unsigned value.
type NewTransaction struct {
	Title     string
	Amount    decimal.Decimal
	Type      TransactionType
	SessionID string
}

// Summary is the running balance of a session.
type Summary struct {
	Balance decimal.Decimal
}
