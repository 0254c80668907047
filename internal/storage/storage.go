package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/storage/sqlconfig"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

type Storage struct {
	DB           *sql.DB
	Transactions sqlconfig.ITransactionTable
}

// OpenDB opens and pings the database selected by env. For sqlite the
// DatabaseURL is a file path, otherwise it is a full connection URL.
func OpenDB(ctx context.Context, env *config.Config) (*sql.DB, error) {
	driverName := driverPostgres
	if env.DatabaseClient == config.DatabaseClientSQLite {
		driverName = driverSQLite
	}

	db, err := sql.Open(driverName, env.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("sql.Open %s: %w", driverName, err)
	}

	// A single writer avoids SQLITE_BUSY between pooled connections.
	if driverName == driverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName, err)
	}

	return db, nil
}

func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	db, err := OpenDB(ctx, env)
	if err != nil {
		return nil, err
	}

	dialect := sqlconfig.DialectPostgres
	if env.DatabaseClient == config.DatabaseClientSQLite {
		dialect = sqlconfig.DialectSQLite
	}

	transactions, err := sqlconfig.NewTransactionsTable(db, dialect)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storage{
		DB:           db,
		Transactions: transactions,
	}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
