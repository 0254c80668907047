package sqlconfig

import (
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/sqlite"
	"github.com/stephenafamo/bob/dialect/sqlite/im"
	"github.com/stephenafamo/bob/dialect/sqlite/sm"
)

type sqliteTransactionQueries struct{}

func (sqliteTransactionQueries) insert(row *Transaction) bob.Query {
	return sqlite.Insert(
		im.Into(transactionsTable, "id", "title", "amount", "session_id", "created_at"),
		im.Values(
			sqlite.Arg(row.ID),
			sqlite.Arg(row.Title),
			sqlite.Arg(row.Amount),
			sqlite.Arg(row.SessionID),
			sqlite.Arg(row.CreatedAt),
		),
	)
}

func (sqliteTransactionQueries) selectBySession(sessionID string) bob.Query {
	return sqlite.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(sqlite.Quote("session_id").EQ(sqlite.Arg(sessionID))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
}

func (sqliteTransactionQueries) selectByID(id uuid.UUID, sessionID string) bob.Query {
	return sqlite.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(sqlite.Quote("id").EQ(sqlite.Arg(id))),
		sm.Where(sqlite.Quote("session_id").EQ(sqlite.Arg(sessionID))),
		sm.Limit(1),
	)
}

func (sqliteTransactionQueries) sumBySession(sessionID string) bob.Query {
	return sqlite.Select(
		sm.Columns("COALESCE(SUM(amount), 0) AS balance"),
		sm.From(transactionsTable),
		sm.Where(sqlite.Quote("session_id").EQ(sqlite.Arg(sessionID))),
	)
}
