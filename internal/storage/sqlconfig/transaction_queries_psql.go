package sqlconfig

import (
	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
)

type psqlTransactionQueries struct{}

func (psqlTransactionQueries) insert(row *Transaction) bob.Query {
	return psql.Insert(
		im.Into(transactionsTable, "id", "title", "amount", "session_id", "created_at"),
		im.Values(
			psql.Arg(row.ID),
			psql.Arg(row.Title),
			psql.Arg(row.Amount),
			psql.Arg(row.SessionID),
			psql.Arg(row.CreatedAt),
		),
	)
}

func (psqlTransactionQueries) selectBySession(sessionID string) bob.Query {
	return psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("session_id").EQ(psql.Arg(sessionID))),
		sm.OrderBy("created_at").Asc(),
		sm.OrderBy("id").Asc(),
	)
}

func (psqlTransactionQueries) selectByID(id uuid.UUID, sessionID string) bob.Query {
	return psql.Select(
		sm.Columns(transactionColumns...),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("id").EQ(psql.Arg(id))),
		sm.Where(psql.Quote("session_id").EQ(psql.Arg(sessionID))),
		sm.Limit(1),
	)
}

func (psqlTransactionQueries) sumBySession(sessionID string) bob.Query {
	return psql.Select(
		sm.Columns("COALESCE(SUM(amount), 0) AS balance"),
		sm.From(transactionsTable),
		sm.Where(psql.Quote("session_id").EQ(psql.Arg(sessionID))),
	)
}
