package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/buildcost/internal/db"
)

// StatementFailureUoW runs transactions through the real unit of work but
// fails every write whose SQL contains Match. Reads are never intercepted.
// It lets save tests break the category insert after the estimate row has
// already been written and check that both roll back together.
type StatementFailureUoW struct {
	DB    *sql.DB
	Match string
	Err   error
}

func (u *StatementFailureUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingWrites{DBTX: tx, match: u.Match, err: u.Err})
	})
}

type failingWrites struct {
	db.DBTX
	match string
	err   error
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.Contains(query, f.match) && !strings.HasPrefix(strings.TrimSpace(query), "DELETE") {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
