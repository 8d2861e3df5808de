package database

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryer is the subset of PgxIface that is also satisfied by pgx.Tx.
// Repository methods that must participate in a multi-statement
// transaction accept a Queryer instead of reaching for the pool.
type Queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// TxRunner runs a function inside a single atomic transaction. The
// transaction commits only if fn returns nil; any error rolls the
// whole operation back.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(q Queryer) error) error
}

type txRunner struct {
	db PgxIface
}

// NewTxRunner returns a TxRunner backed by the given pool.
func NewTxRunner(db PgxIface) TxRunner {
	return &txRunner{db: db}
}

func (t *txRunner) WithTx(ctx context.Context, fn func(q Queryer) error) error {
	tx, err := t.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
