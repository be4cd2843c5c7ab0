package db

import (
	"context"
	"database/sql"
	"fmt"
)

type DB struct {
	*sql.DB
}

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Store methods run against it so the same code works inside and
// outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type txKeyType struct{}

var txKey = txKeyType{}

// Q returns the transaction bound to ctx if one exists, otherwise the
// plain connection pool.
func (d *DB) Q(ctx context.Context) Querier {
	if tx, ok := ctx.Value(txKey).(*sql.Tx); ok {
		return tx
	}
	return d.DB
}

// Atomic runs fn inside a single transaction. Store calls made with the
// ctx passed to fn join that transaction through Q.
func (d *DB) Atomic(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*sql.Tx); ok {
		// already inside a transaction, join it
		return fn(ctx)
	}

	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
