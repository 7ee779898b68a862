package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Tx is the transaction handle passed through multi-repository write
// sequences. *sql.Tx satisfies it directly; tests substitute fakes.
type Tx interface {
	Commit() error
	Rollback() error
}

// UnitOfWork opens transactions for callers that need several
// repository writes to commit or roll back together.
type UnitOfWork interface {
	Begin(ctx context.Context) (Tx, error)
}

// SQLUnitOfWork is the database-backed UnitOfWork.
type SQLUnitOfWork struct {
	DB *sql.DB
}

// NewUnitOfWork wraps the shared connection pool.
func NewUnitOfWork(db *sql.DB) *SQLUnitOfWork {
	return &SQLUnitOfWork{DB: db}
}

// Begin opens a read-write transaction bound to ctx.
func (u *SQLUnitOfWork) Begin(ctx context.Context) (Tx, error) {
	return u.DB.BeginTx(ctx, nil)
}

// errNotSQLTx is returned when a transactional repository method
// receives a Tx that did not originate from SQLUnitOfWork.
var errNotSQLTx = errors.New("repository: tx is not a *sql.Tx")

// sqlTx unwraps the concrete transaction for repository methods.
func sqlTx(tx Tx) (*sql.Tx, error) {
	st, ok := tx.(*sql.Tx)
	if !ok {
		return nil, errNotSQLTx
	}
	return st, nil
}
