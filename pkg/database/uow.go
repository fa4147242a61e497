package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ghuser/menagerist/pkg/uow"
)

var _ uow.UnitOfWork = (*UnitOfWork)(nil)

var errScopePanicked = errors.New("database: scope panicked")

// UnitOfWork is the PostgreSQL uow.UnitOfWork. Each scope is one
// transaction; repositories pick it up through ExecutorFrom.
// A scope opened while one is already bound to ctx joins it.
type UnitOfWork struct {
	db *Database
}

// NewUnitOfWork returns a UnitOfWork over db.
func NewUnitOfWork(db *Database) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn inside a transaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := TxFrom(ctx); ok {
		return fn(ctx)
	}

	ctx, scope := uow.StartScope(ctx, "postgres")
	ended := false
	defer func() {
		if !ended {
			scope.End(errScopePanicked)
		}
	}()

	err := u.db.WithTx(ctx, func(tx *sql.Tx) error {
		return fn(ContextWithTx(ctx, tx))
	})
	ended = true
	scope.End(err)
	return err
}
