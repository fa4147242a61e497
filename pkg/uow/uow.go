// Package uow defines the unit-of-work port: a scoped transactional boundary
// that commits when its function returns normally and rolls back when the
// function returns an error or panics.
//
// Use cases depend only on UnitOfWork. Adapters live next to the storage they
// coordinate: InMemory here, database.UnitOfWork for PostgreSQL.
package uow

import "context"

// UnitOfWork runs fn inside one transactional scope. The context passed to fn
// carries whatever the adapter needs (e.g. the open *sql.Tx); repositories
// must use it rather than the outer context.
//
// Guarantees:
//   - fn returns nil  → commit, Do returns the commit error (if any)
//   - fn returns err  → rollback, Do returns err unchanged
//   - fn panics       → rollback, the panic is re-raised
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Run is Do for functions that produce a value.
func Run[T any](ctx context.Context, u UnitOfWork, fn func(ctx context.Context) (T, error)) (T, error) {
	var out T
	err := u.Do(ctx, func(ctx context.Context) error {
		v, err := fn(ctx)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
