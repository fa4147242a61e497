package uow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// errPanicked is recorded on the scope span when fn panics.
var errPanicked = errors.New("uow: scope panicked")

// InMemory is the unit of work for in-process stores. Commit and rollback
// only record the Committed flag.
//
// Scopes are serialized with a mutex held for the whole of fn. In-memory
// repositories perform no locking of their own, so every access to them must
// go through the same InMemory instance. Scopes must not be nested.
type InMemory struct {
	mu        sync.Mutex
	committed atomic.Bool
}

// NewInMemory returns a ready-to-use InMemory unit of work.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// Do runs fn while holding the scope lock.
func (u *InMemory) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("uow: scope aborted: %w", err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	ctx, scope := StartScope(ctx, "memory")
	u.committed.Store(false)

	defer func() {
		if p := recover(); p != nil {
			u.rollback()
			scope.End(errPanicked)
			panic(p)
		}
	}()

	if err := fn(ctx); err != nil {
		u.rollback()
		scope.End(err)
		return err
	}

	u.commit()
	scope.End(nil)
	return nil
}

// Committed reports whether the most recent scope committed.
func (u *InMemory) Committed() bool {
	return u.committed.Load()
}

func (u *InMemory) commit()   { u.committed.Store(true) }
func (u *InMemory) rollback() { u.committed.Store(false) }
