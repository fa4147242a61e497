// Package usecases holds the item application operations. Each use case
// runs exactly one repository call inside one unit-of-work scope.
package usecases

import "context"

// UseCase is the contract shared by CreateItem and ListItems: a command or
// query value in, a result out. GetItem and DeleteItem also report whether
// the item was found.
type UseCase[C, R any] interface {
	Execute(ctx context.Context, cmd C) (R, error)
}

// lookup carries a (value, found) pair through uow.Run.
type lookup[T any] struct {
	value T
	found bool
}
