package usecases

import (
	"context"

	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

// DeleteItemCommand identifies the item to remove.
type DeleteItemCommand struct {
	ID models.ItemID
}

// DeleteItem removes an item. Deleting an absent item is not an error.
type DeleteItem struct {
	repo repositories.ItemRepository
	uow  uow.UnitOfWork
}

func NewDeleteItem(repo repositories.ItemRepository, u uow.UnitOfWork) *DeleteItem {
	return &DeleteItem{repo: repo, uow: u}
}

// Execute returns the removed item and true, or false when nothing was stored.
func (uc *DeleteItem) Execute(ctx context.Context, cmd DeleteItemCommand) (models.Item, bool, error) {
	res, err := uow.Run(ctx, uc.uow, func(ctx context.Context) (lookup[models.Item], error) {
		item, ok, err := uc.repo.DeleteByID(ctx, cmd.ID)
		return lookup[models.Item]{value: item, found: ok}, err
	})
	return res.value, res.found, err
}
