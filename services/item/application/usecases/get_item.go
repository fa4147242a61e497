package usecases

import (
	"context"

	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

// GetItemQuery identifies the item to fetch.
type GetItemQuery struct {
	ID models.ItemID
}

// GetItem fetches a single item.
type GetItem struct {
	repo repositories.ItemRepository
	uow  uow.UnitOfWork
}

func NewGetItem(repo repositories.ItemRepository, u uow.UnitOfWork) *GetItem {
	return &GetItem{repo: repo, uow: u}
}

// Execute returns the item and true, or the zero Item and false when absent.
func (uc *GetItem) Execute(ctx context.Context, q GetItemQuery) (models.Item, bool, error) {
	res, err := uow.Run(ctx, uc.uow, func(ctx context.Context) (lookup[models.Item], error) {
		item, ok, err := uc.repo.GetByID(ctx, q.ID)
		return lookup[models.Item]{value: item, found: ok}, err
	})
	return res.value, res.found, err
}
