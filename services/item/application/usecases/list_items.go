package usecases

import (
	"context"

	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

// ListItemsQuery has no parameters; it exists so every use case takes a value.
type ListItemsQuery struct{}

// ListItems returns every stored item.
type ListItems struct {
	repo repositories.ItemRepository
	uow  uow.UnitOfWork
}

var _ UseCase[ListItemsQuery, []models.Item] = (*ListItems)(nil)

func NewListItems(repo repositories.ItemRepository, u uow.UnitOfWork) *ListItems {
	return &ListItems{repo: repo, uow: u}
}

func (uc *ListItems) Execute(ctx context.Context, _ ListItemsQuery) ([]models.Item, error) {
	return uow.Run(ctx, uc.uow, func(ctx context.Context) ([]models.Item, error) {
		return uc.repo.ListAll(ctx)
	})
}
