package usecases

import (
	"context"

	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

// CreateItemCommand carries the input for CreateItem. Description is optional.
type CreateItemCommand struct {
	Name        string
	Description *string
}

// CreateItem builds a new Item and stores it.
type CreateItem struct {
	repo repositories.ItemRepository
	uow  uow.UnitOfWork
}

var _ UseCase[CreateItemCommand, models.Item] = (*CreateItem)(nil)

func NewCreateItem(repo repositories.ItemRepository, u uow.UnitOfWork) *CreateItem {
	return &CreateItem{repo: repo, uow: u}
}

// Execute validates the command inside the scope, so a blank name rolls the
// scope back and nothing is stored.
func (uc *CreateItem) Execute(ctx context.Context, cmd CreateItemCommand) (models.Item, error) {
	return uow.Run(ctx, uc.uow, func(ctx context.Context) (models.Item, error) {
		item, err := models.NewItem(cmd.Name, cmd.Description)
		if err != nil {
			return models.Item{}, err
		}
		if err := uc.repo.Add(ctx, item); err != nil {
			return models.Item{}, err
		}
		return item, nil
	})
}
