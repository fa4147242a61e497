package services

import (
	"github.com/ghuser/menagerist/pkg/app"
	"github.com/ghuser/menagerist/pkg/cache"
	"github.com/ghuser/menagerist/pkg/database"
	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/application/usecases"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/cached"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/memory"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// Every use case shares one repository and one unit of work.
type Services struct {
	CreateItem *usecases.CreateItem
	GetItem    *usecases.GetItem
	ListItems  *usecases.ListItems
	DeleteItem *usecases.DeleteItem
}

// NewServices wires the use cases around a single store handle.
func NewServices(repo repositories.ItemRepository, u uow.UnitOfWork) *Services {
	return &Services{
		CreateItem: usecases.NewCreateItem(repo, u),
		GetItem:    usecases.NewGetItem(repo, u),
		ListItems:  usecases.NewListItems(repo, u),
		DeleteItem: usecases.NewDeleteItem(repo, u),
	}
}

// New picks the item adapters for the infrastructure present in a: PostgreSQL
// when a.Db is set, otherwise an in-memory store. The Redis read-through cache
// only fronts PostgreSQL; an in-memory store starts empty on every restart and
// a shared cache would keep serving items it no longer holds.
// Call it once per process.
func New(a *app.Application) *Services {
	return NewServices(newAdapters(a))
}

func newAdapters(a *app.Application) (repositories.ItemRepository, uow.UnitOfWork) {
	var (
		repo repositories.ItemRepository
		u    uow.UnitOfWork
	)
	if a.Db != nil {
		repo = postgres.NewItemRepository(a.Db, a.EventBus)
		u = database.NewUnitOfWork(a.Db)
		if a.Redis != nil {
			itemCache := cached.NewRedisItemCache(cache.NewItemCache(a.Redis))
			repo = cached.NewItemRepository(repo, itemCache, a.Logger)
		}
	} else {
		repo = memory.NewItemRepository()
		u = uow.NewInMemory()
	}

	return repo, u
}
