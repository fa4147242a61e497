package repositories

import (
	"context"

	"github.com/ghuser/menagerist/services/item/domain/models"
)

// ItemRepository is the persistence interface for the Item aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Absence is not an error: GetByID and DeleteByID report it with ok=false.
// Errors are reserved for infrastructure failures.
type ItemRepository interface {
	// Add inserts item, overwriting any item stored under the same ID.
	Add(ctx context.Context, item models.Item) error

	// GetByID returns the item stored under id.
	GetByID(ctx context.Context, id models.ItemID) (item models.Item, ok bool, err error)

	// ListAll returns a snapshot of every stored item. The order is stable
	// for a given store instance; later writes never affect a returned slice.
	ListAll(ctx context.Context) ([]models.Item, error)

	// DeleteByID removes and returns the item stored under id. Deleting an
	// absent id is not an error.
	DeleteByID(ctx context.Context, id models.ItemID) (item models.Item, ok bool, err error)
}
