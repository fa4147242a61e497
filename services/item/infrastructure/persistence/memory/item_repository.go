// Package memory is the in-process ItemRepository adapter.
package memory

import (
	"context"

	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// ItemRepository keeps items in a map plus an insertion-order index.
//
// It performs no locking. Callers serialize access by running every
// operation inside a uow.InMemory scope shared by all use cases.
type ItemRepository struct {
	items map[models.ItemID]models.Item
	order []models.ItemID
}

// NewItemRepository returns an empty repository.
func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[models.ItemID]models.Item)}
}

// Add stores item. Overwriting an existing id keeps its list position.
func (r *ItemRepository) Add(_ context.Context, item models.Item) error {
	if _, exists := r.items[item.ID()]; !exists {
		r.order = append(r.order, item.ID())
	}
	r.items[item.ID()] = item
	return nil
}

func (r *ItemRepository) GetByID(_ context.Context, id models.ItemID) (models.Item, bool, error) {
	item, ok := r.items[id]
	return item, ok, nil
}

// ListAll returns items in insertion order. The slice is a copy.
func (r *ItemRepository) ListAll(_ context.Context) ([]models.Item, error) {
	out := make([]models.Item, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.items[id])
	}
	return out, nil
}

func (r *ItemRepository) DeleteByID(_ context.Context, id models.ItemID) (models.Item, bool, error) {
	item, ok := r.items[id]
	if !ok {
		return models.Item{}, false, nil
	}
	delete(r.items, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return item, true, nil
}

// Len reports the number of stored items.
func (r *ItemRepository) Len() int {
	return len(r.items)
}
