// Package cached decorates an ItemRepository with a Redis read-through cache.
package cached

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/domain/repositories"
)

var _ repositories.ItemRepository = (*ItemRepository)(nil)

// ItemCache is the subset of cache.ItemCache the decorator uses.
type ItemCache interface {
	Get(ctx context.Context, itemID models.ItemID) (models.Item, error)
	Set(ctx context.Context, item models.Item) error
	Delete(ctx context.Context, itemID models.ItemID) error
}

// ItemRepository serves GetByID from the cache and evicts on writes.
// Cache failures are logged and never returned; the inner repository stays
// the source of truth.
//
// Evictions and fills are deferred with uow.AfterCommit, so a rolled-back
// scope never touches the cache and an uncommitted row is never cached.
type ItemRepository struct {
	inner repositories.ItemRepository
	cache ItemCache
	log   logger.Logger
}

// NewItemRepository wraps inner with cache.
func NewItemRepository(inner repositories.ItemRepository, cache ItemCache, log logger.Logger) *ItemRepository {
	return &ItemRepository{inner: inner, cache: cache, log: log}
}

func (r *ItemRepository) Add(ctx context.Context, item models.Item) error {
	if err := r.inner.Add(ctx, item); err != nil {
		return err
	}
	r.evictAfterCommit(ctx, item.ID())
	return nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id models.ItemID) (models.Item, bool, error) {
	item, err := r.cache.Get(ctx, id)
	if err == nil {
		return item, true, nil
	}
	if !errors.Is(err, redis.Nil) {
		r.log.WarnContext(ctx, "item cache read failed", "item_id", id, "error", err)
	}

	item, ok, err := r.inner.GetByID(ctx, id)
	if err != nil || !ok {
		return item, ok, err
	}
	uow.AfterCommit(ctx, func(ctx context.Context) {
		if err := r.cache.Set(ctx, item); err != nil {
			r.log.WarnContext(ctx, "item cache fill failed", "item_id", id, "error", err)
		}
	})
	return item, true, nil
}

func (r *ItemRepository) ListAll(ctx context.Context) ([]models.Item, error) {
	return r.inner.ListAll(ctx)
}

func (r *ItemRepository) DeleteByID(ctx context.Context, id models.ItemID) (models.Item, bool, error) {
	item, ok, err := r.inner.DeleteByID(ctx, id)
	if err != nil {
		return item, ok, err
	}
	r.evictAfterCommit(ctx, id)
	return item, ok, nil
}

func (r *ItemRepository) evictAfterCommit(ctx context.Context, id models.ItemID) {
	uow.AfterCommit(ctx, func(ctx context.Context) {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.WarnContext(ctx, "item cache evict failed", "item_id", id, "error", err)
		}
	})
}
