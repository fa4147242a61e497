package cached

import (
	"context"

	"github.com/ghuser/menagerist/pkg/cache"
	"github.com/ghuser/menagerist/services/item/domain/models"
)

// RedisItemCache adapts cache.ItemCache to domain items.
type RedisItemCache struct {
	cache *cache.ItemCache
}

// NewRedisItemCache returns an ItemCache backed by Redis.
func NewRedisItemCache(c *cache.ItemCache) *RedisItemCache {
	return &RedisItemCache{cache: c}
}

func (c *RedisItemCache) Get(ctx context.Context, id models.ItemID) (models.Item, error) {
	ci, err := c.cache.Get(ctx, id.UUID())
	if err != nil {
		return models.Item{}, err
	}
	return models.LoadItem(models.ItemID(ci.ID), ci.Name, ci.Description)
}

func (c *RedisItemCache) Set(ctx context.Context, item models.Item) error {
	return c.cache.Set(ctx, &cache.CachedItem{
		ID:          item.ID().UUID(),
		Name:        item.Name().String(),
		Description: item.DescriptionPtr(),
	})
}

func (c *RedisItemCache) Delete(ctx context.Context, id models.ItemID) error {
	return c.cache.Delete(ctx, id.UUID())
}
