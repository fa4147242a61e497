package cache

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeItem(t *testing.T) {
	desc := "TOS - The Menagerie"
	empty := ""

	tests := []struct {
		name string
		item CachedItem
	}{
		{"with description", CachedItem{ID: uuid.Must(uuid.NewV7()), Name: "Vintage Laserdisc", Description: &desc}},
		{"empty description", CachedItem{ID: uuid.Must(uuid.NewV7()), Name: "blank", Description: &empty}},
		{"no description", CachedItem{ID: uuid.Must(uuid.NewV7()), Name: "bare"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := encodeItem(&tt.item)
			vals := make(map[string]string, len(fields)/2)
			for i := 0; i < len(fields); i += 2 {
				vals[fields[i].(string)] = fields[i+1].(string)
			}

			got, err := decodeItem(vals)
			require.NoError(t, err)
			assert.Equal(t, tt.item, *got)
		})
	}
}

func TestDecodeItem_BadID(t *testing.T) {
	_, err := decodeItem(map[string]string{"id": "nope", "name": "x"})
	require.Error(t, err)
}

func TestItemCacheKey(t *testing.T) {
	id := uuid.MustParse("01890a5d-ac96-774b-bcce-b302099a8057")
	c := &ItemCache{}
	assert.Equal(t, "item:01890a5d-ac96-774b-bcce-b302099a8057", c.key(id))
}

// Integration tests: skipped unless REDIS_URL is set.
func TestItemCacheIntegration(t *testing.T) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		t.Skip("REDIS_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	rc, err := NewRedisClient(ctx, redisURL)
	require.NoError(t, err)
	defer rc.Close() //nolint:errcheck

	c := NewItemCache(rc)
	desc := "cached"
	item := &CachedItem{ID: uuid.Must(uuid.NewV7()), Name: "Tribble", Description: &desc}

	t.Run("miss returns redis.Nil", func(t *testing.T) {
		_, err := c.Get(ctx, uuid.Must(uuid.NewV7()))
		assert.True(t, errors.Is(err, redis.Nil))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, item))
		got, err := c.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Equal(t, item, got)
	})

	t.Run("overwrite clears description", func(t *testing.T) {
		cleared := &CachedItem{ID: item.ID, Name: "Tribble"}
		require.NoError(t, c.Set(ctx, cleared))
		got, err := c.Get(ctx, item.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Description)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, item.ID))
		_, err := c.Get(ctx, item.ID)
		assert.True(t, errors.Is(err, redis.Nil))
		require.NoError(t, c.Delete(ctx, item.ID))
	})
}
