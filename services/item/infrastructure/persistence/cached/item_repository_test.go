package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/menagerist/pkg/config"
	"github.com/ghuser/menagerist/pkg/logger"
	"github.com/ghuser/menagerist/pkg/uow"
	"github.com/ghuser/menagerist/services/item/domain/models"
	"github.com/ghuser/menagerist/services/item/infrastructure/persistence/memory"
)

// fakeCache is an in-process ItemCache that can be told to fail.
type fakeCache struct {
	items   map[models.ItemID]models.Item
	failAll error
	gets    int
	sets    int
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[models.ItemID]models.Item)}
}

func (f *fakeCache) Get(_ context.Context, id models.ItemID) (models.Item, error) {
	f.gets++
	if f.failAll != nil {
		return models.Item{}, f.failAll
	}
	item, ok := f.items[id]
	if !ok {
		return models.Item{}, redis.Nil
	}
	return item, nil
}

func (f *fakeCache) Set(_ context.Context, item models.Item) error {
	f.sets++
	if f.failAll != nil {
		return f.failAll
	}
	f.items[item.ID()] = item
	return nil
}

func (f *fakeCache) Delete(_ context.Context, id models.ItemID) error {
	f.deletes++
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.items, id)
	return nil
}

func setup(t *testing.T) (*ItemRepository, *memory.ItemRepository, *fakeCache) {
	t.Helper()
	inner := memory.NewItemRepository()
	fc := newFakeCache()
	log := logger.New(&config.Config{LogLevel: "error"})
	return NewItemRepository(inner, fc, log), inner, fc
}

func mustItem(t *testing.T, name string) models.Item {
	t.Helper()
	item, err := models.NewItem(name, nil)
	require.NoError(t, err)
	return item
}

func TestGetByID_ReadThrough(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	item := mustItem(t, "Phaser")
	require.NoError(t, repo.Add(ctx, item))

	got, ok, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item, got)
	assert.Equal(t, 1, fc.sets, "miss should fill the cache")

	got, ok, err = repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item, got)
	assert.Equal(t, 1, fc.sets, "hit should not refill")
}

func TestGetByID_AbsentIsNotCached(t *testing.T) {
	repo, _, fc := setup(t)

	_, ok, err := repo.GetByID(context.Background(), models.NewItemID())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, fc.sets)
}

func TestAdd_EvictsStaleEntry(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	item := mustItem(t, "before")
	require.NoError(t, repo.Add(ctx, item))
	_, _, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)

	renamed, err := models.LoadItem(item.ID(), "after", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Add(ctx, renamed))

	got, ok, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "after", got.Name().String())
	assert.Equal(t, 2, fc.deletes)
}

func TestDeleteByID_Evicts(t *testing.T) {
	repo, _, _ := setup(t)
	ctx := context.Background()
	item := mustItem(t, "gone")
	require.NoError(t, repo.Add(ctx, item))
	_, _, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)

	_, ok, err := repo.DeleteByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCacheFailuresAreNotReturned(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	fc.failAll = errors.New("redis down")

	item := mustItem(t, "resilient")
	require.NoError(t, repo.Add(ctx, item))

	got, ok, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item, got)

	_, ok, err = repo.DeleteByID(ctx, item.ID())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestListAll_BypassesCache(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	require.NoError(t, repo.Add(ctx, mustItem(t, "a")))
	require.NoError(t, repo.Add(ctx, mustItem(t, "b")))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, 0, fc.gets)
}

func TestDeleteByID_EvictsOnlyAfterCommit(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	item := mustItem(t, "Tribble")
	require.NoError(t, repo.Add(ctx, item))
	_, _, err := repo.GetByID(ctx, item.ID())
	require.NoError(t, err)
	require.Contains(t, fc.items, item.ID())
	deletesBefore := fc.deletes

	u := uow.NewInMemory()
	err = u.Do(ctx, func(ctx context.Context) error {
		_, ok, err := repo.DeleteByID(ctx, item.ID())
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, deletesBefore, fc.deletes, "evicted before commit")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, deletesBefore+1, fc.deletes)
	assert.NotContains(t, fc.items, item.ID())
}

func TestRolledBackScopeLeavesCacheUntouched(t *testing.T) {
	repo, _, fc := setup(t)
	ctx := context.Background()
	item := mustItem(t, "Isolinear chip")
	boom := errors.New("boom")

	u := uow.NewInMemory()
	err := u.Do(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.Add(ctx, item))
		_, ok, err := repo.GetByID(ctx, item.ID())
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	require.ErrorIs(t, err, boom)

	assert.Equal(t, 0, fc.sets, "uncommitted read must not fill the cache")
	assert.Equal(t, 0, fc.deletes)
	assert.Empty(t, fc.items)
}
