package uow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_CommitsOnSuccess(t *testing.T) {
	u := NewInMemory()
	called := false

	err := u.Do(context.Background(), func(context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, called)
	assert.True(t, u.Committed())
}

func TestInMemory_RollsBackOnError(t *testing.T) {
	u := NewInMemory()
	require.NoError(t, u.Do(context.Background(), func(context.Context) error { return nil }))
	require.True(t, u.Committed())

	boom := errors.New("boom")
	err := u.Do(context.Background(), func(context.Context) error { return boom })

	require.ErrorIs(t, err, boom)
	assert.False(t, u.Committed())
}

func TestInMemory_RollsBackAndRepanics(t *testing.T) {
	u := NewInMemory()
	require.NoError(t, u.Do(context.Background(), func(context.Context) error { return nil }))

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = u.Do(context.Background(), func(context.Context) error { panic("kaboom") })
	})
	assert.False(t, u.Committed())

	// The lock must have been released by the panicking scope.
	require.NoError(t, u.Do(context.Background(), func(context.Context) error { return nil }))
	assert.True(t, u.Committed())
}

func TestInMemory_CancelledContext(t *testing.T) {
	u := NewInMemory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := u.Do(ctx, func(context.Context) error {
		called = true
		return nil
	})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestInMemory_SerializesScopes(t *testing.T) {
	u := NewInMemory()
	var (
		active  int
		maxSeen int
		wg      sync.WaitGroup
	)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = u.Do(context.Background(), func(context.Context) error {
				// Unsynchronized on purpose: the scope lock is the only guard.
				active++
				if active > maxSeen {
					maxSeen = active
				}
				active--
				return nil
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func TestRun_ReturnsValue(t *testing.T) {
	u := NewInMemory()
	got, err := Run(context.Background(), u, func(context.Context) (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestRun_ZeroValueOnError(t *testing.T) {
	u := NewInMemory()
	boom := errors.New("boom")
	got, err := Run(context.Background(), u, func(context.Context) (string, error) { return "partial", boom })
	require.ErrorIs(t, err, boom)
	assert.Empty(t, got)
	assert.False(t, u.Committed())
}
