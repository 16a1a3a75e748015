package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilnhq/kiln/pkg/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("find or create round trip", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		id := uuid.NewString()

		s, err := store.Create(ctx, id)
		require.NoError(t, err)
		s.Set("theme", "dark")
		require.NoError(t, store.Save(ctx, s))

		got, err := store.FindOrCreate(ctx, id)
		require.NoError(t, err)
		v, ok := got.Get("theme")
		require.True(t, ok)
		assert.Equal(t, "dark", v)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("missing id creates a fresh session", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		id := uuid.NewString()

		s, err := store.FindOrCreate(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, s.SessionID)
		assert.Equal(t, 1, store.Len())
	})

	t.Run("returned sessions do not alias store state", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		id := uuid.NewString()

		first, err := store.Create(ctx, id)
		require.NoError(t, err)
		first.Set("theme", "dark")

		second, err := store.FindOrCreate(ctx, id)
		require.NoError(t, err)
		_, ok := second.Get("theme")
		assert.False(t, ok, "unsaved mutation must not be visible")
	})

	t.Run("concurrent access", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		var wg sync.WaitGroup
		for range 20 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id := uuid.NewString()
				s, err := store.FindOrCreate(ctx, id)
				assert.NoError(t, err)
				s.Set("n", 1)
				assert.NoError(t, store.Save(ctx, s))
			}()
		}
		wg.Wait()
		assert.Equal(t, 20, store.Len())
	})
}
