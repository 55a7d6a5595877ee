package cart

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wichananm65/arix-backend/internal/product"
	"go.uber.org/zap"
)

func tee(id string, price float64) product.Product {
	return product.Product{ID: id, Name: "Tee " + id, Price: price, Anime: "Naruto", Category: "normal",
		Sizes: []string{"M", "L", "XL"}, IsActive: true}
}

func TestAdd_MergeIsIdempotentPerLine(t *testing.T) {
	ctx := context.Background()
	for n := 1; n <= 5; n++ {
		c := Load(ctx, NewMemoryStore(), "k", nil)
		sum := 0
		for q := 1; q <= n; q++ {
			require.NoError(t, c.Add(ctx, tee("a", 12.5), "L", q))
			sum += q
		}
		st := c.State()
		require.Len(t, st.Items, 1, "n=%d", n)
		assert.Equal(t, sum, st.Items[0].Quantity)
		assert.Equal(t, sum, st.TotalItems)
		assert.InDelta(t, 12.5*float64(sum), st.TotalPrice, 0.0001)
	}
}

func TestAdd_PriceSnapshot(t *testing.T) {
	ctx := context.Background()
	c := Load(ctx, NewMemoryStore(), "k", nil)
	require.NoError(t, c.Add(ctx, tee("a", 10), "M", 1))
	// later price change does not reprice the existing line
	require.NoError(t, c.Add(ctx, tee("a", 99), "M", 1))
	it, ok := c.Item("a", "M")
	require.True(t, ok)
	assert.Equal(t, 10.0, it.Price)
	assert.Equal(t, 20.0, c.State().TotalPrice)

	// a different size is its own line
	require.NoError(t, c.Add(ctx, tee("a", 99), "XL", 1))
	assert.Len(t, c.State().Items, 2)

	assert.ErrorIs(t, c.Add(ctx, tee("a", 10), "M", 0), ErrInvalidQuantity)
}

func TestUpdateQuantityZeroEqualsRemove(t *testing.T) {
	ctx := context.Background()
	build := func() *Cart {
		c := Load(ctx, NewMemoryStore(), "k", nil)
		require.NoError(t, c.Add(ctx, tee("a", 10), "M", 2))
		require.NoError(t, c.Add(ctx, tee("b", 5), "L", 3))
		return c
	}
	viaUpdate, viaRemove := build(), build()
	require.NoError(t, viaUpdate.UpdateQuantity(ctx, "a", "M", 0))
	require.NoError(t, viaRemove.Remove(ctx, "a", "M"))
	assert.Equal(t, viaRemove.State(), viaUpdate.State())
	assert.Equal(t, 3, viaUpdate.State().TotalItems)

	require.NoError(t, viaUpdate.UpdateQuantity(ctx, "b", "L", 7))
	assert.Equal(t, 35.0, viaUpdate.State().TotalPrice)
}

func TestLoad_CorruptStateYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.put("k", []byte("{not json"))

	c := Load(ctx, store, "k", zap.NewNop())
	assert.Empty(t, c.State().Items)
	assert.Equal(t, 0, c.State().TotalItems)

	// mutations overwrite the corrupt value
	require.NoError(t, c.Add(ctx, tee("a", 10), "M", 1))
	again := Load(ctx, store, "k", nil)
	assert.Equal(t, 1, again.State().TotalItems)
}

func TestClear_PersistsAcrossLoads(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := Load(ctx, store, "k", nil)
	require.NoError(t, c.Add(ctx, tee("a", 10), "M", 1))
	require.NoError(t, c.Clear(ctx))
	assert.Empty(t, Load(ctx, store, "k", nil).State().Items)
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	c := Load(ctx, store, "session-1", nil)
	require.NoError(t, c.Add(ctx, tee("a", 10), "M", 2))
	assert.Equal(t, 2, Load(ctx, store, "session-1", nil).State().TotalItems)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session-1.json"), []byte("garbage"), 0o644))
	assert.Empty(t, Load(ctx, store, "session-1", zap.NewNop()).State().Items)

	_, err = store.Load(ctx, "../escape")
	assert.ErrorIs(t, err, ErrInvalidKey)

	require.NoError(t, store.Delete(ctx, "session-1"))
	require.NoError(t, store.Delete(ctx, "session-1"))
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	store := NewRedisStore(client, 24*time.Hour)

	c := Load(ctx, store, "abc", nil)
	require.NoError(t, c.Add(ctx, tee("a", 10), "M", 1))
	assert.True(t, mr.Exists("arix:cart:abc"))
	assert.Equal(t, 24*time.Hour, mr.TTL("arix:cart:abc"))
	assert.Equal(t, 1, Load(ctx, store, "abc", nil).State().TotalItems)

	require.NoError(t, mr.Set("arix:cart:abc", "}{"))
	assert.Empty(t, Load(ctx, store, "abc", zap.NewNop()).State().Items)

	require.NoError(t, c.Clear(ctx))
	assert.False(t, mr.Exists("arix:cart:abc"))
}

func TestSessions_SerializesWritersPerKey(t *testing.T) {
	ctx := context.Background()
	sessions := NewSessions(NewMemoryStore(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = sessions.With(ctx, "shared", func(c *Cart) error {
				return c.Add(ctx, tee("a", 1), "M", 1)
			})
		}()
	}
	wg.Wait()

	var total int
	require.NoError(t, sessions.With(ctx, "shared", func(c *Cart) error {
		total = c.State().TotalItems
		return nil
	}))
	assert.Equal(t, 50, total)
	assert.Empty(t, sessions.locks)
}
