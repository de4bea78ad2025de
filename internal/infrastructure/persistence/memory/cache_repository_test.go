package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time            { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache() (*CacheRepository, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewCacheRepository(0)
	repo.now = clock.now
	return repo, clock
}

func TestCacheRepository_SetGet(t *testing.T) {
	repo, _ := newTestCache()
	ctx := context.Background()
	value := []byte("payload")

	require.NoError(t, repo.Set(ctx, "k", value, time.Minute))
	value[0] = 'X'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got, "stored value is a copy")

	exists, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCacheRepository_MissAndExpiry(t *testing.T) {
	repo, clock := newTestCache()
	ctx := context.Background()

	_, err := repo.Get(ctx, "absent")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))
	clock.advance(time.Minute)

	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
	exists, err := repo.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)

	repo.removeExpired()
	assert.Equal(t, 0, repo.Len())
}

func TestCacheRepository_ZeroTTLUsesDefault(t *testing.T) {
	repo, clock := newTestCache()
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "k", []byte("v"), 0))
	clock.advance(DefaultTTL - time.Second)

	_, err := repo.Get(ctx, "k")
	assert.NoError(t, err)
}

func TestCacheRepository_Delete(t *testing.T) {
	repo, _ := newTestCache()
	ctx := context.Background()
	require.NoError(t, repo.Set(ctx, "k", []byte("v"), time.Minute))

	require.NoError(t, repo.Delete(ctx, "k"))

	_, err := repo.Get(ctx, "k")
	assert.ErrorIs(t, err, outbound.ErrCacheMiss)
}

func TestCacheRepository_CloseIsIdempotent(t *testing.T) {
	repo := NewCacheRepository(time.Millisecond)

	assert.NoError(t, repo.Close())
	assert.NoError(t, repo.Close())
}
