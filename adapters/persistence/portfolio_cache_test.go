package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

func setupTestCache(t *testing.T, ttl time.Duration) (portfolio.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPortfolioCache(client, ttl), mr
}

func TestPortfolioCache_MissOnEmpty(t *testing.T) {
	cache, _ := setupTestCache(t, time.Minute)

	p, ok, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestPortfolioCache_SetGetInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t, time.Minute)
	ctx := context.Background()

	id := uuid.New()
	in := &portfolio.Portfolio{
		ID:       &id,
		Name:     "Ada",
		Skills:   []string{"C", "Math"},
		Projects: []portfolio.Project{{Title: "Engine", GithubURL: "https://github.com/ada/engine"}},
		Contact:  portfolio.Contact{Email: "ada@example.com"},
	}
	require.NoError(t, cache.Set(ctx, in))
	assert.True(t, mr.Exists(PortfolioCacheKey))

	out, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, id, *out.ID)
	assert.Equal(t, []string{"C", "Math"}, out.Skills)
	assert.Equal(t, in.Projects, out.Projects)

	require.NoError(t, cache.Invalidate(ctx))
	_, ok, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPortfolioCache_Expires(t *testing.T) {
	cache, mr := setupTestCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &portfolio.Portfolio{Name: "Ada"}))
	mr.FastForward(2 * time.Second)

	_, ok, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPortfolioCache_MissingCollectionsComeBackEmpty(t *testing.T) {
	cache, mr := setupTestCache(t, time.Minute)
	require.NoError(t, mr.Set(PortfolioCacheKey, `{"name":"Ada"}`))

	p, ok, err := cache.Get(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	assert.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
	assert.NotNil(t, p.Projects)
	assert.Equal(t, portfolio.Contact{}, p.Contact)
}

func TestPortfolioCache_CorruptValueIsError(t *testing.T) {
	cache, mr := setupTestCache(t, time.Minute)
	require.NoError(t, mr.Set(PortfolioCacheKey, "{not json"))

	_, ok, err := cache.Get(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
