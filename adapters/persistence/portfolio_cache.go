package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
)

// PortfolioCacheKey holds the JSON encoding of the current document.
const PortfolioCacheKey = "portfolio:current"

type redisPortfolioCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPortfolioCache(client *redis.Client, ttl time.Duration) portfolio.Cache {
	return &redisPortfolioCache{client: client, ttl: ttl}
}

func (c *redisPortfolioCache) Get(ctx context.Context) (*portfolio.Portfolio, bool, error) {
	data, err := c.client.Get(ctx, PortfolioCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get portfolio from cache: %w", err)
	}

	var p portfolio.Portfolio
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached portfolio: %w", err)
	}
	p.Normalize()
	return &p, true, nil
}

func (c *redisPortfolioCache) Set(ctx context.Context, p *portfolio.Portfolio) error {
	if p == nil {
		return c.Invalidate(ctx)
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	return c.client.Set(ctx, PortfolioCacheKey, data, c.ttl).Err()
}

func (c *redisPortfolioCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, PortfolioCacheKey).Err()
}
