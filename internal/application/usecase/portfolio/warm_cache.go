package portfolio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

// WarmCacheUseCase reloads the document after a write event so the next
// public read is served from Redis.
type WarmCacheUseCase struct {
	repo   portfolio.Repository
	cache  portfolio.Cache
	logger logger.Logger
}

func NewWarmCacheUseCase(repo portfolio.Repository, cache portfolio.Cache, log logger.Logger) *WarmCacheUseCase {
	return &WarmCacheUseCase{repo: repo, cache: cache, logger: log}
}

func (uc *WarmCacheUseCase) Execute(ctx context.Context, payload event.PortfolioEventPayload) error {
	ctx, span := tracer.Start(ctx, "WarmPortfolioCache")
	defer span.End()

	p, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("reload portfolio failed: %w", err)
	}
	if p == nil {
		uc.logger.Warn("Portfolio event for an empty store", zap.String("portfolio_id", payload.PortfolioID.String()))
		return uc.cache.Invalidate(ctx)
	}
	if p.ID != nil && *p.ID != payload.PortfolioID {
		uc.logger.Warn("Portfolio event id does not match stored document",
			zap.String("event_portfolio_id", payload.PortfolioID.String()),
			zap.String("stored_portfolio_id", p.ID.String()))
	}

	if err := uc.cache.Set(ctx, p); err != nil {
		return fmt.Errorf("store portfolio in cache failed: %w", err)
	}
	uc.logger.Info("Portfolio cache warmed",
		zap.String("event_type", string(payload.EventType)),
		zap.String("portfolio_id", payload.PortfolioID.String()))
	return nil
}
