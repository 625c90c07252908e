package portfolio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type GetPortfolioUseCase struct {
	repo   portfolio.Repository
	cache  portfolio.Cache
	logger logger.Logger
}

func NewGetPortfolioUseCase(repo portfolio.Repository, cache portfolio.Cache, log logger.Logger) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{repo: repo, cache: cache, logger: log}
}

type GetPortfolioOutput struct {
	// Portfolio is nil when no document has been created yet.
	Portfolio *portfolio.Portfolio
	FromCache bool
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context) (*GetPortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "GetPortfolio")
	defer span.End()

	cached, ok, err := uc.cache.Get(ctx)
	if err != nil {
		uc.logger.Warn("Portfolio cache read failed, falling back to database", zap.Error(err))
	} else if ok {
		return &GetPortfolioOutput{Portfolio: cached, FromCache: true}, nil
	}

	p, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("get portfolio failed: %w", err)
	}
	if p == nil {
		return &GetPortfolioOutput{}, nil
	}

	if err := uc.cache.Set(ctx, p); err != nil {
		uc.logger.Warn("Failed to cache portfolio", zap.Error(err))
	}
	return &GetPortfolioOutput{Portfolio: p}, nil
}
