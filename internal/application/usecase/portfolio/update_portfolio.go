package portfolio

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/adapters/event"
	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type UpdatePortfolioUseCase struct {
	repo      portfolio.Repository
	cache     portfolio.Cache
	publisher EventPublisher
	logger    logger.Logger
}

func NewUpdatePortfolioUseCase(repo portfolio.Repository, cache portfolio.Cache, pub EventPublisher, log logger.Logger) *UpdatePortfolioUseCase {
	return &UpdatePortfolioUseCase{repo: repo, cache: cache, publisher: pub, logger: log}
}

type UpdatePortfolioInput struct {
	PortfolioID uuid.UUID
	Name        string
	Title       string
	About       string
	Skills      []string
	Projects    []portfolio.Project
	Contact     portfolio.Contact
}

type UpdatePortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

// Execute replaces the whole document. There is no version check: the last
// writer wins.
func (uc *UpdatePortfolioUseCase) Execute(ctx context.Context, input UpdatePortfolioInput) (*UpdatePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "UpdatePortfolio")
	defer span.End()
	span.SetAttributes(attribute.String("portfolio_id", input.PortfolioID.String()))

	id := input.PortfolioID
	p := &portfolio.Portfolio{
		ID:        &id,
		Name:      input.Name,
		Title:     input.Title,
		About:     input.About,
		Skills:    input.Skills,
		Projects:  input.Projects,
		Contact:   input.Contact,
		UpdatedAt: time.Now().UTC(),
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("portfolio validation failed", err)
	}

	if err := uc.repo.Update(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("update portfolio failed: %w", err)
	}

	invalidateCache(ctx, uc.cache, uc.logger)
	publishAsync(uc.publisher, uc.logger, event.PortfolioEventTypeUpdated, id)

	uc.logger.Info("Portfolio updated", zap.String("portfolio_id", id.String()))
	return &UpdatePortfolioOutput{Portfolio: p}, nil
}
