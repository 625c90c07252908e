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

type CreatePortfolioUseCase struct {
	repo      portfolio.Repository
	cache     portfolio.Cache
	publisher EventPublisher
	logger    logger.Logger
}

func NewCreatePortfolioUseCase(repo portfolio.Repository, cache portfolio.Cache, pub EventPublisher, log logger.Logger) *CreatePortfolioUseCase {
	return &CreatePortfolioUseCase{repo: repo, cache: cache, publisher: pub, logger: log}
}

type CreatePortfolioInput struct {
	Name     string
	Title    string
	About    string
	Skills   []string
	Projects []portfolio.Project
	Contact  portfolio.Contact
}

type CreatePortfolioOutput struct {
	Portfolio *portfolio.Portfolio
}

func (uc *CreatePortfolioUseCase) Execute(ctx context.Context, input CreatePortfolioInput) (*CreatePortfolioOutput, error) {
	ctx, span := tracer.Start(ctx, "CreatePortfolio")
	defer span.End()

	now := time.Now().UTC()
	p := &portfolio.Portfolio{
		Name:      input.Name,
		Title:     input.Title,
		About:     input.About,
		Skills:    input.Skills,
		Projects:  input.Projects,
		Contact:   input.Contact,
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput("portfolio validation failed", err)
	}

	existing, err := uc.repo.Get(ctx)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("check existing portfolio failed: %w", err)
	}
	if existing != nil {
		return nil, apperror.NewConflict("portfolio", fmt.Sprintf("portfolio %s already exists, update it instead", existing.ID))
	}

	id := uuid.New()
	p.ID = &id
	if err := uc.repo.Save(ctx, p); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("save portfolio failed: %w", err)
	}
	span.SetAttributes(attribute.String("portfolio_id", id.String()))

	invalidateCache(ctx, uc.cache, uc.logger)
	publishAsync(uc.publisher, uc.logger, event.PortfolioEventTypeCreated, id)

	uc.logger.Info("Portfolio created", zap.String("portfolio_id", id.String()))
	return &CreatePortfolioOutput{Portfolio: p}, nil
}
