package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const portfolioColumns = "id, name, title, about, skills, projects, contact, created_at, updated_at"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type postgresPortfolioRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPortfolioRepo(db *pgxpool.Pool, logger logger.Logger) portfolio.Repository {
	return &postgresPortfolioRepo{db: db, logger: logger}
}

func scanPortfolio(row pgx.Row, l logger.Logger) (*portfolio.Portfolio, error) {
	p := &portfolio.Portfolio{}
	var id uuid.UUID
	var projectsBytes, contactBytes []byte

	err := row.Scan(
		&id,
		&p.Name,
		&p.Title,
		&p.About,
		&p.Skills,
		&projectsBytes,
		&contactBytes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.ID = &id

	// Broken nested JSON degrades to empty values instead of failing the read.
	if len(projectsBytes) > 0 {
		if err := json.Unmarshal(projectsBytes, &p.Projects); err != nil {
			l.Warn("Failed to unmarshal portfolio projects", zap.String("portfolio_id", id.String()), zap.Error(err))
			p.Projects = nil
		}
	}
	if len(contactBytes) > 0 {
		if err := json.Unmarshal(contactBytes, &p.Contact); err != nil {
			l.Warn("Failed to unmarshal portfolio contact", zap.String("portfolio_id", id.String()), zap.Error(err))
			p.Contact = portfolio.Contact{}
		}
	}
	p.Normalize()
	return p, nil
}

func (r *postgresPortfolioRepo) Get(ctx context.Context) (*portfolio.Portfolio, error) {
	query, args, err := psql.Select(portfolioColumns).From("portfolios").Limit(1).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio query", err)
	}

	p, err := scanPortfolio(r.db.QueryRow(ctx, query, args...), r.logger)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.NewInternal("failed to query portfolio", err)
	}
	return p, nil
}

func (r *postgresPortfolioRepo) FindByID(ctx context.Context, id uuid.UUID) (*portfolio.Portfolio, error) {
	query, args, err := psql.Select(portfolioColumns).From("portfolios").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build portfolio query", err)
	}

	p, err := scanPortfolio(r.db.QueryRow(ctx, query, args...), r.logger)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("portfolio", id.String())
		}
		return nil, apperror.NewInternal("failed to query portfolio by id", err)
	}
	return p, nil
}

func marshalNested(p *portfolio.Portfolio) (projects, contact []byte, err error) {
	projects, err = json.Marshal(p.Projects)
	if err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal portfolio projects", err)
	}
	contact, err = json.Marshal(p.Contact)
	if err != nil {
		return nil, nil, apperror.NewInternal("failed to marshal portfolio contact", err)
	}
	return projects, contact, nil
}

func (r *postgresPortfolioRepo) Save(ctx context.Context, p *portfolio.Portfolio) error {
	if p.ID == nil {
		return apperror.NewInternal("portfolio id must be assigned before save", nil)
	}
	projectsBytes, contactBytes, err := marshalNested(p)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO portfolios (id, name, title, about, skills, projects, contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.Exec(ctx, query,
		*p.ID, p.Name, p.Title, p.About, p.Skills,
		projectsBytes, contactBytes, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("portfolio", "a portfolio document already exists")
		}
		return apperror.NewInternal("failed to save portfolio", err)
	}
	return nil
}

func (r *postgresPortfolioRepo) Update(ctx context.Context, p *portfolio.Portfolio) error {
	if p.ID == nil {
		return apperror.NewInvalidInput("portfolio id is required for update", nil)
	}
	projectsBytes, contactBytes, err := marshalNested(p)
	if err != nil {
		return err
	}

	query, args, err := psql.Update("portfolios").
		Set("name", p.Name).
		Set("title", p.Title).
		Set("about", p.About).
		Set("skills", p.Skills).
		Set("projects", projectsBytes).
		Set("contact", contactBytes).
		Set("updated_at", p.UpdatedAt).
		Where(sq.Eq{"id": *p.ID}).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build portfolio update", err)
	}

	if err := r.db.QueryRow(ctx, query, args...).Scan(&p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound("portfolio", p.ID.String())
		}
		return apperror.NewInternal("failed to update portfolio", err)
	}
	return nil
}
