package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/khoahotran/portfolio/internal/domain/portfolio"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type PortfolioRepoIntegrationTestSuite struct {
	suite.Suite
	dbPool      *pgxpool.Pool
	pgContainer *postgres.PostgresContainer
	repo        portfolio.Repository
	userRepo    *postgresUserRepo
}

func (s *PortfolioRepoIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).WithStartupTimeout(1*time.Minute),
		),
	)
	if err != nil {
		s.T().Fatalf("Failed to start postgres container: %s", err)
	}
	s.pgContainer = pgContainer

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		s.T().Fatalf("Failed to get connection string: %s", err)
	}

	if err := RunMigrations(dsn, "../../migrations"); err != nil {
		s.T().Fatalf("Failed to run migrations: %s", err)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool
	s.repo = NewPostgresPortfolioRepo(pool, logger.NewNop())
	s.userRepo = NewPostgresUserRepo(pool, logger.NewNop()).(*postgresUserRepo)
}

func (s *PortfolioRepoIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(context.Background()); err != nil {
			s.T().Fatalf("Failed to terminate postgres container: %s", err)
		}
	}
}

func (s *PortfolioRepoIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), "DELETE FROM portfolios")
	s.Require().NoError(err)
}

func TestPortfolioRepoIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode.")
	}
	suite.Run(t, new(PortfolioRepoIntegrationTestSuite))
}

func newTestPortfolio(name string) *portfolio.Portfolio {
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &portfolio.Portfolio{
		ID:     &id,
		Name:   name,
		Title:  "Engineer",
		About:  "Writes things.",
		Skills: []string{"Go", "SQL"},
		Projects: []portfolio.Project{
			{Title: "Site", Description: "This site", GithubURL: "https://github.com/x/site", DemoURL: "https://x.dev"},
		},
		Contact:   portfolio.Contact{Email: "x@example.com", Phone: "123"},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Get_EmptyStoreReturnsNil() {
	p, err := s.repo.Get(context.Background())
	s.Require().NoError(err)
	s.Nil(p)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Save_And_Get() {
	ctx := context.Background()
	in := newTestPortfolio("Ada")
	s.Require().NoError(s.repo.Save(ctx, in))

	out, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.Equal(*in.ID, *out.ID)
	s.Equal(in.Skills, out.Skills)
	s.Equal(in.Projects, out.Projects)
	s.Equal(in.Contact, out.Contact)

	byID, err := s.repo.FindByID(ctx, *in.ID)
	s.Require().NoError(err)
	s.Equal("Ada", byID.Name)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Save_SecondDocumentConflicts() {
	ctx := context.Background()
	s.Require().NoError(s.repo.Save(ctx, newTestPortfolio("Ada")))

	err := s.repo.Save(ctx, newTestPortfolio("Grace"))
	s.ErrorIs(err, apperror.ErrConflict)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Update() {
	ctx := context.Background()
	in := newTestPortfolio("Ada")
	s.Require().NoError(s.repo.Save(ctx, in))

	in.Name = "Ada Lovelace"
	in.Skills = []string{"Math"}
	in.Projects = []portfolio.Project{}
	in.UpdatedAt = time.Now().UTC()
	s.Require().NoError(s.repo.Update(ctx, in))

	out, err := s.repo.Get(ctx)
	s.Require().NoError(err)
	s.Equal("Ada Lovelace", out.Name)
	s.Equal([]string{"Math"}, out.Skills)
	s.Empty(out.Projects)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_Update_UnknownIDIsNotFound() {
	err := s.repo.Update(context.Background(), newTestPortfolio("Nobody"))
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *PortfolioRepoIntegrationTestSuite) Test_UserUpsert_And_FindByEmail() {
	ctx := context.Background()
	id, err := s.userRepo.Upsert(ctx, "owner@example.com", "hash-1")
	s.Require().NoError(err)

	again, err := s.userRepo.Upsert(ctx, "owner@example.com", "hash-2")
	s.Require().NoError(err)
	s.Equal(id, again)

	u, err := s.userRepo.FindByEmail(ctx, "owner@example.com")
	s.Require().NoError(err)
	s.Equal("hash-2", u.PasswordHash)
}
