package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/user"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

const minPasswordLength = 8

// SeedOwnerUseCase creates the owner account or resets its password.
type SeedOwnerUseCase struct {
	userRepo user.Repository
	logger   logger.Logger
}

func NewSeedOwnerUseCase(repo user.Repository, log logger.Logger) *SeedOwnerUseCase {
	return &SeedOwnerUseCase{userRepo: repo, logger: log}
}

type SeedOwnerInput struct {
	Email    string
	Password string
}

type SeedOwnerOutput struct {
	UserID uuid.UUID
}

func (uc *SeedOwnerUseCase) Execute(ctx context.Context, input SeedOwnerInput) (*SeedOwnerOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, apperror.NewInvalidInput("owner email is required", nil)
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperror.NewInvalidInput("owner password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("cannot hash password", err)
	}

	id, err := uc.userRepo.Upsert(ctx, email, hash)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Owner seeded", zap.String("email", email), zap.String("user_id", id.String()))
	return &SeedOwnerOutput{UserID: id}, nil
}
