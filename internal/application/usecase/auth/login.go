package auth

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/domain/user"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type LoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewLoginUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *LoginUseCase {
	return &LoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string
}

var tracer = otel.Tracer("portfolio_owner_auth")

// errBadCredentials is returned for an unknown email and a wrong password
// alike.
func errBadCredentials() error {
	return apperror.NewUnauthorized("invalid owner credentials", nil)
}

// Execute exchanges the owner's email and password for a bearer token that
// may write the portfolio.
func (uc *LoginUseCase) Execute(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	ctx, span := tracer.Start(ctx, "OwnerLogin")
	defer span.End()

	email := strings.ToLower(strings.TrimSpace(input.Email))
	owner, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrUnauthorized) || errors.Is(err, apperror.ErrNotFound) {
			uc.logger.Warn("Owner login with unknown email", zap.String("email", email))
			err = errBadCredentials()
		}
		span.RecordError(err)
		return nil, err
	}

	if !auth.CheckPasswordHash(input.Password, owner.PasswordHash) {
		uc.logger.Warn("Owner login with wrong password", zap.String("owner_id", owner.ID.String()))
		err := errBadCredentials()
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(owner.ID)
	if err != nil {
		uc.logger.Error("Failed to issue owner token", err, zap.String("owner_id", owner.ID.String()))
		err = apperror.NewInternal("failed to issue owner token", err)
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("owner_id", owner.ID.String()))
	return &LoginOutput{AccessToken: token}, nil
}
