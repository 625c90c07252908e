package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

func TestSeedOwner_CreatesThenResets(t *testing.T) {
	repo := &stubUserRepo{}
	uc := NewSeedOwnerUseCase(repo, logger.NewNop())

	first, err := uc.Execute(context.Background(), SeedOwnerInput{Email: " Owner@Example.com ", Password: "first-password"})
	require.NoError(t, err)

	stored := repo.users["owner@example.com"]
	require.NotNil(t, stored)
	assert.True(t, auth.CheckPasswordHash("first-password", stored.PasswordHash))

	second, err := uc.Execute(context.Background(), SeedOwnerInput{Email: "owner@example.com", Password: "second-password"})
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.True(t, auth.CheckPasswordHash("second-password", repo.users["owner@example.com"].PasswordHash))
	assert.False(t, auth.CheckPasswordHash("first-password", repo.users["owner@example.com"].PasswordHash))
}

func TestSeedOwner_RejectsBadInput(t *testing.T) {
	uc := NewSeedOwnerUseCase(&stubUserRepo{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), SeedOwnerInput{Email: "", Password: "long-enough"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), SeedOwnerInput{Email: "a@b.c", Password: "short"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}
