package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio/internal/domain/user"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/auth"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type stubUserRepo struct {
	users map[string]*user.User
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewUnauthorized("owner account not found", nil)
	}
	return u, nil
}

func (r *stubUserRepo) Upsert(_ context.Context, email, hash string) (uuid.UUID, error) {
	if r.users == nil {
		r.users = map[string]*user.User{}
	}
	if u, ok := r.users[email]; ok {
		u.PasswordHash = hash
		return u.ID, nil
	}
	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: hash}
	r.users[email] = u
	return u.ID, nil
}

func newLoginFixture(t *testing.T) (*LoginUseCase, *auth.JWTService, *user.User) {
	t.Helper()
	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	owner := &user.User{ID: uuid.New(), Email: "owner@example.com", PasswordHash: hash}
	repo := &stubUserRepo{users: map[string]*user.User{owner.Email: owner}}
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	return NewLoginUseCase(repo, jwtSvc, logger.NewNop()), jwtSvc, owner
}

func TestLogin_Success(t *testing.T) {
	uc, jwtSvc, owner := newLoginFixture(t)

	out, err := uc.Execute(context.Background(), LoginInput{Email: owner.Email, Password: "correct horse"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, claims.OwnerID)
}

func TestLogin_WrongPassword(t *testing.T) {
	uc, _, owner := newLoginFixture(t)

	_, err := uc.Execute(context.Background(), LoginInput{Email: owner.Email, Password: "battery staple"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_UnknownUser(t *testing.T) {
	uc, _, _ := newLoginFixture(t)

	_, err := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestLogin_NormalizesEmail(t *testing.T) {
	uc, jwtSvc, owner := newLoginFixture(t)

	out, err := uc.Execute(context.Background(), LoginInput{Email: "  Owner@Example.COM ", Password: "correct horse"})
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, claims.OwnerID)
	assert.Equal(t, auth.ScopeWrite, claims.Scope)
}

func TestLogin_FailuresLookAlike(t *testing.T) {
	uc, _, owner := newLoginFixture(t)

	_, unknown := uc.Execute(context.Background(), LoginInput{Email: "nobody@example.com", Password: "x"})
	_, wrong := uc.Execute(context.Background(), LoginInput{Email: owner.Email, Password: "battery staple"})

	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
}

func TestLogin_RepositoryFailurePassesThrough(t *testing.T) {
	repo := failingUserRepo{err: apperror.NewInternal("error when query user", errors.New("connection reset"))}
	uc := NewLoginUseCase(repo, auth.NewJWTService("test-secret", time.Hour), logger.NewNop())

	_, err := uc.Execute(context.Background(), LoginInput{Email: "owner@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

type failingUserRepo struct {
	err error
}

func (r failingUserRepo) FindByEmail(context.Context, string) (*user.User, error) { return nil, r.err }

func (r failingUserRepo) Upsert(context.Context, string, string) (uuid.UUID, error) {
	return uuid.Nil, r.err
}
