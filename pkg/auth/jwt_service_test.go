package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	ownerID := uuid.New()

	token, err := svc.GenerateToken(ownerID)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, ownerID, claims.OwnerID)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.Equal(t, ScopeWrite, claims.Scope)
	assert.Equal(t, jwt.ClaimStrings{Audience}, claims.Audience)
}

func TestJWTService_RejectsForeignSecret(t *testing.T) {
	token, err := NewJWTService("secret-a", time.Hour).GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = NewJWTService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute)
	token, err := svc.GenerateToken(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("hunter2", hash))
	assert.False(t, CheckPasswordHash("hunter3", hash))
}

func TestJWTService_RejectsForeignClaims(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	sign := func(claims jwt.Claims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		require.NoError(t, err)
		return token
	}
	valid := func() OwnerClaims {
		return OwnerClaims{
			OwnerID: uuid.New(),
			Scope:   ScopeWrite,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
				Issuer:    Issuer,
				Audience:  jwt.ClaimStrings{Audience},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(*OwnerClaims)
	}{
		{name: "other issuer", mutate: func(c *OwnerClaims) { c.Issuer = "blog-api" }},
		{name: "other audience", mutate: func(c *OwnerClaims) { c.Audience = jwt.ClaimStrings{"blog-reader"} }},
		{name: "read scope", mutate: func(c *OwnerClaims) { c.Scope = "portfolio:read" }},
		{name: "no owner", mutate: func(c *OwnerClaims) { c.OwnerID = uuid.Nil }},
		{name: "no expiry", mutate: func(c *OwnerClaims) { c.ExpiresAt = nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := valid()
			tt.mutate(&claims)

			_, err := svc.ValidateToken(sign(claims))
			assert.ErrorIs(t, err, ErrInvalidOwnerToken)
		})
	}

	_, err := svc.ValidateToken(sign(valid()))
	assert.NoError(t, err)
}

func TestJWTService_RejectsOtherAlgorithms(t *testing.T) {
	claims := OwnerClaims{
		OwnerID: uuid.New(),
		Scope:   ScopeWrite,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = NewJWTService("test-secret", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidOwnerToken)
}
