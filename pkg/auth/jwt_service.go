package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	Issuer = "portfolio-api"
	// Audience is the portfolio write API; tokens minted for anything else
	// are refused.
	Audience = "portfolio-editor"
	// ScopeWrite allows creating and replacing the portfolio document.
	ScopeWrite = "portfolio:write"
)

var ErrInvalidOwnerToken = errors.New("invalid owner token")

// JWTService mints and checks the bearer tokens that let the site owner
// write the portfolio.
type JWTService struct {
	secretKey     []byte
	tokenLifespan time.Duration
}

type OwnerClaims struct {
	OwnerID uuid.UUID `json:"owner_id"`
	Scope   string    `json:"scope"`
	jwt.RegisteredClaims
}

func NewJWTService(secretKey string, tokenLifespan time.Duration) *JWTService {
	return &JWTService{
		secretKey:     []byte(secretKey),
		tokenLifespan: tokenLifespan,
	}
}

// GenerateToken issues a write-scoped token for the portfolio owner.
func (s *JWTService) GenerateToken(ownerID uuid.UUID) (string, error) {
	return s.sign(ownerID, ScopeWrite)
}

func (s *JWTService) sign(ownerID uuid.UUID, scope string) (string, error) {
	now := time.Now()
	claims := OwnerClaims{
		OwnerID: ownerID,
		Scope:   scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifespan)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   ownerID.String(),
			Issuer:    Issuer,
			Audience:  jwt.ClaimStrings{Audience},
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("cannot sign owner token: %w", err)
	}
	return signed, nil
}

// ValidateToken accepts only HS256 tokens from this API, addressed to the
// editor audience and carrying the write scope.
func (s *JWTService) ValidateToken(tokenString string) (*OwnerClaims, error) {
	claims := &OwnerClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithAudience(Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidOwnerToken, err)
	}
	if claims.Scope != ScopeWrite {
		return nil, fmt.Errorf("%w: scope %q cannot write the portfolio", ErrInvalidOwnerToken, claims.Scope)
	}
	if claims.OwnerID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing owner", ErrInvalidOwnerToken)
	}
	return claims, nil
}
