package user

import (
	"context"

	"github.com/google/uuid"
)

// User is the site owner allowed to edit the portfolio.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         *string   `json:"name"`
	PasswordHash string    `json:"-"`
}

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	Upsert(ctx context.Context, email, passwordHash string) (uuid.UUID, error)
}
