package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string `json:"-"` // argon2id, empty for OAuth-only users
	CreatedAt    time.Time
}

// AuthIdentity links a user to an external identity provider account.
type AuthIdentity struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Provider    string // "local", "google"
	ProviderID  string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error

	CreateIdentity(ctx context.Context, ident *AuthIdentity) error
	GetIdentity(ctx context.Context, provider, providerID string) (*AuthIdentity, error)
	TouchIdentity(ctx context.Context, id uuid.UUID) error
}
