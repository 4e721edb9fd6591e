package auth

import (
	"context"
	"fmt"

	"github.com/gosuda/taskboard/internal/domain"
)

// LocalStrategy authenticates email/password credentials against the
// user store's argon2id hashes.
type LocalStrategy struct {
	users domain.UserRepository
}

func NewLocalStrategy(users domain.UserRepository) *LocalStrategy {
	return &LocalStrategy{users: users}
}

func (s *LocalStrategy) Name() string { return "local" }

func (s *LocalStrategy) Authenticate(ctx context.Context, cred Credential) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, cred.Email)
	if err != nil {
		return nil, fmt.Errorf("auth.LocalStrategy.Authenticate: %w", ErrInvalidCredentials)
	}

	if user.PasswordHash == "" || !verifyPassword(cred.Password, user.PasswordHash) {
		return nil, fmt.Errorf("auth.LocalStrategy.Authenticate: %w", ErrInvalidCredentials)
	}

	return user, nil
}
