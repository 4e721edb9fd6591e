package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrUserAlreadyExists  = errors.New("auth: user already exists")
	ErrUnknownProvider    = errors.New("auth: unknown identity provider")
)

// Service provides authentication operations over a fixed set of
// identity provider strategies.
type Service struct {
	users      domain.UserRepository
	strategies map[string]Strategy
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService creates an auth service. The strategy map is built once by
// the caller during process initialization.
func NewService(users domain.UserRepository, strategies map[string]Strategy, jwtSecret string, accessTTL, refreshTTL time.Duration) *Service {
	return &Service{
		users:      users,
		strategies: strategies,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new user with email/password. The password is
// hashed with argon2id before storage.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("auth.Register: %w", ErrUserAlreadyExists)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return user, nil
}

// Login authenticates a credential via the named provider strategy and
// returns access + refresh JWT tokens.
func (s *Service) Login(ctx context.Context, provider string, cred Credential) (accessToken, refreshToken string, err error) {
	strategy, ok := s.strategies[provider]
	if !ok {
		return "", "", fmt.Errorf("auth.Login: %q: %w", provider, ErrUnknownProvider)
	}

	user, err := strategy.Authenticate(ctx, cred)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}

	accessToken, err = IssueAccessToken(s.jwtSecret, user.ID, s.accessTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}

	refreshToken, err = IssueRefreshToken(s.jwtSecret, user.ID, s.refreshTTL)
	if err != nil {
		return "", "", fmt.Errorf("auth.Login: %w", err)
	}

	return accessToken, refreshToken, nil
}

// RefreshToken exchanges a valid refresh token for a new access token.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := parseToken(s.jwtSecret, refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", ErrInvalidToken)
	}

	// Re-check the user still exists before minting a new access token.
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	access, err := IssueAccessToken(s.jwtSecret, userID, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("auth.RefreshToken: %w", err)
	}

	return access, nil
}
