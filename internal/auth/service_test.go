package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/taskboard/internal/domain"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, u *domain.User) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	updateFunc         func(ctx context.Context, u *domain.User) error
	createIdentityFunc func(ctx context.Context, ident *domain.AuthIdentity) error
	getIdentityFunc    func(ctx context.Context, provider, providerID string) (*domain.AuthIdentity, error)
	touchIdentityFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error { return m.createFunc(ctx, u) }
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}
func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}
func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error { return m.updateFunc(ctx, u) }
func (m *mockUserRepo) CreateIdentity(ctx context.Context, ident *domain.AuthIdentity) error {
	return m.createIdentityFunc(ctx, ident)
}
func (m *mockUserRepo) GetIdentity(ctx context.Context, provider, providerID string) (*domain.AuthIdentity, error) {
	return m.getIdentityFunc(ctx, provider, providerID)
}
func (m *mockUserRepo) TouchIdentity(ctx context.Context, id uuid.UUID) error {
	return m.touchIdentityFunc(ctx, id)
}

func newTestService(users domain.UserRepository) *Service {
	strategies := map[string]Strategy{
		"local": NewLocalStrategy(users),
	}
	return NewService(users, strategies, testSecret, 15*time.Minute, 7*24*time.Hour)
}

func TestRegisterHashesPassword(t *testing.T) {
	t.Parallel()

	var stored *domain.User
	users := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
		createFunc: func(_ context.Context, u *domain.User) error {
			stored = u
			return nil
		},
	}
	svc := newTestService(users)

	user, err := svc.Register(context.Background(), "alice@example.com", "hunter2hunter2", "Alice")
	require.NoError(t, err)

	require.NotNil(t, stored)
	assert.Equal(t, user.ID, stored.ID)
	assert.NotEqual(t, "hunter2hunter2", stored.PasswordHash, "never store the plaintext")
	assert.True(t, verifyPassword("hunter2hunter2", stored.PasswordHash))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, email string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), Email: email}, nil
		},
	}
	svc := newTestService(users)

	_, err := svc.Register(context.Background(), "taken@example.com", "hunter2hunter2", "Dup")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginLocalIssuesTokenPair(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	hash, err := hashPassword("hunter2hunter2")
	require.NoError(t, err)

	users := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: uid, Email: "alice@example.com", PasswordHash: hash}, nil
		},
	}
	svc := newTestService(users)

	access, refresh, err := svc.Login(context.Background(), "local", Credential{
		Email:    "alice@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	accessClaims, err := parseToken(testSecret, access, tokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), accessClaims.UserID)

	refreshClaims, err := parseToken(testSecret, refresh, tokenTypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), refreshClaims.UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := hashPassword("the-real-password")
	require.NoError(t, err)

	users := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), PasswordHash: hash}, nil
		},
	}
	svc := newTestService(users)

	_, _, err = svc.Login(context.Background(), "local", Credential{
		Email:    "alice@example.com",
		Password: "a guess",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginOAuthOnlyUserHasNoPassword(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		getByEmailFunc: func(_ context.Context, _ string) (*domain.User, error) {
			return &domain.User{ID: uuid.New(), PasswordHash: ""}, nil
		},
	}
	svc := newTestService(users)

	_, _, err := svc.Login(context.Background(), "local", Credential{
		Email:    "oauth-only@example.com",
		Password: "anything",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownProvider(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockUserRepo{})

	_, _, err := svc.Login(context.Background(), "github", Credential{})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestRefreshTokenMintsNewAccessToken(t *testing.T) {
	t.Parallel()

	uid := uuid.New()
	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.User, error) {
			assert.Equal(t, uid, id)
			return &domain.User{ID: uid}, nil
		},
	}
	svc := newTestService(users)

	refresh, err := IssueRefreshToken(testSecret, uid, time.Hour)
	require.NoError(t, err)

	access, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)

	claims, err := parseToken(testSecret, access, tokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uid.String(), claims.UserID)
}

func TestRefreshTokenRejectsAccessToken(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockUserRepo{})

	access, err := IssueAccessToken(testSecret, uuid.New(), time.Minute)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRejectsDeletedUser(t *testing.T) {
	t.Parallel()

	users := &mockUserRepo{
		getByIDFunc: func(_ context.Context, _ uuid.UUID) (*domain.User, error) {
			return nil, domain.ErrNotFound
		},
	}
	svc := newTestService(users)

	refresh, err := IssueRefreshToken(testSecret, uuid.New(), time.Hour)
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), refresh)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
