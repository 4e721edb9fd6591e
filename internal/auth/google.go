package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"

	"github.com/gosuda/taskboard/internal/domain"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleStrategy authenticates an OAuth authorization code against
// Google and resolves (or creates) the matching local user and identity
// link.
type GoogleStrategy struct {
	users domain.UserRepository
	cfg   *oauth2.Config
}

func NewGoogleStrategy(users domain.UserRepository, clientID, clientSecret, redirectURL string) *GoogleStrategy {
	return &GoogleStrategy{
		users: users,
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     googleoauth.Endpoint,
		},
	}
}

func (s *GoogleStrategy) Name() string { return "google" }

// AuthURL returns the provider consent page URL for the given state.
func (s *GoogleStrategy) AuthURL(state string) string {
	return s.cfg.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (s *GoogleStrategy) Authenticate(ctx context.Context, cred Credential) (*domain.User, error) {
	token, err := s.cfg.Exchange(ctx, cred.Code)
	if err != nil {
		return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: exchange: %w", err)
	}

	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", err)
	}

	ident, err := s.users.GetIdentity(ctx, s.Name(), info.ID)
	if err == nil {
		if touchErr := s.users.TouchIdentity(ctx, ident.ID); touchErr != nil {
			return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", touchErr)
		}
		user, getErr := s.users.GetByID(ctx, ident.UserID)
		if getErr != nil {
			return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", getErr)
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", err)
	}

	user, err := s.resolveUser(ctx, info)
	if err != nil {
		return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", err)
	}

	if err := s.users.CreateIdentity(ctx, &domain.AuthIdentity{
		ID:         uuid.New(),
		UserID:     user.ID,
		Provider:   s.Name(),
		ProviderID: info.ID,
		CreatedAt:  time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("auth.GoogleStrategy.Authenticate: %w", err)
	}

	return user, nil
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (s *GoogleStrategy) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	resp, err := s.cfg.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo: unexpected status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("userinfo: decode: %w", err)
	}
	if info.ID == "" || info.Email == "" {
		return nil, errors.New("userinfo: missing id or email")
	}

	return &info, nil
}

// resolveUser links to an existing account with the same email, or
// creates a fresh OAuth-only user.
func (s *GoogleStrategy) resolveUser(ctx context.Context, info *googleUserInfo) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, info.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	user = &domain.User{
		ID:        uuid.New(),
		Email:     info.Email,
		Name:      info.Name,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
