package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/auth"
	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

type RegisterInput struct {
	Body struct {
		Email    string `json:"email" format:"email" doc:"User email address"`
		Password string `json:"password" minLength:"8" maxLength:"128" doc:"Password"`
		Name     string `json:"name" minLength:"1" maxLength:"100" doc:"Display name"`
	}
}

type RegisterOutput struct {
	Status int
	Body   struct {
		User *domain.User `json:"user"`
	}
}

type LoginInput struct {
	Body struct {
		Provider string `json:"provider,omitempty" enum:"local,google" doc:"Identity provider, defaults to local"`
		Email    string `json:"email,omitempty" doc:"Email for the local provider"`
		Password string `json:"password,omitempty" doc:"Password for the local provider"`
		Code     string `json:"code,omitempty" doc:"Authorization code for OAuth providers"`
	}
}

type LoginOutput struct {
	Body struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
}

type RefreshInput struct {
	Body struct {
		RefreshToken string `json:"refresh_token" minLength:"1"`
	}
}

type RefreshOutput struct {
	Body struct {
		AccessToken string `json:"access_token"`
	}
}

type MeOutput struct {
	Body struct {
		User *domain.User `json:"user"`
	}
}

// RegisterAuthRoutes registers the unauthenticated auth endpoints.
func RegisterAuthRoutes(api huma.API, svc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "auth-register",
		Method:      http.MethodPost,
		Path:        "/auth/register",
		Summary:     "Register a new user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
		user, err := svc.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name)
		if err != nil {
			if errors.Is(err, auth.ErrUserAlreadyExists) || errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("a user with this email already exists")
			}
			log.Error().Err(err).Msg("register failed")
			return nil, huma.Error500InternalServerError("failed to register user")
		}

		resp := &RegisterOutput{Status: http.StatusCreated}
		resp.Body.User = user
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/auth/login",
		Summary:     "Authenticate and receive tokens",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		provider := input.Body.Provider
		if provider == "" {
			provider = "local"
		}

		access, refresh, err := svc.Login(ctx, provider, auth.Credential{
			Email:    input.Body.Email,
			Password: input.Body.Password,
			Code:     input.Body.Code,
		})
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrUnknownProvider):
				return nil, huma.Error400BadRequest("unknown identity provider")
			case errors.Is(err, auth.ErrInvalidCredentials):
				return nil, huma.Error401Unauthorized("invalid credentials")
			default:
				log.Error().Err(err).Str("provider", provider).Msg("login failed")
				return nil, huma.Error500InternalServerError("failed to log in")
			}
		}

		resp := &LoginOutput{}
		resp.Body.AccessToken = access
		resp.Body.RefreshToken = refresh
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-refresh",
		Method:      http.MethodPost,
		Path:        "/auth/refresh",
		Summary:     "Exchange a refresh token for a new access token",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *RefreshInput) (*RefreshOutput, error) {
		access, err := svc.RefreshToken(ctx, input.Body.RefreshToken)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) || errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error401Unauthorized("invalid refresh token")
			}
			log.Error().Err(err).Msg("token refresh failed")
			return nil, huma.Error500InternalServerError("failed to refresh token")
		}

		resp := &RefreshOutput{}
		resp.Body.AccessToken = access
		return resp, nil
	})
}

// RegisterMeRoutes registers the authenticated current-user endpoint.
func RegisterMeRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "auth-me",
		Method:      http.MethodGet,
		Path:        "/auth/me",
		Summary:     "Get the authenticated user",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *struct{}) (*MeOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		user, err := store.Users().GetByID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("user not found")
			}
			return nil, huma.Error500InternalServerError("failed to load user")
		}

		resp := &MeOutput{}
		resp.Body.User = user
		return resp, nil
	})
}
