package auth

import (
	"context"

	"github.com/gosuda/taskboard/internal/domain"
)

// Credential carries provider-specific login material. Local logins use
// Email/Password; OAuth providers use the authorization Code.
type Credential struct {
	Email    string
	Password string
	Code     string
}

// Strategy authenticates a credential against one identity provider and
// resolves it to a local user. The provider set is fixed at process
// startup: strategies are injected into the Service as an explicit map,
// never registered through mutable global state.
type Strategy interface {
	Name() string
	Authenticate(ctx context.Context, cred Credential) (*domain.User, error)
}
