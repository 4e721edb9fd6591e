package v1

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

// requireMember checks that the authenticated user is a member of the
// project. Absence of a membership row is a hard authorization failure,
// never a soft default. Every mutating handler runs this gate before
// touching the store; the hub and the fan-out sinks trust it.
func requireMember(ctx context.Context, store DataStore, projectID uuid.UUID) (*domain.Member, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing user context")
	}

	member, err := store.Members().GetByUserAndProject(ctx, userID, projectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error403Forbidden("not a member of this project")
		}
		return nil, huma.Error500InternalServerError("failed to check membership")
	}

	return member, nil
}

// requireOwner additionally checks for the owner role. The comparison is
// exact: no role is greater than owner.
func requireOwner(ctx context.Context, store DataStore, projectID uuid.UUID) (*domain.Member, error) {
	member, err := requireMember(ctx, store, projectID)
	if err != nil {
		return nil, err
	}

	if member.Role != domain.RoleOwner {
		return nil, huma.Error403Forbidden("only the project owner can do this")
	}

	return member, nil
}
