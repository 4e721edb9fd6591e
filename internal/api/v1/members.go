package v1

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

type ListMembersInput struct {
	ProjectID uuid.UUID `path:"projectID"`
}

type ListMembersOutput struct {
	Body struct {
		Members []*domain.MemberWithUser `json:"members"`
	}
}

type InviteMemberInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	Body      struct {
		Email string `json:"email" format:"email" doc:"Email of the user to invite"`
	}
}

type InviteMemberOutput struct {
	Status int
	Body   struct {
		Member *domain.Member `json:"member"`
	}
}

type RemoveMemberInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	UserID    uuid.UUID `path:"userID"`
}

// RegisterMemberRoutes registers project membership endpoints.
func RegisterMemberRoutes(api huma.API, store DataStore, sink NotificationSink) {
	huma.Register(api, huma.Operation{
		OperationID: "list-members",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/members",
		Summary:     "List project members",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *ListMembersInput) (*ListMembersOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		members, err := store.Members().ListByProject(ctx, input.ProjectID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list members")
		}

		resp := &ListMembersOutput{}
		resp.Body.Members = members
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "invite-member",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/members",
		Summary:     "Invite a user to the project by email",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *InviteMemberInput) (*InviteMemberOutput, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		user, err := store.Users().GetByEmail(ctx, input.Body.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("no user with this email")
			}
			return nil, huma.Error500InternalServerError("failed to look up user")
		}

		if _, err := store.Members().GetByUserAndProject(ctx, user.ID, input.ProjectID); err == nil {
			return nil, huma.Error409Conflict("user is already a member of this project")
		} else if !errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error500InternalServerError("failed to check membership")
		}

		member := &domain.Member{
			ID:        uuid.New(),
			ProjectID: input.ProjectID,
			UserID:    user.ID,
			Role:      domain.RoleMember,
			CreatedAt: time.Now(),
		}
		if err := store.Members().Create(ctx, member); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				return nil, huma.Error409Conflict("user is already a member of this project")
			}
			return nil, huma.Error500InternalServerError("failed to add member")
		}

		project, err := store.Projects().GetByID(ctx, input.ProjectID)
		if err != nil {
			log.Warn().Err(err).Msg("project lookup for invite notification failed")
		} else if _, err := sink.Create(ctx, user.ID, domain.NotificationProjectInvite,
			"You were added to project "+project.Name,
			map[string]string{"projectId": project.ID.String()}); err != nil {
			log.Warn().Err(err).Msg("invite notification failed")
		}

		resp := &InviteMemberOutput{Status: http.StatusCreated}
		resp.Body.Member = member
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "remove-member",
		Method:      http.MethodDelete,
		Path:        "/projects/{projectID}/members/{userID}",
		Summary:     "Remove a member from the project",
		Tags:        []string{"Members"},
	}, func(ctx context.Context, input *RemoveMemberInput) (*struct{}, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		callerID, _ := middleware.UserIDFromContext(ctx)
		if input.UserID == callerID {
			return nil, huma.Error400BadRequest("the project owner cannot remove themselves")
		}

		if err := store.Members().DeleteByUserAndProject(ctx, input.UserID, input.ProjectID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("membership not found")
			}
			return nil, huma.Error500InternalServerError("failed to remove member")
		}

		return nil, nil
	})
}
