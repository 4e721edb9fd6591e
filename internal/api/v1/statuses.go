package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/domain"
)

type ListStatusesInput struct {
	ProjectID uuid.UUID `path:"projectID"`
}

type ListStatusesOutput struct {
	Body struct {
		Statuses []*domain.Status `json:"statuses"`
	}
}

type CreateStatusInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	Body      struct {
		Name     string `json:"name" minLength:"1" maxLength:"100" doc:"Column name"`
		Position int    `json:"position" minimum:"0" doc:"Column ordering position"`
	}
}

type StatusOutput struct {
	Body struct {
		Status *domain.Status `json:"status"`
	}
}

type CreateStatusOutput struct {
	Status int
	Body   struct {
		Status *domain.Status `json:"status"`
	}
}

type UpdateStatusInput struct {
	StatusID uuid.UUID `path:"statusID"`
	Body     struct {
		Name     *string `json:"name,omitempty" maxLength:"100"`
		Position *int    `json:"position,omitempty" minimum:"0"`
	}
}

type DeleteStatusInput struct {
	StatusID uuid.UUID `path:"statusID"`
}

// loadStatus fetches a status and gates on project membership.
func loadStatus(ctx context.Context, store DataStore, statusID uuid.UUID) (*domain.Status, error) {
	status, err := store.Statuses().GetByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error404NotFound("status not found")
		}
		return nil, huma.Error500InternalServerError("failed to load status")
	}

	if _, err := requireMember(ctx, store, status.ProjectID); err != nil {
		return nil, err
	}

	return status, nil
}

// RegisterStatusRoutes registers kanban column endpoints.
func RegisterStatusRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-statuses",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/statuses",
		Summary:     "List a project's statuses",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *ListStatusesInput) (*ListStatusesOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		statuses, err := store.Statuses().ListByProject(ctx, input.ProjectID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list statuses")
		}

		resp := &ListStatusesOutput{}
		resp.Body.Statuses = statuses
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-status",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/statuses",
		Summary:     "Create a status column",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *CreateStatusInput) (*CreateStatusOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		status := &domain.Status{
			ID:        uuid.New(),
			ProjectID: input.ProjectID,
			Name:      input.Body.Name,
			Position:  input.Body.Position,
		}
		if err := store.Statuses().Create(ctx, status); err != nil {
			return nil, huma.Error500InternalServerError("failed to create status")
		}

		resp := &CreateStatusOutput{Status: http.StatusCreated}
		resp.Body.Status = status
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-status",
		Method:      http.MethodPut,
		Path:        "/statuses/{statusID}",
		Summary:     "Update a status column",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *UpdateStatusInput) (*StatusOutput, error) {
		status, err := loadStatus(ctx, store, input.StatusID)
		if err != nil {
			return nil, err
		}

		if input.Body.Name != nil {
			if *input.Body.Name == "" {
				return nil, huma.Error422UnprocessableEntity("status name cannot be empty")
			}
			status.Name = *input.Body.Name
		}
		if input.Body.Position != nil {
			status.Position = *input.Body.Position
		}

		if err := store.Statuses().Update(ctx, status); err != nil {
			return nil, huma.Error500InternalServerError("failed to update status")
		}

		resp := &StatusOutput{}
		resp.Body.Status = status
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-status",
		Method:      http.MethodDelete,
		Path:        "/statuses/{statusID}",
		Summary:     "Delete a status column",
		Tags:        []string{"Statuses"},
	}, func(ctx context.Context, input *DeleteStatusInput) (*struct{}, error) {
		status, err := loadStatus(ctx, store, input.StatusID)
		if err != nil {
			return nil, err
		}

		if err := store.Statuses().Delete(ctx, status.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("status not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete status")
		}

		return nil, nil
	})
}
