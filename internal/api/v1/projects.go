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

type ListProjectsOutput struct {
	Body struct {
		Projects []*domain.Project `json:"projects"`
	}
}

type CreateProjectInput struct {
	Body struct {
		Name        string `json:"name" minLength:"1" maxLength:"200" doc:"Project name"`
		Description string `json:"description,omitempty" maxLength:"2000"`
		Color       string `json:"color,omitempty" pattern:"^#[0-9a-fA-F]{6}$" doc:"Hex accent color"`
	}
}

type ProjectOutput struct {
	Body struct {
		Project *domain.Project `json:"project"`
	}
}

type CreateProjectOutput struct {
	Status int
	Body   struct {
		Project *domain.Project `json:"project"`
	}
}

type GetProjectInput struct {
	ProjectID uuid.UUID `path:"projectID" doc:"Project ID"`
}

type UpdateProjectInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	Body      struct {
		Name        *string `json:"name,omitempty" maxLength:"200"`
		Description *string `json:"description,omitempty" maxLength:"2000"`
		Color       *string `json:"color,omitempty" pattern:"^#[0-9a-fA-F]{6}$"`
	}
}

// RegisterProjectRoutes registers project CRUD endpoints.
func RegisterProjectRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-projects",
		Method:      http.MethodGet,
		Path:        "/projects",
		Summary:     "List projects the user belongs to",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *struct{}) (*ListProjectsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		projects, err := store.Projects().ListByUser(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list projects")
		}

		resp := &ListProjectsOutput{}
		resp.Body.Projects = projects
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-project",
		Method:      http.MethodPost,
		Path:        "/projects",
		Summary:     "Create a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *CreateProjectInput) (*CreateProjectOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		project, err := domain.NewProject(userID, input.Body.Name, input.Body.Description, input.Body.Color)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}

		if err := store.Projects().Create(ctx, project); err != nil {
			return nil, huma.Error500InternalServerError("failed to create project")
		}

		// The creator becomes the project owner atomically with creation.
		member := &domain.Member{
			ID:        uuid.New(),
			ProjectID: project.ID,
			UserID:    userID,
			Role:      domain.RoleOwner,
			CreatedAt: time.Now(),
		}
		if err := store.Members().Create(ctx, member); err != nil {
			return nil, huma.Error500InternalServerError("failed to create project membership")
		}

		for i, name := range domain.DefaultStatusNames {
			status := &domain.Status{
				ID:        uuid.New(),
				ProjectID: project.ID,
				Name:      name,
				Position:  i,
			}
			if err := store.Statuses().Create(ctx, status); err != nil {
				return nil, huma.Error500InternalServerError("failed to seed default statuses")
			}
		}

		resp := &CreateProjectOutput{Status: http.StatusCreated}
		resp.Body.Project = project
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-project",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}",
		Summary:     "Get a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*ProjectOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		project, err := store.Projects().GetByID(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to load project")
		}

		resp := &ProjectOutput{}
		resp.Body.Project = project
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-project",
		Method:      http.MethodPut,
		Path:        "/projects/{projectID}",
		Summary:     "Update a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *UpdateProjectInput) (*ProjectOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		project, err := store.Projects().GetByID(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to load project")
		}

		if input.Body.Name != nil {
			if *input.Body.Name == "" {
				return nil, huma.Error422UnprocessableEntity("project name cannot be empty")
			}
			project.Name = *input.Body.Name
		}
		if input.Body.Description != nil {
			project.Description = *input.Body.Description
		}
		if input.Body.Color != nil {
			project.Color = *input.Body.Color
		}

		if err := store.Projects().Update(ctx, project); err != nil {
			return nil, huma.Error500InternalServerError("failed to update project")
		}

		resp := &ProjectOutput{}
		resp.Body.Project = project
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "archive-project",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/archive",
		Summary:     "Archive a project",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*ProjectOutput, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		project, err := store.Projects().GetByID(ctx, input.ProjectID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			return nil, huma.Error500InternalServerError("failed to load project")
		}

		project.Archived = true
		if err := store.Projects().Update(ctx, project); err != nil {
			return nil, huma.Error500InternalServerError("failed to archive project")
		}

		resp := &ProjectOutput{}
		resp.Body.Project = project
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-project",
		Method:      http.MethodDelete,
		Path:        "/projects/{projectID}",
		Summary:     "Delete a project and all of its data",
		Tags:        []string{"Projects"},
	}, func(ctx context.Context, input *GetProjectInput) (*struct{}, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		if err := store.Projects().Delete(ctx, input.ProjectID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("project not found")
			}
			log.Error().Err(err).Str("project_id", input.ProjectID.String()).Msg("project deletion failed")
			return nil, huma.Error500InternalServerError("failed to delete project")
		}

		return nil, nil
	})
}
