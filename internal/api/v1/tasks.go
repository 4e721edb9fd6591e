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

type ListTasksInput struct {
	ProjectID  uuid.UUID `path:"projectID"`
	StatusID   uuid.UUID `query:"status_id" required:"false" doc:"Filter by status"`
	AssigneeID uuid.UUID `query:"assignee_id" required:"false" doc:"Filter by assignee"`
}

type ListTasksOutput struct {
	Body struct {
		Tasks []*domain.Task `json:"tasks"`
	}
}

type MyTasksOutput struct {
	Body struct {
		Tasks []*domain.TaskWithContext `json:"tasks"`
	}
}

type GetTaskInput struct {
	TaskID uuid.UUID `path:"taskID"`
}

type TaskOutput struct {
	Body struct {
		Task *domain.Task `json:"task"`
	}
}

type CreateTaskInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	Body      struct {
		StatusID    uuid.UUID  `json:"status_id" doc:"Status column for the task"`
		Title       string     `json:"title" minLength:"1" maxLength:"500"`
		Description string     `json:"description,omitempty" maxLength:"10000"`
		AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
		DueDate     *time.Time `json:"due_date,omitempty"`
		Position    int        `json:"position,omitempty" minimum:"0"`
	}
}

type CreateTaskOutput struct {
	Status int
	Body   struct {
		Task *domain.Task `json:"task"`
	}
}

type UpdateTaskInput struct {
	TaskID uuid.UUID `path:"taskID"`
	Body   struct {
		Title       *string    `json:"title,omitempty" maxLength:"500"`
		Description *string    `json:"description,omitempty" maxLength:"10000"`
		DueDate     *time.Time `json:"due_date,omitempty"`
		Position    *int       `json:"position,omitempty" minimum:"0"`
	}
}

type MoveTaskInput struct {
	TaskID uuid.UUID `path:"taskID"`
	Body   struct {
		StatusID uuid.UUID `json:"status_id" doc:"Target status column"`
		Position *int      `json:"position,omitempty" minimum:"0"`
	}
}

type AssignTaskInput struct {
	TaskID uuid.UUID `path:"taskID"`
	Body   struct {
		AssigneeID *uuid.UUID `json:"assignee_id" nullable:"true" doc:"User to assign, or null to unassign"`
	}
}

type taskDeletedPayload struct {
	TaskID uuid.UUID `json:"task_id"`
}

// loadTask fetches a task and gates on project membership.
func loadTask(ctx context.Context, store DataStore, taskID uuid.UUID) (*domain.Task, error) {
	task, err := store.Tasks().GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error404NotFound("task not found")
		}
		return nil, huma.Error500InternalServerError("failed to load task")
	}

	if _, err := requireMember(ctx, store, task.ProjectID); err != nil {
		return nil, err
	}

	return task, nil
}

// validateStatus checks that the status exists and belongs to the project.
func validateStatus(ctx context.Context, store DataStore, statusID, projectID uuid.UUID) error {
	status, err := store.Statuses().GetByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return huma.Error422UnprocessableEntity("status does not exist")
		}
		return huma.Error500InternalServerError("failed to load status")
	}
	if status.ProjectID != projectID {
		return huma.Error422UnprocessableEntity("status belongs to a different project")
	}
	return nil
}

// RegisterTaskRoutes registers task endpoints. Every mutation fans out
// its event after the write commits; fan-out failures never fail the
// request.
func RegisterTaskRoutes(api huma.API, store DataStore, events EventFanout, sink NotificationSink) {
	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/tasks",
		Summary:     "List a project's tasks",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		tasks, err := store.Tasks().ListByProject(ctx, input.ProjectID, domain.TaskFilter{
			StatusID:   input.StatusID,
			AssigneeID: input.AssigneeID,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks")
		}

		resp := &ListTasksOutput{}
		resp.Body.Tasks = tasks
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-my-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks/mine",
		Summary:     "List tasks assigned to the authenticated user across projects",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *struct{}) (*MyTasksOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		tasks, err := store.Tasks().ListByAssignee(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks")
		}

		resp := &MyTasksOutput{}
		resp.Body.Tasks = tasks
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{taskID}",
		Summary:     "Get a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*TaskOutput, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		resp := &TaskOutput{}
		resp.Body.Task = task
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/tasks",
		Summary:     "Create a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		if _, err := requireMember(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		if err := validateStatus(ctx, store, input.Body.StatusID, input.ProjectID); err != nil {
			return nil, err
		}

		if input.Body.AssigneeID != nil {
			if _, err := store.Members().GetByUserAndProject(ctx, *input.Body.AssigneeID, input.ProjectID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error422UnprocessableEntity("assignee is not a member of this project")
				}
				return nil, huma.Error500InternalServerError("failed to check assignee membership")
			}
		}

		now := time.Now()
		task := &domain.Task{
			ID:          uuid.New(),
			ProjectID:   input.ProjectID,
			StatusID:    input.Body.StatusID,
			AssigneeID:  input.Body.AssigneeID,
			Title:       input.Body.Title,
			Description: input.Body.Description,
			DueDate:     input.Body.DueDate,
			Position:    input.Body.Position,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := store.Tasks().Create(ctx, task); err != nil {
			return nil, huma.Error500InternalServerError("failed to create task")
		}

		events.Event(ctx, task.ProjectID, domain.EventTaskCreated, task)

		resp := &CreateTaskOutput{Status: http.StatusCreated}
		resp.Body.Task = task
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-task",
		Method:      http.MethodPut,
		Path:        "/tasks/{taskID}",
		Summary:     "Update a task's fields",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *UpdateTaskInput) (*TaskOutput, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		if input.Body.Title != nil {
			if *input.Body.Title == "" {
				return nil, huma.Error422UnprocessableEntity("task title cannot be empty")
			}
			task.Title = *input.Body.Title
		}
		if input.Body.Description != nil {
			task.Description = *input.Body.Description
		}
		if input.Body.DueDate != nil {
			task.DueDate = input.Body.DueDate
		}
		if input.Body.Position != nil {
			task.Position = *input.Body.Position
		}
		task.UpdatedAt = time.Now()

		if err := store.Tasks().Update(ctx, task); err != nil {
			return nil, huma.Error500InternalServerError("failed to update task")
		}

		events.Event(ctx, task.ProjectID, domain.EventTaskUpdated, task)

		resp := &TaskOutput{}
		resp.Body.Task = task
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "move-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{taskID}/move",
		Summary:     "Move a task to another status column",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *MoveTaskInput) (*TaskOutput, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		if err := validateStatus(ctx, store, input.Body.StatusID, task.ProjectID); err != nil {
			return nil, err
		}

		task.StatusID = input.Body.StatusID
		if input.Body.Position != nil {
			task.Position = *input.Body.Position
		}
		task.UpdatedAt = time.Now()

		if err := store.Tasks().Update(ctx, task); err != nil {
			return nil, huma.Error500InternalServerError("failed to move task")
		}

		events.Event(ctx, task.ProjectID, domain.EventTaskMoved, task)

		resp := &TaskOutput{}
		resp.Body.Task = task
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{taskID}/assign",
		Summary:     "Assign or unassign a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *AssignTaskInput) (*TaskOutput, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		if input.Body.AssigneeID != nil {
			if _, err := store.Members().GetByUserAndProject(ctx, *input.Body.AssigneeID, task.ProjectID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error422UnprocessableEntity("assignee is not a member of this project")
				}
				return nil, huma.Error500InternalServerError("failed to check assignee membership")
			}
		}

		task.AssigneeID = input.Body.AssigneeID
		task.UpdatedAt = time.Now()

		if err := store.Tasks().Update(ctx, task); err != nil {
			return nil, huma.Error500InternalServerError("failed to assign task")
		}

		// Notify the new assignee unless they assigned it to themselves.
		actorID, _ := middleware.UserIDFromContext(ctx)
		if task.AssigneeID != nil && *task.AssigneeID != actorID {
			if _, err := sink.Create(ctx, *task.AssigneeID, domain.NotificationTaskAssigned,
				"You were assigned to task "+task.Title,
				map[string]string{"taskId": task.ID.String(), "projectId": task.ProjectID.String()}); err != nil {
				log.Warn().Err(err).Msg("assignment notification failed")
			}
		}

		events.Event(ctx, task.ProjectID, domain.EventTaskAssigned, task)

		resp := &TaskOutput{}
		resp.Body.Task = task
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{taskID}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*struct{}, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		if err := store.Tasks().Delete(ctx, task.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete task")
		}

		events.Event(ctx, task.ProjectID, domain.EventTaskDeleted, taskDeletedPayload{TaskID: task.ID})

		return nil, nil
	})
}
