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

type ListCommentsInput struct {
	TaskID uuid.UUID `path:"taskID"`
}

type ListCommentsOutput struct {
	Body struct {
		Comments []*domain.CommentWithAuthor `json:"comments"`
	}
}

type CreateCommentInput struct {
	TaskID uuid.UUID `path:"taskID"`
	Body   struct {
		Content string `json:"content" minLength:"1" maxLength:"10000"`
	}
}

type CommentOutput struct {
	Body struct {
		Comment *domain.Comment `json:"comment"`
	}
}

type CreateCommentOutput struct {
	Status int
	Body   struct {
		Comment *domain.Comment `json:"comment"`
	}
}

type UpdateCommentInput struct {
	CommentID uuid.UUID `path:"commentID"`
	Body      struct {
		Content string `json:"content" minLength:"1" maxLength:"10000"`
	}
}

type DeleteCommentInput struct {
	CommentID uuid.UUID `path:"commentID"`
}

// RegisterCommentRoutes registers task comment endpoints.
func RegisterCommentRoutes(api huma.API, store DataStore, events EventFanout, sink NotificationSink) {
	huma.Register(api, huma.Operation{
		OperationID: "list-comments",
		Method:      http.MethodGet,
		Path:        "/tasks/{taskID}/comments",
		Summary:     "List a task's comments",
		Tags:        []string{"Comments"},
	}, func(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
		if _, err := loadTask(ctx, store, input.TaskID); err != nil {
			return nil, err
		}

		comments, err := store.Comments().ListByTask(ctx, input.TaskID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list comments")
		}

		resp := &ListCommentsOutput{}
		resp.Body.Comments = comments
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-comment",
		Method:      http.MethodPost,
		Path:        "/tasks/{taskID}/comments",
		Summary:     "Comment on a task",
		Tags:        []string{"Comments"},
	}, func(ctx context.Context, input *CreateCommentInput) (*CreateCommentOutput, error) {
		task, err := loadTask(ctx, store, input.TaskID)
		if err != nil {
			return nil, err
		}

		authorID, _ := middleware.UserIDFromContext(ctx)

		now := time.Now()
		comment := &domain.Comment{
			ID:        uuid.New(),
			TaskID:    task.ID,
			AuthorID:  authorID,
			Content:   input.Body.Content,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.Comments().Create(ctx, comment); err != nil {
			return nil, huma.Error500InternalServerError("failed to create comment")
		}

		// Notify the task's assignee unless they wrote the comment.
		if task.AssigneeID != nil && *task.AssigneeID != authorID {
			if _, err := sink.Create(ctx, *task.AssigneeID, domain.NotificationCommentCreated,
				"New comment on task "+task.Title,
				map[string]string{"taskId": task.ID.String(), "commentId": comment.ID.String()}); err != nil {
				log.Warn().Err(err).Msg("comment notification failed")
			}
		}

		events.Event(ctx, task.ProjectID, domain.EventCommentCreated, comment)

		resp := &CreateCommentOutput{Status: http.StatusCreated}
		resp.Body.Comment = comment
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-comment",
		Method:      http.MethodPut,
		Path:        "/comments/{commentID}",
		Summary:     "Edit a comment",
		Tags:        []string{"Comments"},
	}, func(ctx context.Context, input *UpdateCommentInput) (*CommentOutput, error) {
		comment, err := loadOwnComment(ctx, store, input.CommentID)
		if err != nil {
			return nil, err
		}

		comment.Content = input.Body.Content
		comment.UpdatedAt = time.Now()

		if err := store.Comments().Update(ctx, comment); err != nil {
			return nil, huma.Error500InternalServerError("failed to update comment")
		}

		resp := &CommentOutput{}
		resp.Body.Comment = comment
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-comment",
		Method:      http.MethodDelete,
		Path:        "/comments/{commentID}",
		Summary:     "Delete a comment",
		Tags:        []string{"Comments"},
	}, func(ctx context.Context, input *DeleteCommentInput) (*struct{}, error) {
		comment, err := loadOwnComment(ctx, store, input.CommentID)
		if err != nil {
			return nil, err
		}

		if err := store.Comments().Delete(ctx, comment.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("comment not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete comment")
		}

		return nil, nil
	})
}

// loadOwnComment fetches a comment and verifies the caller authored it.
func loadOwnComment(ctx context.Context, store DataStore, commentID uuid.UUID) (*domain.Comment, error) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("missing user context")
	}

	comment, err := store.Comments().GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, huma.Error404NotFound("comment not found")
		}
		return nil, huma.Error500InternalServerError("failed to load comment")
	}

	if comment.AuthorID != userID {
		return nil, huma.Error403Forbidden("only the author can modify a comment")
	}

	return comment, nil
}
