package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

type ListNotificationsOutput struct {
	Body struct {
		Notifications []*domain.Notification `json:"notifications"`
	}
}

type MarkNotificationReadInput struct {
	NotificationID uuid.UUID `path:"notificationID"`
}

// RegisterNotificationRoutes registers the per-user inbox endpoints.
func RegisterNotificationRoutes(api huma.API, sink NotificationSink) {
	huma.Register(api, huma.Operation{
		OperationID: "list-notifications",
		Method:      http.MethodGet,
		Path:        "/notifications",
		Summary:     "List the authenticated user's notifications",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *struct{}) (*ListNotificationsOutput, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		notifications, err := sink.List(ctx, userID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list notifications")
		}

		resp := &ListNotificationsOutput{}
		resp.Body.Notifications = notifications
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "mark-notification-read",
		Method:      http.MethodPatch,
		Path:        "/notifications/{notificationID}/read",
		Summary:     "Mark a notification as read",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *MarkNotificationReadInput) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := sink.MarkRead(ctx, input.NotificationID, userID); err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				return nil, huma.Error404NotFound("notification not found")
			case errors.Is(err, domain.ErrForbidden):
				return nil, huma.Error403Forbidden("notification belongs to another user")
			default:
				return nil, huma.Error500InternalServerError("failed to mark notification read")
			}
		}

		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "mark-all-notifications-read",
		Method:      http.MethodPatch,
		Path:        "/notifications/read-all",
		Summary:     "Mark all of the user's notifications as read",
		Tags:        []string{"Notifications"},
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		userID, ok := middleware.UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing user context")
		}

		if err := sink.MarkAllRead(ctx, userID); err != nil {
			return nil, huma.Error500InternalServerError("failed to mark notifications read")
		}

		return nil, nil
	})
}
