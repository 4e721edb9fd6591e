package v1

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/domain"
)

type ListWebhooksInput struct {
	ProjectID uuid.UUID `path:"projectID"`
}

type ListWebhooksOutput struct {
	Body struct {
		Webhooks []*domain.Webhook `json:"webhooks"`
	}
}

type CreateWebhookInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	Body      struct {
		URL    string   `json:"url" maxLength:"2000" doc:"HTTP endpoint to deliver events to"`
		Events []string `json:"events" minItems:"1" doc:"Event types to subscribe to, or \"*\" for all"`
	}
}

type CreateWebhookOutput struct {
	Status int
	Body   struct {
		Webhook *domain.Webhook `json:"webhook"`
	}
}

type DeleteWebhookInput struct {
	ProjectID uuid.UUID `path:"projectID"`
	WebhookID uuid.UUID `path:"webhookID"`
}

// RegisterWebhookRoutes registers webhook subscription endpoints. All of
// them are owner-only.
func RegisterWebhookRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-webhooks",
		Method:      http.MethodGet,
		Path:        "/projects/{projectID}/webhooks",
		Summary:     "List a project's webhooks",
		Tags:        []string{"Webhooks"},
	}, func(ctx context.Context, input *ListWebhooksInput) (*ListWebhooksOutput, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		webhooks, err := store.Webhooks().ListByProject(ctx, input.ProjectID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list webhooks")
		}

		resp := &ListWebhooksOutput{}
		resp.Body.Webhooks = webhooks
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-webhook",
		Method:      http.MethodPost,
		Path:        "/projects/{projectID}/webhooks",
		Summary:     "Register a webhook",
		Tags:        []string{"Webhooks"},
	}, func(ctx context.Context, input *CreateWebhookInput) (*CreateWebhookOutput, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		parsed, err := url.Parse(input.Body.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			return nil, huma.Error422UnprocessableEntity("webhook URL must be a valid http or https URL")
		}

		webhook := &domain.Webhook{
			ID:        uuid.New(),
			ProjectID: input.ProjectID,
			URL:       input.Body.URL,
			Events:    input.Body.Events,
			Active:    true,
			CreatedAt: time.Now(),
		}
		if err := store.Webhooks().Create(ctx, webhook); err != nil {
			return nil, huma.Error500InternalServerError("failed to create webhook")
		}

		resp := &CreateWebhookOutput{Status: http.StatusCreated}
		resp.Body.Webhook = webhook
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-webhook",
		Method:      http.MethodDelete,
		Path:        "/projects/{projectID}/webhooks/{webhookID}",
		Summary:     "Delete a webhook",
		Tags:        []string{"Webhooks"},
	}, func(ctx context.Context, input *DeleteWebhookInput) (*struct{}, error) {
		if _, err := requireOwner(ctx, store, input.ProjectID); err != nil {
			return nil, err
		}

		webhook, err := store.Webhooks().GetByID(ctx, input.WebhookID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("webhook not found")
			}
			return nil, huma.Error500InternalServerError("failed to load webhook")
		}
		if webhook.ProjectID != input.ProjectID {
			return nil, huma.Error404NotFound("webhook not found")
		}

		if err := store.Webhooks().Delete(ctx, webhook.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("webhook not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete webhook")
		}

		return nil, nil
	})
}
