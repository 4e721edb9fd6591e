package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/taskboard/internal/domain"
)

type WebhookRepo struct {
	pool *pgxpool.Pool
}

func NewWebhookRepo(pool *pgxpool.Pool) *WebhookRepo {
	return &WebhookRepo{pool: pool}
}

func (r *WebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO webhooks (id, project_id, url, events, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.ProjectID, w.URL, w.Events, w.Active, w.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.Create: %w", err)
	}

	return nil
}

func (r *WebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error) {
	var w domain.Webhook

	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, url, events, active, created_at
		 FROM webhooks WHERE id = $1`,
		id,
	).Scan(&w.ID, &w.ProjectID, &w.URL, &w.Events, &w.Active, &w.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("webhookRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("webhookRepo.GetByID: %w", err)
	}

	return &w, nil
}

func (r *WebhookRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Webhook, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, url, events, active, created_at
		 FROM webhooks WHERE project_id = $1
		 ORDER BY created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("webhookRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var webhooks []*domain.Webhook
	for rows.Next() {
		var w domain.Webhook
		if err := rows.Scan(&w.ID, &w.ProjectID, &w.URL, &w.Events, &w.Active, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("webhookRepo.ListByProject: scan: %w", err)
		}
		webhooks = append(webhooks, &w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("webhookRepo.ListByProject: rows: %w", err)
	}

	return webhooks, nil
}

func (r *WebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM webhooks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("webhookRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("webhookRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
