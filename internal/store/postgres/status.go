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

type StatusRepo struct {
	pool *pgxpool.Pool
}

func NewStatusRepo(pool *pgxpool.Pool) *StatusRepo {
	return &StatusRepo{pool: pool}
}

func (r *StatusRepo) Create(ctx context.Context, s *domain.Status) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO statuses (id, project_id, name, position)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.ProjectID, s.Name, s.Position,
	)
	if err != nil {
		return fmt.Errorf("statusRepo.Create: %w", err)
	}

	return nil
}

func (r *StatusRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	var s domain.Status

	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, name, position FROM statuses WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.ProjectID, &s.Name, &s.Position)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("statusRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("statusRepo.GetByID: %w", err)
	}

	return &s, nil
}

func (r *StatusRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Status, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, project_id, name, position
		 FROM statuses WHERE project_id = $1
		 ORDER BY position`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("statusRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var statuses []*domain.Status
	for rows.Next() {
		var s domain.Status
		if err := rows.Scan(&s.ID, &s.ProjectID, &s.Name, &s.Position); err != nil {
			return nil, fmt.Errorf("statusRepo.ListByProject: scan: %w", err)
		}
		statuses = append(statuses, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statusRepo.ListByProject: rows: %w", err)
	}

	return statuses, nil
}

func (r *StatusRepo) Update(ctx context.Context, s *domain.Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE statuses SET name = $1, position = $2 WHERE id = $3`,
		s.Name, s.Position, s.ID,
	)
	if err != nil {
		return fmt.Errorf("statusRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("statusRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *StatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM statuses WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("statusRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("statusRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
