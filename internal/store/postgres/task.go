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

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, project_id, status_id, assignee_id, title, description, due_date, position, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		t.ID, t.ProjectID, t.StatusID, t.AssigneeID, t.Title, t.Description,
		t.DueDate, t.Position, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var t domain.Task

	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, status_id, assignee_id, title, description, due_date, position, created_at, updated_at
		 FROM tasks WHERE id = $1`,
		id,
	).Scan(
		&t.ID, &t.ProjectID, &t.StatusID, &t.AssigneeID, &t.Title, &t.Description,
		&t.DueDate, &t.Position, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return &t, nil
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	query := `SELECT id, project_id, status_id, assignee_id, title, description, due_date, position, created_at, updated_at
	          FROM tasks WHERE project_id = $1`
	args := []any{projectID}

	if filter.StatusID != uuid.Nil {
		args = append(args, filter.StatusID)
		query += fmt.Sprintf(" AND status_id = $%d", len(args))
	}
	if filter.AssigneeID != uuid.Nil {
		args = append(args, filter.AssigneeID)
		query += fmt.Sprintf(" AND assignee_id = $%d", len(args))
	}
	query += " ORDER BY position, created_at LIMIT 1000"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByProject")
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.TaskWithContext, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT t.id, t.project_id, t.status_id, t.assignee_id, t.title, t.description,
		        t.due_date, t.position, t.created_at, t.updated_at, p.name, s.name
		 FROM tasks t
		 JOIN projects p ON p.id = t.project_id
		 JOIN statuses s ON s.id = t.status_id
		 WHERE t.assignee_id = $1
		 ORDER BY t.created_at DESC
		 LIMIT 1000`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByAssignee: %w", err)
	}
	defer rows.Close()

	var tasks []*domain.TaskWithContext
	for rows.Next() {
		var t domain.TaskWithContext
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.StatusID, &t.AssigneeID, &t.Title, &t.Description,
			&t.DueDate, &t.Position, &t.CreatedAt, &t.UpdatedAt, &t.ProjectName, &t.StatusName,
		); err != nil {
			return nil, fmt.Errorf("taskRepo.ListByAssignee: scan: %w", err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("taskRepo.ListByAssignee: rows: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET status_id = $1, assignee_id = $2, title = $3, description = $4,
		        due_date = $5, position = $6, updated_at = now()
		 WHERE id = $7`,
		t.StatusID, t.AssigneeID, t.Title, t.Description, t.DueDate, t.Position, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM tasks WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanTasks(rows pgx.Rows, caller string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		var t domain.Task
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.StatusID, &t.AssigneeID, &t.Title, &t.Description,
			&t.DueDate, &t.Position, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", caller, err)
		}
		tasks = append(tasks, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", caller, err)
	}

	return tasks, nil
}
