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

type MemberRepo struct {
	pool *pgxpool.Pool
}

func NewMemberRepo(pool *pgxpool.Pool) *MemberRepo {
	return &MemberRepo{pool: pool}
}

func (r *MemberRepo) Create(ctx context.Context, m *domain.Member) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO project_members (id, project_id, user_id, role, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.ProjectID, m.UserID, m.Role, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("memberRepo.Create: %w", err)
	}

	return nil
}

func (r *MemberRepo) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Member, error) {
	var m domain.Member

	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, user_id, role, created_at
		 FROM project_members WHERE user_id = $1 AND project_id = $2`,
		userID, projectID,
	).Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("memberRepo.GetByUserAndProject: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("memberRepo.GetByUserAndProject: %w", err)
	}

	return &m, nil
}

func (r *MemberRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.MemberWithUser, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT m.id, m.project_id, m.user_id, m.role, m.created_at, u.name, u.email
		 FROM project_members m
		 JOIN users u ON u.id = m.user_id
		 WHERE m.project_id = $1
		 ORDER BY m.created_at`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("memberRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	var members []*domain.MemberWithUser
	for rows.Next() {
		var m domain.MemberWithUser
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.UserID, &m.Role, &m.CreatedAt, &m.UserName, &m.UserEmail); err != nil {
			return nil, fmt.Errorf("memberRepo.ListByProject: scan: %w", err)
		}
		members = append(members, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("memberRepo.ListByProject: rows: %w", err)
	}

	return members, nil
}

func (r *MemberRepo) DeleteByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM project_members WHERE user_id = $1 AND project_id = $2`,
		userID, projectID,
	)
	if err != nil {
		return fmt.Errorf("memberRepo.DeleteByUserAndProject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("memberRepo.DeleteByUserAndProject: %w", domain.ErrNotFound)
	}

	return nil
}
