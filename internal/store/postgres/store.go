package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/taskboard/internal/domain"
)

type Store struct {
	pool          *pgxpool.Pool
	users         *UserRepo
	projects      *ProjectRepo
	members       *MemberRepo
	statuses      *StatusRepo
	tasks         *TaskRepo
	comments      *CommentRepo
	notifications *NotificationRepo
	webhooks      *WebhookRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:          pool,
		users:         NewUserRepo(pool),
		projects:      NewProjectRepo(pool),
		members:       NewMemberRepo(pool),
		statuses:      NewStatusRepo(pool),
		tasks:         NewTaskRepo(pool),
		comments:      NewCommentRepo(pool),
		notifications: NewNotificationRepo(pool),
		webhooks:      NewWebhookRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository                 { return s.users }
func (s *Store) Projects() domain.ProjectRepository           { return s.projects }
func (s *Store) Members() domain.MemberRepository             { return s.members }
func (s *Store) Statuses() domain.StatusRepository            { return s.statuses }
func (s *Store) Tasks() domain.TaskRepository                 { return s.tasks }
func (s *Store) Comments() domain.CommentRepository           { return s.comments }
func (s *Store) Notifications() domain.NotificationRepository { return s.notifications }
func (s *Store) Webhooks() domain.WebhookRepository           { return s.webhooks }
