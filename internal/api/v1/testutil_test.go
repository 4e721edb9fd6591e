package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/taskboard/internal/auth"
	"github.com/gosuda/taskboard/internal/domain"
	"github.com/gosuda/taskboard/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers: inject the authenticated user for DoCtx
// ---------------------------------------------------------------------------

func userCtx(userID uuid.UUID) context.Context {
	return context.WithValue(context.Background(), middleware.ContextKeyUserID, userID)
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users         domain.UserRepository
	projects      domain.ProjectRepository
	members       domain.MemberRepository
	statuses      domain.StatusRepository
	tasks         domain.TaskRepository
	comments      domain.CommentRepository
	notifications domain.NotificationRepository
	webhooks      domain.WebhookRepository
}

func (m *mockDataStore) Users() domain.UserRepository                 { return m.users }
func (m *mockDataStore) Projects() domain.ProjectRepository           { return m.projects }
func (m *mockDataStore) Members() domain.MemberRepository             { return m.members }
func (m *mockDataStore) Statuses() domain.StatusRepository            { return m.statuses }
func (m *mockDataStore) Tasks() domain.TaskRepository                 { return m.tasks }
func (m *mockDataStore) Comments() domain.CommentRepository           { return m.comments }
func (m *mockDataStore) Notifications() domain.NotificationRepository { return m.notifications }
func (m *mockDataStore) Webhooks() domain.WebhookRepository           { return m.webhooks }

// memberOf returns a MemberRepository whose oracle grants the given user
// the given role on the given project and denies everyone else.
func memberOf(userID, projectID uuid.UUID, role string) domain.MemberRepository {
	return &mockMemberRepo{
		getByUserAndProjectFunc: func(_ context.Context, uid, pid uuid.UUID) (*domain.Member, error) {
			if uid == userID && pid == projectID {
				return &domain.Member{
					ID:        uuid.New(),
					ProjectID: pid,
					UserID:    uid,
					Role:      role,
				}, nil
			}
			return nil, domain.ErrNotFound
		},
	}
}

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc         func(ctx context.Context, u *domain.User) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc     func(ctx context.Context, email string) (*domain.User, error)
	updateFunc         func(ctx context.Context, u *domain.User) error
	createIdentityFunc func(ctx context.Context, ident *domain.AuthIdentity) error
	getIdentityFunc    func(ctx context.Context, provider, providerID string) (*domain.AuthIdentity, error)
	touchIdentityFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) CreateIdentity(ctx context.Context, ident *domain.AuthIdentity) error {
	return m.createIdentityFunc(ctx, ident)
}

func (m *mockUserRepo) GetIdentity(ctx context.Context, provider, providerID string) (*domain.AuthIdentity, error) {
	return m.getIdentityFunc(ctx, provider, providerID)
}

func (m *mockUserRepo) TouchIdentity(ctx context.Context, id uuid.UUID) error {
	return m.touchIdentityFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock ProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepo struct {
	createFunc     func(ctx context.Context, p *domain.Project) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	updateFunc     func(ctx context.Context, p *domain.Project) error
	listByUserFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	deleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.createFunc(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProjectRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	return m.listByUserFunc(ctx, userID)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock MemberRepository
// ---------------------------------------------------------------------------

type mockMemberRepo struct {
	createFunc                 func(ctx context.Context, mem *domain.Member) error
	getByUserAndProjectFunc    func(ctx context.Context, userID, projectID uuid.UUID) (*domain.Member, error)
	listByProjectFunc          func(ctx context.Context, projectID uuid.UUID) ([]*domain.MemberWithUser, error)
	deleteByUserAndProjectFunc func(ctx context.Context, userID, projectID uuid.UUID) error
}

func (m *mockMemberRepo) Create(ctx context.Context, mem *domain.Member) error {
	return m.createFunc(ctx, mem)
}

func (m *mockMemberRepo) GetByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) (*domain.Member, error) {
	return m.getByUserAndProjectFunc(ctx, userID, projectID)
}

func (m *mockMemberRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.MemberWithUser, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockMemberRepo) DeleteByUserAndProject(ctx context.Context, userID, projectID uuid.UUID) error {
	return m.deleteByUserAndProjectFunc(ctx, userID, projectID)
}

// ---------------------------------------------------------------------------
// Mock StatusRepository
// ---------------------------------------------------------------------------

type mockStatusRepo struct {
	createFunc        func(ctx context.Context, s *domain.Status) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Status, error)
	listByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Status, error)
	updateFunc        func(ctx context.Context, s *domain.Status) error
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStatusRepo) Create(ctx context.Context, s *domain.Status) error {
	return m.createFunc(ctx, s)
}

func (m *mockStatusRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Status, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockStatusRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Status, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockStatusRepo) Update(ctx context.Context, s *domain.Status) error {
	return m.updateFunc(ctx, s)
}

func (m *mockStatusRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock TaskRepository
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	createFunc         func(ctx context.Context, t *domain.Task) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	listByProjectFunc  func(ctx context.Context, projectID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error)
	listByAssigneeFunc func(ctx context.Context, userID uuid.UUID) ([]*domain.TaskWithContext, error)
	updateFunc         func(ctx context.Context, t *domain.Task) error
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return m.createFunc(ctx, t)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID, filter domain.TaskFilter) ([]*domain.Task, error) {
	return m.listByProjectFunc(ctx, projectID, filter)
}

func (m *mockTaskRepo) ListByAssignee(ctx context.Context, userID uuid.UUID) ([]*domain.TaskWithContext, error) {
	return m.listByAssigneeFunc(ctx, userID)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return m.updateFunc(ctx, t)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock CommentRepository
// ---------------------------------------------------------------------------

type mockCommentRepo struct {
	createFunc     func(ctx context.Context, c *domain.Comment) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	listByTaskFunc func(ctx context.Context, taskID uuid.UUID) ([]*domain.CommentWithAuthor, error)
	updateFunc     func(ctx context.Context, c *domain.Comment) error
	deleteFunc     func(ctx context.Context, id uuid.UUID) error
}

func (m *mockCommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return m.createFunc(ctx, c)
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockCommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*domain.CommentWithAuthor, error) {
	return m.listByTaskFunc(ctx, taskID)
}

func (m *mockCommentRepo) Update(ctx context.Context, c *domain.Comment) error {
	return m.updateFunc(ctx, c)
}

func (m *mockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock WebhookRepository
// ---------------------------------------------------------------------------

type mockWebhookRepo struct {
	createFunc        func(ctx context.Context, w *domain.Webhook) error
	getByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Webhook, error)
	listByProjectFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Webhook, error)
	deleteFunc        func(ctx context.Context, id uuid.UUID) error
}

func (m *mockWebhookRepo) Create(ctx context.Context, w *domain.Webhook) error {
	return m.createFunc(ctx, w)
}

func (m *mockWebhookRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Webhook, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockWebhookRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Webhook, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockWebhookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc        func(ctx context.Context, provider string, cred auth.Credential) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, provider string, cred auth.Credential) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, provider, cred)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock EventFanout recording emitted events
// ---------------------------------------------------------------------------

type emittedEvent struct {
	projectID uuid.UUID
	event     domain.EventType
	payload   any
}

type mockFanout struct {
	events []emittedEvent
}

func (m *mockFanout) Event(_ context.Context, projectID uuid.UUID, event domain.EventType, payload any) {
	m.events = append(m.events, emittedEvent{projectID: projectID, event: event, payload: payload})
}

// ---------------------------------------------------------------------------
// Mock NotificationSink recording created notifications
// ---------------------------------------------------------------------------

type createdNotification struct {
	userID uuid.UUID
	ntype  string
}

type mockSink struct {
	created     []createdNotification
	listFunc    func(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error)
	markRead    func(ctx context.Context, id, requestingUserID uuid.UUID) error
	markAllRead func(ctx context.Context, userID uuid.UUID) error
}

func (m *mockSink) Create(_ context.Context, userID uuid.UUID, ntype, message string, contextData any) (*domain.Notification, error) {
	m.created = append(m.created, createdNotification{userID: userID, ntype: ntype})
	return &domain.Notification{ID: uuid.New(), UserID: userID, Type: ntype, Message: message}, nil
}

func (m *mockSink) List(ctx context.Context, userID uuid.UUID) ([]*domain.Notification, error) {
	return m.listFunc(ctx, userID)
}

func (m *mockSink) MarkRead(ctx context.Context, id, requestingUserID uuid.UUID) error {
	return m.markRead(ctx, id, requestingUserID)
}

func (m *mockSink) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return m.markAllRead(ctx, userID)
}
