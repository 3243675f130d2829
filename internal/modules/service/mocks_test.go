package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/company-sys/backend/internal/infra/blob"
	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"
)

func principal(role model.Role) *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Username: "u-" + string(role), Role: role}
}

// MockProjectRepo keeps the row returned by Get("stored") so Update and
// Delete can run the callbacks they receive.
type MockProjectRepo struct {
	mock.Mock
}

func (m *MockProjectRepo) Create(ctx context.Context, p *model.Project, audit repo.AuditFunc[model.Project]) error {
	args := m.Called(ctx, p)
	if args.Error(0) == nil {
		p.ID = uuid.New()
		m.logged(audit(nil, p))
	}
	return args.Error(0)
}

func (m *MockProjectRepo) Update(ctx context.Context, id uuid.UUID, apply func(*model.Project) error, audit repo.AuditFunc[model.Project]) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	before := *args.Get(0).(*model.Project)
	after := before
	if err := apply(&after); err != nil {
		return nil, err
	}
	m.logged(audit(&before, &after))
	return &after, args.Error(1)
}

func (m *MockProjectRepo) Delete(ctx context.Context, id uuid.UUID, audit repo.AuditFunc[model.Project]) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	p := args.Get(0).(*model.Project)
	m.logged(audit(p, nil))
	return p, args.Error(1)
}

func (m *MockProjectRepo) Get(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (*model.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectRepo) List(ctx context.Context, f repo.ProjectFilter, scopes ...repo.Scope) ([]model.Project, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

func (m *MockProjectRepo) logged(entry model.ActivityLog) {
	m.MethodCalled("Log", entry.Action)
}

// MockTaskRepo keeps the row Update produced in applied.
type MockTaskRepo struct {
	mock.Mock
	applied *model.Task
}

func (m *MockTaskRepo) Create(ctx context.Context, t *model.Task, audit repo.AuditFunc[model.Task]) error {
	args := m.Called(ctx, t)
	if args.Error(0) == nil {
		t.ID = uuid.New()
		t.Project = &model.Project{ID: t.ProjectID, Name: "Alpha"}
		m.MethodCalled("Log", audit(nil, t).Action)
	}
	return args.Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, id uuid.UUID, apply func(*model.Task) error, audit repo.AuditFunc[model.Task]) (*model.Task, *model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(1)
	}
	before := *args.Get(0).(*model.Task)
	after := before
	if err := apply(&after); err != nil {
		return nil, nil, err
	}
	m.applied = &after
	m.MethodCalled("Log", audit(&before, &after).Action)
	return &before, &after, args.Error(1)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uuid.UUID, audit repo.AuditFunc[model.Task]) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepo) Get(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepo) List(ctx context.Context, f repo.TaskFilter, scopes ...repo.Scope) ([]model.Task, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepo) ListDueBetween(ctx context.Context, from, to datatypes.Date) ([]model.Task, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Update(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepo) List(ctx context.Context, f repo.UserFilter) ([]model.User, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, c *model.TaskComment, audit repo.AuditFunc[model.TaskComment]) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.Task = &model.Task{ID: c.TaskID, Title: "Ship it"}
		m.MethodCalled("Log", audit(nil, c).Action)
	}
	return args.Error(0)
}

func (m *MockCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCommentRepo) Get(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (*model.TaskComment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskComment), args.Error(1)
}

func (m *MockCommentRepo) List(ctx context.Context, f repo.CommentFilter, scopes ...repo.Scope) ([]model.TaskComment, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}

type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, a *model.AssetLink) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssetRepo) Update(ctx context.Context, a *model.AssetLink) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAssetRepo) Delete(ctx context.Context, id uuid.UUID) (*model.AssetLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetLink), args.Error(1)
}

func (m *MockAssetRepo) Get(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (*model.AssetLink, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetLink), args.Error(1)
}

func (m *MockAssetRepo) List(ctx context.Context, f repo.AssetFilter, scopes ...repo.Scope) ([]model.AssetLink, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssetLink), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationRepo) Get(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (*model.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) List(ctx context.Context, f repo.NotificationFilter, scopes ...repo.Scope) ([]model.Notification, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkRead(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockNotificationRepo) MarkAllRead(ctx context.Context, scopes ...repo.Scope) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id uuid.UUID, scopes ...repo.Scope) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueNotification(ctx context.Context, userID uuid.UUID, message string) error {
	return m.Called(ctx, userID, message).Error(0)
}

func (m *MockEnqueuer) EnqueueReminder(ctx context.Context, userID uuid.UUID, taskTitle string, due time.Time) error {
	return m.Called(ctx, userID, taskTitle, due).Error(0)
}

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) UploadFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) DeleteObject(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}
