package handler

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/company-sys/backend/internal/middleware"
	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func principalOf(role model.Role) *policy.Principal {
	return &policy.Principal{UserID: uuid.New(), Username: string(role), Role: role}
}

// serve mounts h at route behind a stub that installs p, then performs one request.
func serve(method, route, target string, body io.Reader, contentType string, p *policy.Principal, h gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Handle(method, route, func(c *gin.Context) {
		if p != nil {
			middleware.WithPrincipal(c, p)
		}
		h(c)
	})

	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func jsonBody(t *testing.T, v interface{}) io.Reader {
	b, err := sonic.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type MockProjectService struct{ mock.Mock }

func (m *MockProjectService) Create(ctx context.Context, p *policy.Principal, in service.CreateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in service.UpdateProjectInput) (*model.Project, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockProjectService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Project, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Project), args.Error(1)
}

func (m *MockProjectService) List(ctx context.Context, p *policy.Principal, f repo.ProjectFilter) ([]model.Project, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Project), args.Error(1)
}

type MockTaskService struct{ mock.Mock }

func (m *MockTaskService) Create(ctx context.Context, p *policy.Principal, in service.CreateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in service.UpdateTaskInput) (*model.Task, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockTaskService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, p *policy.Principal, f repo.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

type MockAssetService struct{ mock.Mock }

func (m *MockAssetService) Create(ctx context.Context, p *policy.Principal, in service.CreateAssetInput) (*model.AssetLink, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetLink), args.Error(1)
}

func (m *MockAssetService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in service.UpdateAssetInput) (*model.AssetLink, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetLink), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockAssetService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.AssetLink, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetLink), args.Error(1)
}

func (m *MockAssetService) List(ctx context.Context, p *policy.Principal, f repo.AssetFilter) ([]model.AssetLink, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.AssetLink), args.Error(1)
}

func (m *MockAssetService) DownloadURL(ctx context.Context, a *model.AssetLink) string {
	return m.Called(ctx, a).String(0)
}

type MockCommentService struct{ mock.Mock }

func (m *MockCommentService) Create(ctx context.Context, p *policy.Principal, taskID uuid.UUID, body string) (*model.TaskComment, error) {
	args := m.Called(ctx, p, taskID, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskComment), args.Error(1)
}

func (m *MockCommentService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockCommentService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.TaskComment, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskComment), args.Error(1)
}

func (m *MockCommentService) List(ctx context.Context, p *policy.Principal, f repo.CommentFilter) ([]model.TaskComment, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskComment), args.Error(1)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) List(ctx context.Context, p *policy.Principal, f repo.NotificationFilter) ([]model.Notification, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Notification), args.Error(1)
}

func (m *MockNotificationService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Notification, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Notification), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, p *policy.Principal) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

type MockActivityService struct{ mock.Mock }

func (m *MockActivityService) List(ctx context.Context, p *policy.Principal, f repo.ActivityLogFilter) ([]model.ActivityLog, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ActivityLog), args.Error(1)
}

type MockUserService struct{ mock.Mock }

func (m *MockUserService) Create(ctx context.Context, p *policy.Principal, in service.CreateUserInput) (*model.User, error) {
	args := m.Called(ctx, p, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in service.UpdateUserInput) (*model.User, error) {
	args := m.Called(ctx, p, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	return m.Called(ctx, p, id).Error(0)
}

func (m *MockUserService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, p, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, p *policy.Principal, f repo.UserFilter) ([]model.User, error) {
	args := m.Called(ctx, p, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

