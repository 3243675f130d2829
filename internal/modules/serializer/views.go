package serializer

import (
	"time"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

func formatDate(d datatypes.Date) string { return time.Time(d).Format(dateLayout) }

func formatDatePtr(d *datatypes.Date) *string {
	if d == nil {
		return nil
	}
	s := formatDate(*d)
	return &s
}

type UserSummary struct {
	ID       uuid.UUID  `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

func NewUserSummary(u *model.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}

type UserView struct {
	ID        uuid.UUID  `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewUserView(u *model.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email, Role: u.Role, CreatedAt: u.CreatedAt}
}

func NewUserViews(users []model.User) []UserView {
	out := make([]UserView, 0, len(users))
	for i := range users {
		out = append(out, NewUserView(&users[i]))
	}
	return out
}

type CommentView struct {
	ID        uuid.UUID    `json:"id"`
	TaskID    uuid.UUID    `json:"task"`
	UserID    uuid.UUID    `json:"user"`
	Author    *UserSummary `json:"author,omitempty"`
	Body      string       `json:"body"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewCommentView(c *model.TaskComment) CommentView {
	return CommentView{
		ID:        c.ID,
		TaskID:    c.TaskID,
		UserID:    c.UserID,
		Author:    NewUserSummary(c.User),
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
}

func NewCommentViews(items []model.TaskComment) []CommentView {
	out := make([]CommentView, 0, len(items))
	for i := range items {
		out = append(out, NewCommentView(&items[i]))
	}
	return out
}

// TaskView embeds the task's comments (oldest first) and an assignee summary.
type TaskView struct {
	ID           uuid.UUID        `json:"id"`
	ProjectID    uuid.UUID        `json:"project"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	AssignedToID *uuid.UUID       `json:"assigned_to"`
	Assignee     *UserSummary     `json:"assigned_to_details"`
	Status       model.TaskStatus `json:"status"`
	Sprint       string           `json:"sprint"`
	DueDate      *string          `json:"due_date"`
	GithubPRURL  string           `json:"github_pr_link"`
	Comments     []CommentView    `json:"comments"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func NewTaskView(t *model.Task) TaskView {
	return TaskView{
		ID:           t.ID,
		ProjectID:    t.ProjectID,
		Title:        t.Title,
		Description:  t.Description,
		AssignedToID: t.AssignedToID,
		Assignee:     NewUserSummary(t.AssignedTo),
		Status:       t.Status,
		Sprint:       t.Sprint,
		DueDate:      formatDatePtr(t.DueDate),
		GithubPRURL:  deref(t.GithubPRURL),
		Comments:     NewCommentViews(t.Comments),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func NewTaskViews(items []model.Task) []TaskView {
	out := make([]TaskView, 0, len(items))
	for i := range items {
		out = append(out, NewTaskView(&items[i]))
	}
	return out
}

type AssetView struct {
	ID          uuid.UUID       `json:"id"`
	ProjectID   uuid.UUID       `json:"project"`
	AssetType   model.AssetType `json:"asset_type"`
	URL         string          `json:"url"`
	Description string          `json:"description"`
	Uploaded    bool            `json:"uploaded"`
	MIME        string          `json:"mime,omitempty"`
	SizeB       int64           `json:"size_b,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// URLFunc resolves the link a client should follow for an asset.
type URLFunc func(*model.AssetLink) string

func NewAssetView(a *model.AssetLink, url URLFunc) AssetView {
	v := AssetView{
		ID:          a.ID,
		ProjectID:   a.ProjectID,
		AssetType:   a.AssetType,
		URL:         a.URL,
		Description: a.Description,
		Uploaded:    a.HasUpload(),
		MIME:        a.MIME,
		SizeB:       a.SizeB,
		CreatedAt:   a.CreatedAt,
	}
	if url != nil {
		v.URL = url(a)
	}
	return v
}

func NewAssetViews(items []model.AssetLink, url URLFunc) []AssetView {
	out := make([]AssetView, 0, len(items))
	for i := range items {
		out = append(out, NewAssetView(&items[i], url))
	}
	return out
}

// ProjectView embeds the tasks visible to the caller and all assets.
type ProjectView struct {
	ID          uuid.UUID    `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     *string      `json:"end_date"`
	PMID        *uuid.UUID   `json:"pm"`
	PM          *UserSummary `json:"pm_details"`
	Tasks       []TaskView   `json:"tasks"`
	Assets      []AssetView  `json:"assets"`
	CreatedAt   time.Time    `json:"created_at"`
}

func NewProjectView(p *model.Project, url URLFunc) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   formatDate(p.StartDate),
		EndDate:     formatDatePtr(p.EndDate),
		PMID:        p.PMID,
		PM:          NewUserSummary(p.PM),
		Tasks:       NewTaskViews(p.Tasks),
		Assets:      NewAssetViews(p.Assets, url),
		CreatedAt:   p.CreatedAt,
	}
}

func NewProjectViews(items []model.Project, url URLFunc) []ProjectView {
	out := make([]ProjectView, 0, len(items))
	for i := range items {
		out = append(out, NewProjectView(&items[i], url))
	}
	return out
}

type NotificationView struct {
	ID        uuid.UUID `json:"id"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NewNotificationView(n *model.Notification) NotificationView {
	return NotificationView{ID: n.ID, Message: n.Message, IsRead: n.IsRead, CreatedAt: n.CreatedAt}
}

func NewNotificationViews(items []model.Notification) []NotificationView {
	out := make([]NotificationView, 0, len(items))
	for i := range items {
		out = append(out, NewNotificationView(&items[i]))
	}
	return out
}

type ActivityView struct {
	ID         uuid.UUID              `json:"id"`
	UserID     uuid.UUID              `json:"user"`
	Username   string                 `json:"user_name"`
	Action     string                 `json:"action"`
	TargetType string                 `json:"target_type"`
	TargetID   uuid.UUID              `json:"target_id"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

func NewActivityViews(items []model.ActivityLog) []ActivityView {
	out := make([]ActivityView, 0, len(items))
	for _, l := range items {
		out = append(out, ActivityView{
			ID:         l.ID,
			UserID:     l.UserID,
			Username:   l.Username,
			Action:     l.Action,
			TargetType: l.TargetType,
			TargetID:   l.TargetID,
			Details:    l.Details,
			Timestamp:  l.CreatedAt,
		})
	}
	return out
}
