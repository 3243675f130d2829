package service

import (
	"context"
	"errors"
	"strings"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskService interface {
	Create(ctx context.Context, p *policy.Principal, in CreateTaskInput) (*model.Task, error)
	Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateTaskInput) (*model.Task, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, p *policy.Principal, f repo.TaskFilter) ([]model.Task, error)
}

type CreateTaskInput struct {
	ProjectID    uuid.UUID
	Title        string
	Description  string
	AssignedToID *uuid.UUID
	Status       model.TaskStatus
	Sprint       string
	DueDate      *datatypes.Date
	GithubPRURL  string
}

// UpdateTaskInput is a partial update. The project of a task is fixed at creation.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssignedToID  *uuid.UUID
	ClearAssignee bool
	Status        *model.TaskStatus
	Sprint        *string
	DueDate       *datatypes.Date
	ClearDueDate  bool
	GithubPRURL   *string
}

type taskService struct {
	r     repo.TaskRepo
	users repo.UserRepo
	jobs  Enqueuer
	log   *zap.Logger
}

func NewTaskService(r repo.TaskRepo, users repo.UserRepo, jobs Enqueuer, log *zap.Logger) TaskService {
	return &taskService{r: r, users: users, jobs: jobs, log: log}
}

func (s *taskService) Create(ctx context.Context, p *policy.Principal, in CreateTaskInput) (*model.Task, error) {
	if err := policy.Authorize(p, policy.ActionCreate, policy.KindTask); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, validationErr("title is required")
	}
	if in.ProjectID == uuid.Nil {
		return nil, validationErr("project is required")
	}
	status := in.Status
	if status == "" {
		status = model.TaskStatusTodo
	}
	if !status.Valid() {
		return nil, validationErr("unknown status %q", status)
	}
	if in.AssignedToID != nil {
		if err := requireRole(ctx, s.users, *in.AssignedToID, model.RoleDeveloper, "assigned_to"); err != nil {
			return nil, err
		}
	}

	task := &model.Task{
		ProjectID:    in.ProjectID,
		Title:        in.Title,
		Description:  in.Description,
		AssignedToID: in.AssignedToID,
		Status:       status,
		Sprint:       in.Sprint,
		DueDate:      in.DueDate,
		GithubPRURL:  optText(in.GithubPRURL),
	}
	if err := s.r.Create(ctx, task, taskAudit(p)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("project %s does not exist", in.ProjectID)
		}
		return nil, err
	}

	if task.AssignedToID != nil {
		enqueue(ctx, s.jobs, s.log, *task.AssignedToID, assignedTaskText(task.Title))
	}
	return s.reload(ctx, task.ID)
}

// Update is open to every authenticated role; the row must still be visible
// to the caller.
func (s *taskService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateTaskInput) (*model.Task, error) {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindTask); err != nil {
		return nil, err
	}
	if _, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindTask)); err != nil {
		return nil, lookupErr(err)
	}
	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		return nil, validationErr("title may not be blank")
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, validationErr("unknown status %q", *in.Status)
	}
	if in.AssignedToID != nil && !in.ClearAssignee {
		if err := requireRole(ctx, s.users, *in.AssignedToID, model.RoleDeveloper, "assigned_to"); err != nil {
			return nil, err
		}
	}

	before, after, err := s.r.Update(ctx, id, func(t *model.Task) error {
		if in.Title != nil {
			t.Title = *in.Title
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		switch {
		case in.ClearAssignee:
			t.AssignedToID = nil
		case in.AssignedToID != nil:
			t.AssignedToID = in.AssignedToID
		}
		if in.Status != nil {
			t.Status = *in.Status
		}
		if in.Sprint != nil {
			t.Sprint = *in.Sprint
		}
		switch {
		case in.ClearDueDate:
			t.DueDate = nil
		case in.DueDate != nil:
			t.DueDate = in.DueDate
		}
		if in.GithubPRURL != nil {
			t.GithubPRURL = optText(*in.GithubPRURL)
		}
		return nil
	}, taskAudit(p))
	if err != nil {
		return nil, lookupErr(err)
	}

	s.notifyChanges(ctx, p, before, after)
	return s.reload(ctx, id)
}

// reload reads a just-written task with its children. The write already
// passed the visibility check and may have moved the row out of the
// caller's scope, so the read is by id only.
func (s *taskService) reload(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	task, err := s.r.Get(ctx, id, repo.WithTaskChildren())
	if err != nil {
		return nil, lookupErr(err)
	}
	return task, nil
}

// optText maps an empty string to a NULL column.
func optText(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func (s *taskService) notifyChanges(ctx context.Context, p *policy.Principal, before, after *model.Task) {
	if after.AssignedToID == nil {
		return
	}
	assignee := *after.AssignedToID
	if !sameID(before.AssignedToID, after.AssignedToID) {
		enqueue(ctx, s.jobs, s.log, assignee, assignedTaskText(after.Title))
		return
	}
	if before.Status != "" && before.Status != after.Status && assignee != p.UserID {
		enqueue(ctx, s.jobs, s.log, assignee, movedTaskText(after.Title, before.Status, after.Status))
	}
}

func (s *taskService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindTask); err != nil {
		return err
	}
	if _, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindTask)); err != nil {
		return lookupErr(err)
	}
	return lookupErr(s.r.Delete(ctx, id, taskAudit(p)))
}

func (s *taskService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Task, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindTask); err != nil {
		return nil, err
	}
	task, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindTask), repo.WithTaskChildren())
	if err != nil {
		return nil, lookupErr(err)
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, p *policy.Principal, f repo.TaskFilter) ([]model.Task, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindTask); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f, policy.Scope(p, policy.KindTask), repo.WithTaskChildren())
}
