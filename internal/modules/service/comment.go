package service

import (
	"context"
	"errors"
	"strings"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentService interface {
	Create(ctx context.Context, p *policy.Principal, taskID uuid.UUID, body string) (*model.TaskComment, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.TaskComment, error)
	List(ctx context.Context, p *policy.Principal, f repo.CommentFilter) ([]model.TaskComment, error)
}

type commentService struct {
	r repo.CommentRepo
}

func NewCommentService(r repo.CommentRepo) CommentService {
	return &commentService{r: r}
}

// Create always records the caller as the author.
func (s *commentService) Create(ctx context.Context, p *policy.Principal, taskID uuid.UUID, body string) (*model.TaskComment, error) {
	if err := policy.Authorize(p, policy.ActionCreate, policy.KindComment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(body) == "" {
		return nil, validationErr("body is required")
	}
	if taskID == uuid.Nil {
		return nil, validationErr("task is required")
	}

	c := &model.TaskComment{TaskID: taskID, UserID: p.UserID, Body: body}
	if err := s.r.Create(ctx, c, commentAudit(p)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("task %s does not exist", taskID)
		}
		return nil, err
	}
	c.User = &model.User{ID: p.UserID, Username: p.Username, Role: p.Role}
	return c, nil
}

// Delete is limited to the author and administrators.
func (s *commentService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindComment); err != nil {
		return err
	}
	c, err := s.r.Get(ctx, id)
	if err != nil {
		return lookupErr(err)
	}
	if c.UserID != p.UserID && !p.Is(model.RoleAdmin) {
		return policy.ErrForbidden
	}
	return s.r.Delete(ctx, id)
}

func (s *commentService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.TaskComment, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindComment); err != nil {
		return nil, err
	}
	c, err := s.r.Get(ctx, id, withCommentAuthor)
	if err != nil {
		return nil, lookupErr(err)
	}
	return c, nil
}

func (s *commentService) List(ctx context.Context, p *policy.Principal, f repo.CommentFilter) ([]model.TaskComment, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindComment); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f, policy.Scope(p, policy.KindComment))
}

func withCommentAuthor(db *gorm.DB) *gorm.DB { return db.Preload("User") }
