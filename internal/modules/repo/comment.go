package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentFilter struct {
	TaskID *uuid.UUID
}

type CommentRepo interface {
	Create(ctx context.Context, c *model.TaskComment, audit AuditFunc[model.TaskComment]) error
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.TaskComment, error)
	List(ctx context.Context, f CommentFilter, scopes ...Scope) ([]model.TaskComment, error)
}

type commentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &commentRepo{db: db}
}

// Create resolves the task inside the transaction so the audit line can name it.
func (r *commentRepo) Create(ctx context.Context, c *model.TaskComment, audit AuditFunc[model.TaskComment]) error {
	return withAudit(ctx, r.db, func(tx *gorm.DB) (model.ActivityLog, error) {
		var task model.Task
		if err := tx.Where("id = ?", c.TaskID).First(&task).Error; err != nil {
			return model.ActivityLog{}, err
		}
		if err := tx.Omit(clause.Associations).Create(c).Error; err != nil {
			return model.ActivityLog{}, err
		}
		c.Task = &task
		return audit(nil, c), nil
	})
}

func (r *commentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.TaskComment{ID: id}).Error
}

func (r *commentRepo) Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.TaskComment, error) {
	var c model.TaskComment
	return &c, r.db.WithContext(ctx).Scopes(scopes...).Where("task_comments.id = ?", id).First(&c).Error
}

func (r *commentRepo) List(ctx context.Context, f CommentFilter, scopes ...Scope) ([]model.TaskComment, error) {
	q := r.db.WithContext(ctx).Model(&model.TaskComment{}).Scopes(scopes...).Preload("User")
	if f.TaskID != nil {
		q = q.Where("task_comments.task_id = ?", *f.TaskID)
	}

	var items []model.TaskComment
	return items, q.Order("task_comments.created_at ASC, task_comments.id ASC").Find(&items).Error
}
