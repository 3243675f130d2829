package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskFilter struct {
	ProjectID    *uuid.UUID
	AssignedToID *uuid.UUID
	Status       *model.TaskStatus
	Sprint       *string
	DueAfter     *datatypes.Date
	DueBefore    *datatypes.Date
	Search       string
}

type TaskRepo interface {
	Create(ctx context.Context, t *model.Task, audit AuditFunc[model.Task]) error
	Update(ctx context.Context, id uuid.UUID, apply func(*model.Task) error, audit AuditFunc[model.Task]) (before, after *model.Task, err error)
	Delete(ctx context.Context, id uuid.UUID, audit AuditFunc[model.Task]) error
	Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Task, error)
	List(ctx context.Context, f TaskFilter, scopes ...Scope) ([]model.Task, error)
	ListDueBetween(ctx context.Context, from, to datatypes.Date) ([]model.Task, error)
}

type taskRepo struct{ db *gorm.DB }

func NewTaskRepo(db *gorm.DB) TaskRepo {
	return &taskRepo{db: db}
}

// Create inserts the task and resolves its project inside the same
// transaction so the audit line can name it.
func (r *taskRepo) Create(ctx context.Context, t *model.Task, audit AuditFunc[model.Task]) error {
	return withAudit(ctx, r.db, func(tx *gorm.DB) (model.ActivityLog, error) {
		var project model.Project
		if err := tx.Where("id = ?", t.ProjectID).First(&project).Error; err != nil {
			return model.ActivityLog{}, err
		}
		if err := tx.Omit(clause.Associations).Create(t).Error; err != nil {
			return model.ActivityLog{}, err
		}
		t.Project = &project
		return audit(nil, t), nil
	})
}

// Update captures the stored row before apply runs, so before.Status is the
// status that was persisted when the transaction started.
func (r *taskRepo) Update(ctx context.Context, id uuid.UUID, apply func(*model.Task) error, audit AuditFunc[model.Task]) (*model.Task, *model.Task, error) {
	var before, after model.Task
	err := withAudit(ctx, r.db, func(tx *gorm.DB) (model.ActivityLog, error) {
		if err := tx.Where("id = ?", id).First(&after).Error; err != nil {
			return model.ActivityLog{}, err
		}
		before = after
		if err := apply(&after); err != nil {
			return model.ActivityLog{}, err
		}
		if err := tx.Omit(clause.Associations).Save(&after).Error; err != nil {
			return model.ActivityLog{}, err
		}
		return audit(&before, &after), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &before, &after, nil
}

func (r *taskRepo) Delete(ctx context.Context, id uuid.UUID, audit AuditFunc[model.Task]) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var task model.Task
		if err := tx.Where("id = ?", id).First(&task).Error; err != nil {
			return err
		}
		entry := audit(&task, nil)
		if err := appendLog(tx, &entry); err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&model.TaskComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Task{ID: id}).Error
	})
}

func (r *taskRepo) Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Task, error) {
	var t model.Task
	return &t, r.db.WithContext(ctx).Scopes(scopes...).Where("tasks.id = ?", id).First(&t).Error
}

func (r *taskRepo) List(ctx context.Context, f TaskFilter, scopes ...Scope) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).Scopes(scopes...)
	if f.ProjectID != nil {
		q = q.Where("tasks.project_id = ?", *f.ProjectID)
	}
	if f.AssignedToID != nil {
		q = q.Where("tasks.assigned_to_id = ?", *f.AssignedToID)
	}
	if f.Status != nil {
		q = q.Where("tasks.status = ?", *f.Status)
	}
	if f.Sprint != nil {
		q = q.Where("tasks.sprint = ?", *f.Sprint)
	}
	if f.DueAfter != nil {
		q = q.Where("tasks.due_date >= ?", *f.DueAfter)
	}
	if f.DueBefore != nil {
		q = q.Where("tasks.due_date <= ?", *f.DueBefore)
	}
	q = search(q, f.Search, "tasks.title", "tasks.description", "tasks.sprint")

	var items []model.Task
	return items, q.Order("tasks.created_at DESC, tasks.id DESC").Find(&items).Error
}

// ListDueBetween returns open, assigned tasks whose due date falls in [from, to].
func (r *taskRepo) ListDueBetween(ctx context.Context, from, to datatypes.Date) ([]model.Task, error) {
	var items []model.Task
	return items, r.db.WithContext(ctx).
		Where("status <> ?", model.TaskStatusDone).
		Where("assigned_to_id IS NOT NULL").
		Where("due_date >= ? AND due_date <= ?", from, to).
		Order("due_date ASC, id ASC").
		Find(&items).Error
}

// WithTaskChildren preloads the assignee and comments (oldest first) for response assembly.
func WithTaskChildren() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("AssignedTo").
			Preload("Comments", func(q *gorm.DB) *gorm.DB {
				return q.Order("task_comments.created_at ASC, task_comments.id ASC")
			}).
			Preload("Comments.User")
	}
}
