package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectFilter struct {
	PMID      *uuid.UUID
	StartDate *datatypes.Date
	EndDate   *datatypes.Date
	Search    string
}

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project, audit AuditFunc[model.Project]) error
	Update(ctx context.Context, id uuid.UUID, apply func(*model.Project) error, audit AuditFunc[model.Project]) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID, audit AuditFunc[model.Project]) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Project, error)
	List(ctx context.Context, f ProjectFilter, scopes ...Scope) ([]model.Project, error)
}

type projectRepo struct{ db *gorm.DB }

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project, audit AuditFunc[model.Project]) error {
	return withAudit(ctx, r.db, func(tx *gorm.DB) (model.ActivityLog, error) {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return model.ActivityLog{}, err
		}
		return audit(nil, p), nil
	})
}

func (r *projectRepo) Update(ctx context.Context, id uuid.UUID, apply func(*model.Project) error, audit AuditFunc[model.Project]) (*model.Project, error) {
	var after model.Project
	err := withAudit(ctx, r.db, func(tx *gorm.DB) (model.ActivityLog, error) {
		if err := tx.Where("id = ?", id).First(&after).Error; err != nil {
			return model.ActivityLog{}, err
		}
		before := after
		if err := apply(&after); err != nil {
			return model.ActivityLog{}, err
		}
		if err := tx.Omit(clause.Associations).Save(&after).Error; err != nil {
			return model.ActivityLog{}, err
		}
		return audit(&before, &after), nil
	})
	if err != nil {
		return nil, err
	}
	return &after, nil
}

// Delete writes the audit entry first, while the project name still resolves,
// then removes the project together with its tasks, their comments and its assets.
// The returned project carries the removed assets so callers can release blobs.
func (r *projectRepo) Delete(ctx context.Context, id uuid.UUID, audit AuditFunc[model.Project]) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Assets").Where("id = ?", id).First(&project).Error; err != nil {
			return err
		}
		entry := audit(&project, nil)
		if err := appendLog(tx, &entry); err != nil {
			return err
		}

		var taskIDs []uuid.UUID
		if err := tx.Model(&model.Task{}).Where("project_id = ?", id).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&model.TaskComment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.AssetLink{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Project, error) {
	var p model.Project
	return &p, r.db.WithContext(ctx).Scopes(scopes...).Where("projects.id = ?", id).First(&p).Error
}

func (r *projectRepo) List(ctx context.Context, f ProjectFilter, scopes ...Scope) ([]model.Project, error) {
	q := r.db.WithContext(ctx).Model(&model.Project{}).Scopes(scopes...)
	if f.PMID != nil {
		q = q.Where("projects.pm_id = ?", *f.PMID)
	}
	if f.StartDate != nil {
		q = q.Where("projects.start_date = ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("projects.end_date = ?", *f.EndDate)
	}
	q = search(q, f.Search, "projects.name", "projects.description")

	var items []model.Project
	return items, q.Order("projects.created_at DESC, projects.id DESC").Find(&items).Error
}

// WithProjectChildren preloads tasks (narrowed by taskScope) and assets for response assembly.
func WithProjectChildren(taskScope Scope) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Preload("PM").
			Preload("Tasks", func(q *gorm.DB) *gorm.DB {
				return q.Scopes(taskScope).Order("tasks.created_at DESC, tasks.id DESC")
			}).
			Preload("Tasks.AssignedTo").
			Preload("Assets", func(q *gorm.DB) *gorm.DB {
				return q.Order("asset_links.created_at DESC, asset_links.id DESC")
			})
	}
}
