package repo

import (
	"context"
	"fmt"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Scope narrows or decorates a query; policy visibility filters and preloads are both scopes.
type Scope = func(*gorm.DB) *gorm.DB

// AuditFunc renders the activity entry for a mutation from the row as it was
// before and after the write. before is nil on create, after is nil on delete.
type AuditFunc[T any] func(before, after *T) model.ActivityLog

// withAudit runs write and the resulting activity insert in one transaction.
// If either fails nothing is committed.
func withAudit(ctx context.Context, db *gorm.DB, write func(tx *gorm.DB) (model.ActivityLog, error)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		entry, err := write(tx)
		if err != nil {
			return err
		}
		return appendLog(tx, &entry)
	})
}

func appendLog(tx *gorm.DB, entry *model.ActivityLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("write activity log: %w", err)
	}
	return nil
}

type ActivityLogFilter struct {
	TargetType string
	TargetID   *uuid.UUID
	UserID     *uuid.UUID
}

type ActivityLogRepo interface {
	List(ctx context.Context, f ActivityLogFilter, scopes ...Scope) ([]model.ActivityLog, error)
}

type activityLogRepo struct{ db *gorm.DB }

func NewActivityLogRepo(db *gorm.DB) ActivityLogRepo {
	return &activityLogRepo{db: db}
}

func (r *activityLogRepo) List(ctx context.Context, f ActivityLogFilter, scopes ...Scope) ([]model.ActivityLog, error) {
	q := r.db.WithContext(ctx).Model(&model.ActivityLog{}).Scopes(scopes...)
	if f.TargetType != "" {
		q = q.Where("activity_logs.target_type = ?", f.TargetType)
	}
	if f.TargetID != nil {
		q = q.Where("activity_logs.target_id = ?", *f.TargetID)
	}
	if f.UserID != nil {
		q = q.Where("activity_logs.user_id = ?", *f.UserID)
	}

	var items []model.ActivityLog
	return items, q.Order("activity_logs.created_at DESC, activity_logs.id DESC").Find(&items).Error
}
