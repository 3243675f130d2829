package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationFilter struct {
	IsRead *bool
}

type NotificationRepo interface {
	Create(ctx context.Context, n *model.Notification) error
	Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Notification, error)
	List(ctx context.Context, f NotificationFilter, scopes ...Scope) ([]model.Notification, error)
	// MarkRead flips is_read on the row if it is within scopes and reports whether it matched.
	MarkRead(ctx context.Context, id uuid.UUID, scopes ...Scope) (bool, error)
	MarkAllRead(ctx context.Context, scopes ...Scope) (int64, error)
	Delete(ctx context.Context, id uuid.UUID, scopes ...Scope) (bool, error)
}

type notificationRepo struct{ db *gorm.DB }

func NewNotificationRepo(db *gorm.DB) NotificationRepo {
	return &notificationRepo{db: db}
}

func (r *notificationRepo) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepo) Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.Notification, error) {
	var n model.Notification
	return &n, r.db.WithContext(ctx).Scopes(scopes...).Where("notifications.id = ?", id).First(&n).Error
}

func (r *notificationRepo) List(ctx context.Context, f NotificationFilter, scopes ...Scope) ([]model.Notification, error) {
	q := r.db.WithContext(ctx).Model(&model.Notification{}).Scopes(scopes...)
	if f.IsRead != nil {
		q = q.Where("notifications.is_read = ?", *f.IsRead)
	}

	var items []model.Notification
	return items, q.Order("notifications.created_at DESC, notifications.id DESC").Find(&items).Error
}

func (r *notificationRepo) MarkRead(ctx context.Context, id uuid.UUID, scopes ...Scope) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Scopes(scopes...).
		Where("notifications.id = ?", id).
		Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, scopes ...Scope) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Scopes(scopes...).
		Where("notifications.is_read = ?", false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *notificationRepo) Delete(ctx context.Context, id uuid.UUID, scopes ...Scope) (bool, error) {
	res := r.db.WithContext(ctx).
		Scopes(scopes...).
		Where("notifications.id = ?", id).
		Delete(&model.Notification{})
	return res.RowsAffected > 0, res.Error
}
