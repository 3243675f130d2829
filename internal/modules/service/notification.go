package service

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
)

// NotificationService only ever touches the caller's own rows; another
// user's notification reads as ErrNotFound.
type NotificationService interface {
	List(ctx context.Context, p *policy.Principal, f repo.NotificationFilter) ([]model.Notification, error)
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Notification, error)
	MarkRead(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	MarkAllRead(ctx context.Context, p *policy.Principal) (int64, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
}

type notificationService struct {
	r repo.NotificationRepo
}

func NewNotificationService(r repo.NotificationRepo) NotificationService {
	return &notificationService{r: r}
}

func (s *notificationService) List(ctx context.Context, p *policy.Principal, f repo.NotificationFilter) ([]model.Notification, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindNotification); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f, policy.Scope(p, policy.KindNotification))
}

func (s *notificationService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Notification, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindNotification); err != nil {
		return nil, err
	}
	n, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindNotification))
	if err != nil {
		return nil, lookupErr(err)
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindNotification); err != nil {
		return err
	}
	ok, err := s.r.MarkRead(ctx, id, policy.Scope(p, policy.KindNotification))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, p *policy.Principal) (int64, error) {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindNotification); err != nil {
		return 0, err
	}
	return s.r.MarkAllRead(ctx, policy.Scope(p, policy.KindNotification))
}

func (s *notificationService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindNotification); err != nil {
		return err
	}
	ok, err := s.r.Delete(ctx, id, policy.Scope(p, policy.KindNotification))
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}
