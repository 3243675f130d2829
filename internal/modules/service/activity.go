package service

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
)

type ActivityService interface {
	List(ctx context.Context, p *policy.Principal, f repo.ActivityLogFilter) ([]model.ActivityLog, error)
}

type activityService struct {
	r repo.ActivityLogRepo
}

func NewActivityService(r repo.ActivityLogRepo) ActivityService {
	return &activityService{r: r}
}

func (s *activityService) List(ctx context.Context, p *policy.Principal, f repo.ActivityLogFilter) ([]model.ActivityLog, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindActivityLog); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f, policy.Scope(p, policy.KindActivityLog))
}
