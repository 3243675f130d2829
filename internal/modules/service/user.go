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
	"gorm.io/gorm"
)

type UserService interface {
	Create(ctx context.Context, p *policy.Principal, in CreateUserInput) (*model.User, error)
	Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, p *policy.Principal, f repo.UserFilter) ([]model.User, error)
}

type CreateUserInput struct {
	Username string
	Email    string
	Role     model.Role
}

// UpdateUserInput may change the role. Existing PM and assignee links are
// left as they are.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Role     *model.Role
}

// PrincipalInvalidator drops any cached principal for a user.
type PrincipalInvalidator interface {
	Forget(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	r      repo.UserRepo
	cached PrincipalInvalidator
	log    *zap.Logger
}

func NewUserService(r repo.UserRepo, cached PrincipalInvalidator, log *zap.Logger) UserService {
	return &userService{r: r, cached: cached, log: log}
}

func (s *userService) Create(ctx context.Context, p *policy.Principal, in CreateUserInput) (*model.User, error) {
	if err := policy.Authorize(p, policy.ActionCreate, policy.KindUser); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, validationErr("username is required")
	}
	if !in.Role.Valid() {
		return nil, validationErr("unknown role %q", in.Role)
	}
	if err := s.usernameFree(ctx, in.Username, uuid.Nil); err != nil {
		return nil, err
	}

	u := &model.User{Username: in.Username, Email: in.Email, Role: in.Role}
	if err := s.r.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateUserInput) (*model.User, error) {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindUser); err != nil {
		return nil, err
	}
	u, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err)
	}
	if in.Username != nil {
		if strings.TrimSpace(*in.Username) == "" {
			return nil, validationErr("username may not be blank")
		}
		if err := s.usernameFree(ctx, *in.Username, id); err != nil {
			return nil, err
		}
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return nil, validationErr("unknown role %q", *in.Role)
		}
		u.Role = *in.Role
	}
	if err := s.r.Update(ctx, u); err != nil {
		return nil, err
	}
	s.forget(ctx, id)
	return u, nil
}

func (s *userService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindUser); err != nil {
		return err
	}
	if _, err := s.r.Get(ctx, id); err != nil {
		return lookupErr(err)
	}
	if err := s.r.Delete(ctx, id); err != nil {
		return err
	}
	s.forget(ctx, id)
	return nil
}

func (s *userService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.User, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindUser); err != nil {
		return nil, err
	}
	u, err := s.r.Get(ctx, id)
	if err != nil {
		return nil, lookupErr(err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context, p *policy.Principal, f repo.UserFilter) ([]model.User, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindUser); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f)
}

func (s *userService) usernameFree(ctx context.Context, username string, self uuid.UUID) error {
	u, err := s.r.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return err
	case u.ID != self:
		return validationErr("username %q is taken", username)
	}
	return nil
}

func (s *userService) forget(ctx context.Context, id uuid.UUID) {
	if s.cached == nil {
		return
	}
	if err := s.cached.Forget(ctx, id); err != nil {
		s.log.Warn("forget cached principal failed", zap.String("user_id", id.String()), zap.Error(err))
	}
}
