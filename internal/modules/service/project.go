package service

import (
	"context"
	"strings"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ProjectService interface {
	Create(ctx context.Context, p *policy.Principal, in CreateProjectInput) (*model.Project, error)
	Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateProjectInput) (*model.Project, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, p *policy.Principal, f repo.ProjectFilter) ([]model.Project, error)
}

type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   datatypes.Date
	EndDate     *datatypes.Date
	PMID        *uuid.UUID
}

type UpdateProjectInput struct {
	Name         *string
	Description  *string
	StartDate    *datatypes.Date
	EndDate      *datatypes.Date
	ClearEndDate bool
	PMID         *uuid.UUID
	ClearPM      bool
}

type projectService struct {
	r     repo.ProjectRepo
	users repo.UserRepo
	jobs  Enqueuer
	blob  BlobStore
	log   *zap.Logger
}

func NewProjectService(r repo.ProjectRepo, users repo.UserRepo, jobs Enqueuer, blob BlobStore, log *zap.Logger) ProjectService {
	return &projectService{r: r, users: users, jobs: jobs, blob: blob, log: log}
}

func (s *projectService) Create(ctx context.Context, p *policy.Principal, in CreateProjectInput) (*model.Project, error) {
	if err := policy.Authorize(p, policy.ActionCreate, policy.KindProject); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, validationErr("name is required")
	}
	if in.PMID != nil {
		if err := s.requireRole(ctx, *in.PMID, model.RolePM, "pm"); err != nil {
			return nil, err
		}
	}

	project := &model.Project{
		Name:        in.Name,
		Description: in.Description,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		PMID:        in.PMID,
	}
	if err := s.r.Create(ctx, project, projectAudit(p)); err != nil {
		return nil, err
	}

	if project.PMID != nil {
		s.notify(ctx, *project.PMID, assignedProjectText(project.Name))
	}
	return s.reload(ctx, p, project.ID)
}

func (s *projectService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateProjectInput) (*model.Project, error) {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindProject); err != nil {
		return nil, err
	}
	if _, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindProject)); err != nil {
		return nil, lookupErr(err)
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, validationErr("name may not be blank")
	}
	if in.PMID != nil && !in.ClearPM {
		if err := s.requireRole(ctx, *in.PMID, model.RolePM, "pm"); err != nil {
			return nil, err
		}
	}

	var previousPM *uuid.UUID
	updated, err := s.r.Update(ctx, id, func(project *model.Project) error {
		previousPM = project.PMID
		if in.Name != nil {
			project.Name = *in.Name
		}
		if in.Description != nil {
			project.Description = *in.Description
		}
		if in.StartDate != nil {
			project.StartDate = *in.StartDate
		}
		switch {
		case in.ClearEndDate:
			project.EndDate = nil
		case in.EndDate != nil:
			project.EndDate = in.EndDate
		}
		switch {
		case in.ClearPM:
			project.PMID = nil
		case in.PMID != nil:
			project.PMID = in.PMID
		}
		return nil
	}, projectAudit(p))
	if err != nil {
		return nil, lookupErr(err)
	}

	if updated.PMID != nil && !sameID(previousPM, updated.PMID) {
		s.notify(ctx, *updated.PMID, assignedProjectText(updated.Name))
	}
	return s.reload(ctx, p, id)
}

// reload reads a just-written project with its children. Only the embedded
// tasks follow the caller's visibility; the project itself may have left the
// caller's scope through this write (a PM handing it over).
func (s *projectService) reload(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Project, error) {
	project, err := s.r.Get(ctx, id, repo.WithProjectChildren(policy.Scope(p, policy.KindTask)))
	if err != nil {
		return nil, lookupErr(err)
	}
	return project, nil
}

func (s *projectService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindProject); err != nil {
		return err
	}
	if _, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindProject)); err != nil {
		return lookupErr(err)
	}

	deleted, err := s.r.Delete(ctx, id, projectAudit(p))
	if err != nil {
		return lookupErr(err)
	}
	for _, a := range deleted.Assets {
		releaseBlob(ctx, s.blob, s.log, &a)
	}
	return nil
}

func (s *projectService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.Project, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindProject); err != nil {
		return nil, err
	}
	project, err := s.r.Get(ctx, id,
		policy.Scope(p, policy.KindProject),
		repo.WithProjectChildren(policy.Scope(p, policy.KindTask)))
	if err != nil {
		return nil, lookupErr(err)
	}
	return project, nil
}

func (s *projectService) List(ctx context.Context, p *policy.Principal, f repo.ProjectFilter) ([]model.Project, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindProject); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f,
		policy.Scope(p, policy.KindProject),
		repo.WithProjectChildren(policy.Scope(p, policy.KindTask)))
}

// requireRole checks the referenced user exists and holds role right now.
func (s *projectService) requireRole(ctx context.Context, id uuid.UUID, role model.Role, field string) error {
	return requireRole(ctx, s.users, id, role, field)
}

func (s *projectService) notify(ctx context.Context, userID uuid.UUID, message string) {
	enqueue(ctx, s.jobs, s.log, userID, message)
}
