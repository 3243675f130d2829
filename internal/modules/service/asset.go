package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/company-sys/backend/internal/modules/policy"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AssetService interface {
	Create(ctx context.Context, p *policy.Principal, in CreateAssetInput) (*model.AssetLink, error)
	Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateAssetInput) (*model.AssetLink, error)
	Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error
	Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.AssetLink, error)
	List(ctx context.Context, p *policy.Principal, f repo.AssetFilter) ([]model.AssetLink, error)
	// DownloadURL returns a presigned URL for uploaded assets and the stored URL otherwise.
	DownloadURL(ctx context.Context, a *model.AssetLink) string
}

// CreateAssetInput takes either URL or File.
type CreateAssetInput struct {
	ProjectID   uuid.UUID
	AssetType   model.AssetType
	URL         string
	Description string
	File        *multipart.FileHeader
}

type UpdateAssetInput struct {
	AssetType   *model.AssetType
	URL         *string
	Description *string
}

type assetService struct {
	r        repo.AssetRepo
	projects repo.ProjectRepo
	blob     BlobStore
	expire   time.Duration
	log      *zap.Logger
}

func NewAssetService(r repo.AssetRepo, projects repo.ProjectRepo, blob BlobStore, expire time.Duration, log *zap.Logger) AssetService {
	return &assetService{r: r, projects: projects, blob: blob, expire: expire, log: log}
}

func (s *assetService) Create(ctx context.Context, p *policy.Principal, in CreateAssetInput) (*model.AssetLink, error) {
	if err := policy.Authorize(p, policy.ActionCreate, policy.KindAsset); err != nil {
		return nil, err
	}
	if !in.AssetType.Valid() {
		return nil, validationErr("unknown asset_type %q", in.AssetType)
	}
	if in.File == nil && strings.TrimSpace(in.URL) == "" {
		return nil, validationErr("either url or file is required")
	}
	if _, err := s.projects.Get(ctx, in.ProjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, validationErr("project %s does not exist", in.ProjectID)
		}
		return nil, err
	}

	a := &model.AssetLink{
		ProjectID:   in.ProjectID,
		AssetType:   in.AssetType,
		URL:         in.URL,
		Description: in.Description,
	}
	if in.File != nil {
		if s.blob == nil {
			return nil, validationErr("file uploads are not enabled")
		}
		meta, err := s.blob.UploadFormFile(ctx, fmt.Sprintf("assets/%s", in.ProjectID), in.File)
		if err != nil {
			return nil, fmt.Errorf("upload asset file: %w", err)
		}
		a.Bucket = meta.Bucket
		a.S3Key = meta.Key
		a.MIME = meta.MIME
		a.SizeB = meta.SizeB
		if a.Description == "" {
			a.Description = in.File.Filename
		}
	}

	if err := s.r.Create(ctx, a); err != nil {
		releaseBlob(ctx, s.blob, s.log, a)
		return nil, err
	}
	return a, nil
}

func (s *assetService) Update(ctx context.Context, p *policy.Principal, id uuid.UUID, in UpdateAssetInput) (*model.AssetLink, error) {
	if err := policy.Authorize(p, policy.ActionUpdate, policy.KindAsset); err != nil {
		return nil, err
	}
	a, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindAsset))
	if err != nil {
		return nil, lookupErr(err)
	}
	if in.AssetType != nil {
		if !in.AssetType.Valid() {
			return nil, validationErr("unknown asset_type %q", *in.AssetType)
		}
		a.AssetType = *in.AssetType
	}
	if in.URL != nil {
		a.URL = *in.URL
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if a.URL == "" && !a.HasUpload() {
		return nil, validationErr("url may not be blank")
	}
	if err := s.r.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *assetService) Delete(ctx context.Context, p *policy.Principal, id uuid.UUID) error {
	if err := policy.Authorize(p, policy.ActionDelete, policy.KindAsset); err != nil {
		return err
	}
	a, err := s.r.Delete(ctx, id)
	if err != nil {
		return lookupErr(err)
	}
	releaseBlob(ctx, s.blob, s.log, a)
	return nil
}

func (s *assetService) Get(ctx context.Context, p *policy.Principal, id uuid.UUID) (*model.AssetLink, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindAsset); err != nil {
		return nil, err
	}
	a, err := s.r.Get(ctx, id, policy.Scope(p, policy.KindAsset))
	if err != nil {
		return nil, lookupErr(err)
	}
	return a, nil
}

func (s *assetService) List(ctx context.Context, p *policy.Principal, f repo.AssetFilter) ([]model.AssetLink, error) {
	if err := policy.Authorize(p, policy.ActionRead, policy.KindAsset); err != nil {
		return nil, err
	}
	return s.r.List(ctx, f, policy.Scope(p, policy.KindAsset))
}

func (s *assetService) DownloadURL(ctx context.Context, a *model.AssetLink) string {
	if !a.HasUpload() || s.blob == nil {
		return a.URL
	}
	u, err := s.blob.PresignGet(ctx, a.S3Key, s.expire)
	if err != nil {
		s.log.Warn("presign asset failed", zap.String("asset_id", a.ID.String()), zap.Error(err))
		return a.URL
	}
	return u
}
