package repo

import (
	"context"

	"github.com/company-sys/backend/internal/modules/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AssetFilter struct {
	ProjectID *uuid.UUID
	AssetType *model.AssetType
	Search    string
}

type AssetRepo interface {
	Create(ctx context.Context, a *model.AssetLink) error
	Update(ctx context.Context, a *model.AssetLink) error
	Delete(ctx context.Context, id uuid.UUID) (*model.AssetLink, error)
	Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.AssetLink, error)
	List(ctx context.Context, f AssetFilter, scopes ...Scope) ([]model.AssetLink, error)
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{db: db}
}

func (r *assetRepo) Create(ctx context.Context, a *model.AssetLink) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error
}

func (r *assetRepo) Update(ctx context.Context, a *model.AssetLink) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error
}

func (r *assetRepo) Delete(ctx context.Context, id uuid.UUID) (*model.AssetLink, error) {
	var a model.AssetLink
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&a).Error; err != nil {
			return err
		}
		return tx.Delete(&model.AssetLink{ID: id}).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) Get(ctx context.Context, id uuid.UUID, scopes ...Scope) (*model.AssetLink, error) {
	var a model.AssetLink
	return &a, r.db.WithContext(ctx).Scopes(scopes...).Where("asset_links.id = ?", id).First(&a).Error
}

func (r *assetRepo) List(ctx context.Context, f AssetFilter, scopes ...Scope) ([]model.AssetLink, error) {
	q := r.db.WithContext(ctx).Model(&model.AssetLink{}).Scopes(scopes...)
	if f.ProjectID != nil {
		q = q.Where("asset_links.project_id = ?", *f.ProjectID)
	}
	if f.AssetType != nil {
		q = q.Where("asset_links.asset_type = ?", *f.AssetType)
	}
	q = search(q, f.Search, "asset_links.description", "asset_links.url")

	var items []model.AssetLink
	return items, q.Order("asset_links.created_at DESC, asset_links.id DESC").Find(&items).Error
}
