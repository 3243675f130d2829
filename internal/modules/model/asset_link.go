package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetType string

const (
	AssetTypeGithub AssetType = "GITHUB"
	AssetTypeGDrive AssetType = "GDRIVE"
	AssetTypeDoc    AssetType = "DOC"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeGithub, AssetTypeGDrive, AssetTypeDoc:
		return true
	}
	return false
}

type AssetLink struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	AssetType   AssetType `gorm:"type:varchar(20);not null;check:asset_type IN ('GITHUB','GDRIVE','DOC');index" json:"asset_type"`
	URL         string    `gorm:"type:text;not null;default:''" json:"url"`
	Description string    `gorm:"type:varchar(255);not null;default:''" json:"description"`

	// uploaded file reference
	Bucket string `gorm:"type:text;not null;default:''" json:"-"`
	S3Key  string `gorm:"column:s3_key;type:text;not null;default:''" json:"-"`
	MIME   string `gorm:"column:mime;type:text;not null;default:''" json:"mime,omitempty"`
	SizeB  int64  `gorm:"column:size_bigint;type:bigint;not null;default:0" json:"size_b,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// AssetLink <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (AssetLink) TableName() string { return "asset_links" }

func (a *AssetLink) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

// HasUpload reports whether the link points at an object in blob storage.
func (a *AssetLink) HasUpload() bool { return a.S3Key != "" }
