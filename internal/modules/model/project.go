package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	StartDate   datatypes.Date  `gorm:"not null;index" json:"start_date"`
	EndDate     *datatypes.Date `gorm:"index" json:"end_date"`
	PMID        *uuid.UUID      `gorm:"column:pm_id;type:uuid;index" json:"pm_id"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Project <-> User (PM), cleared when the user is removed
	PM *User `gorm:"foreignKey:PMID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"pm,omitempty"`

	// Project <-> Task
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"tasks,omitempty"`

	// Project <-> AssetLink
	Assets []AssetLink `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"assets,omitempty"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) BeforeCreate(*gorm.DB) error {
	assignID(&p.ID)
	return nil
}
