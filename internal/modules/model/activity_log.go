package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TargetProject = "Project"
	TargetTask    = "Task"
)

var ErrActivityLogImmutable = errors.New("activity log entries are append-only")

// ActivityLog is the audit trail. Rows carry no foreign key to users so that
// removing a user never rewrites history; Username is a snapshot.
type ActivityLog struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Username   string            `gorm:"type:varchar(150);not null;default:''" json:"username"`
	Action     string            `gorm:"type:text;not null" json:"action"`
	TargetType string            `gorm:"type:varchar(32);not null;index:ix_activity_target,priority:1" json:"target_type"`
	TargetID   uuid.UUID         `gorm:"type:uuid;not null;index:ix_activity_target,priority:2" json:"target_id"`
	Details    datatypes.JSONMap `json:"details,omitempty" swaggertype:"object"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"timestamp"`
}

func (ActivityLog) TableName() string { return "activity_logs" }

func (a *ActivityLog) BeforeCreate(*gorm.DB) error {
	assignID(&a.ID)
	return nil
}

func (a *ActivityLog) BeforeUpdate(*gorm.DB) error { return ErrActivityLogImmutable }

func (a *ActivityLog) BeforeDelete(*gorm.DB) error { return ErrActivityLogImmutable }
