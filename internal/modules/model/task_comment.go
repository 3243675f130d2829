package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskComment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TaskID uuid.UUID `gorm:"type:uuid;not null;index" json:"task_id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Body   string    `gorm:"type:text;not null" json:"body"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// TaskComment <-> Task
	Task *Task `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`

	// TaskComment <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"user,omitempty"`
}

func (TaskComment) TableName() string { return "task_comments" }

func (c *TaskComment) BeforeCreate(*gorm.DB) error {
	assignID(&c.ID)
	return nil
}
