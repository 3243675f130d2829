package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusReview     TaskStatus = "REVIEW"
	TaskStatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusReview, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Title        string          `gorm:"type:varchar(255);not null" json:"title"`
	Description  string          `gorm:"type:text;not null;default:''" json:"description"`
	AssignedToID *uuid.UUID      `gorm:"type:uuid;index" json:"assigned_to_id"`
	Status       TaskStatus      `gorm:"type:varchar(20);not null;default:'TODO';check:status IN ('TODO','IN_PROGRESS','REVIEW','DONE');index" json:"status"`
	Sprint       string          `gorm:"type:varchar(100);not null;default:'';index" json:"sprint"`
	DueDate      *datatypes.Date `gorm:"index" json:"due_date"`
	GithubPRURL  *string         `gorm:"column:github_pr_url;type:text" json:"github_pr_url"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Task <-> Project
	Project *Project `gorm:"foreignKey:ProjectID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"project,omitempty"`

	// Task <-> User (assignee), cleared when the user is removed
	AssignedTo *User `gorm:"foreignKey:AssignedToID;references:ID;constraint:OnDelete:SET NULL,OnUpdate:CASCADE;" json:"assigned_to,omitempty"`

	// Task <-> TaskComment
	Comments []TaskComment `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"comments,omitempty"`
}

func (Task) TableName() string { return "tasks" }

func (t *Task) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}
