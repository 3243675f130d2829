package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index:ix_notification_user_read,priority:1" json:"user_id"`
	Message string    `gorm:"type:text;not null" json:"message"`
	IsRead  bool      `gorm:"not null;default:false;index:ix_notification_user_read,priority:2" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Notification <-> User
	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

func (n *Notification) BeforeCreate(*gorm.DB) error {
	assignID(&n.ID)
	return nil
}
