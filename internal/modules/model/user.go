package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleCEO       Role = "CEO"
	RolePM        Role = "PM"
	RoleDeveloper Role = "DEV"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCEO, RolePM, RoleDeveloper:
		return true
	}
	return false
}

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email    string    `gorm:"type:varchar(254);not null;default:''" json:"email"`
	Role     Role      `gorm:"type:varchar(10);not null;default:'DEV';check:role IN ('ADMIN','CEO','PM','DEV')" json:"role"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// User <-> Notification
	Notifications []Notification `gorm:"constraint:OnDelete:CASCADE,OnUpdate:CASCADE;" json:"-"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}
