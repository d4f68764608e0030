package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleStandard = "standard"
	RoleAdmin    = "admin"
)

// User is created only through a successful OTP verification, so
// EmailVerified is true for every row written by the signup flow.
type User struct {
	ID            string  `gorm:"type:uuid;primaryKey"`
	Email         string  `gorm:"uniqueIndex;not null"`
	PasswordHash  string  `gorm:"not null"`
	Name          *string `gorm:"size:128"`
	Role          string  `gorm:"size:16;not null;default:'standard'"`
	EmailVerified bool    `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Relationships
	Sessions []Session `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
