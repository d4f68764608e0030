package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpVerification stages a pending signup until the emailed code is
// confirmed. It holds the prospective user's password hash; no User row
// exists yet. The unique index on email keeps at most one live code per
// address.
type OtpVerification struct {
	ID           string    `gorm:"type:uuid;primaryKey"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Otp          string    `gorm:"size:6;not null"`
	PasswordHash string    `gorm:"not null"`
	ExpiresAt    time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
}

func (o *OtpVerification) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
