package models

import "time"

// Session anchors server-side revocation for a signed token. The token
// proves identity on its own; the row is what makes logout real.
type Session struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
