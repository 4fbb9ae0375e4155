package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP is a single-use login code. Code is set to nil once the record is
// consumed or found expired; only the most recent record per (UserID, Purpose)
// is ever considered live.
type OTP struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);index;not null"`
	Code      *string   `gorm:"size:16"`
	Purpose   string    `gorm:"size:32;index;not null"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}
