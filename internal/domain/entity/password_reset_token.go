package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetTokenTTL is how long a reset token stays valid.
const PasswordResetTokenTTL = time.Hour

// PasswordResetToken is a single-use token mailed to the account owner.
// Tokens are keyed by email rather than user ID so requests for unknown
// addresses can be answered identically.
type PasswordResetToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string {
	return "password_reset_tokens"
}

// IsExpired checks if the token has expired
func (t *PasswordResetToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid reports whether the token can still redeem a reset
func (t *PasswordResetToken) IsValid() bool {
	return !t.IsExpired() && !t.Used
}
