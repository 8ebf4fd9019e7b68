package entity

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyKey stores processed requests so that a retried POST (e.g.
// invoice creation) replays the original response instead of re-executing
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Key          string    `gorm:"uniqueIndex:idx_idempotency_user_key;size:255;not null"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/invoices"
	ResponseCode int       `gorm:"not null"`
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired reports whether the key has passed its TTL and may be reused.
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}
