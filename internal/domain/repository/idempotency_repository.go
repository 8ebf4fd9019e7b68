package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/decoraworks/atelier-api/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses for mutating requests.
// Lookups are always scoped to the user that sent the key.
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
