package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
)

// HeldOrderRepository defines the interface for the held-order parking lot
type HeldOrderRepository interface {
	Create(ctx context.Context, order *entity.HeldOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.HeldOrder, error)
	ListByOwner(ctx context.Context, ownerSessionID string) ([]entity.HeldOrder, error)
	// Resume returns the stored cart and deletes it in the same transaction.
	// A second resume of the same id returns nil, nil.
	Resume(ctx context.Context, id uuid.UUID) (*entity.HeldOrder, error)
	// Delete removes a held order; returns false when it does not exist
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
