package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
)

// ShiftRepository defines the interface for shift ledger operations
type ShiftRepository interface {
	// Create inserts a new open shift. The staff-has-open-shift invariant is
	// enforced by a partial unique index; a duplicate open attempt surfaces
	// as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetActiveByStaff returns the staff member's open shift, or nil
	GetActiveByStaff(ctx context.Context, staffID uuid.UUID) (*entity.Shift, error)
	// Close freezes an open shift with the counted cash. It only touches rows
	// where is_closed is false; a second close reports zero rows affected.
	Close(ctx context.Context, shift *entity.Shift) (bool, error)
	List(ctx context.Context, staffID uuid.UUID, includeClosed bool) ([]entity.Shift, error)
}
