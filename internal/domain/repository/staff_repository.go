package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
)

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByUsername(ctx context.Context, username string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	List(ctx context.Context) ([]entity.Staff, error)
}
