package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	domainRepo "github.com/kmuteti/restopos-api/internal/domain/repository"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetActiveByStaff(ctx context.Context, staffID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND is_closed = ?", staffID, false).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

// Close freezes the shift. The is_closed guard makes a concurrent or repeated
// close a no-op reported to the caller via the affected-row count.
func (r *shiftRepository) Close(ctx context.Context, shift *entity.Shift) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).Model(&entity.Shift{}).
		Where("id = ? AND is_closed = ?", shift.ID, false).
		Updates(map[string]interface{}{
			"is_closed":             true,
			"closed_at":             now,
			"physical_cash_counted": shift.PhysicalCashCounted,
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	shift.IsClosed = true
	shift.ClosedAt = &now
	return true, nil
}

func (r *shiftRepository) List(ctx context.Context, staffID uuid.UUID, includeClosed bool) ([]entity.Shift, error) {
	var shifts []entity.Shift
	query := r.db.WithContext(ctx).Model(&entity.Shift{})
	if staffID != uuid.Nil {
		query = query.Where("staff_id = ?", staffID)
	}
	if !includeClosed {
		query = query.Where("is_closed = ?", false)
	}
	err := query.Order("opened_at DESC").Find(&shifts).Error
	return shifts, err
}
