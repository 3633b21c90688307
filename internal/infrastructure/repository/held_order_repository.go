package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	domainRepo "github.com/kmuteti/restopos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type heldOrderRepository struct {
	db *gorm.DB
}

// NewHeldOrderRepository creates a new held order repository
func NewHeldOrderRepository(db *gorm.DB) domainRepo.HeldOrderRepository {
	return &heldOrderRepository{db: db}
}

func (r *heldOrderRepository) Create(ctx context.Context, order *entity.HeldOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *heldOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.HeldOrder, error) {
	var order entity.HeldOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *heldOrderRepository) ListByOwner(ctx context.Context, ownerSessionID string) ([]entity.HeldOrder, error) {
	var orders []entity.HeldOrder
	err := r.db.WithContext(ctx).
		Where("owner_session_id = ?", ownerSessionID).
		Order("held_at ASC").
		Find(&orders).Error
	return orders, err
}

// Resume fetches and deletes the held order in one transaction so two
// terminals cannot both restore the same cart. The row lock taken by the
// select decides the winner; the loser sees nil.
func (r *heldOrderRepository) Resume(ctx context.Context, id uuid.UUID) (*entity.HeldOrder, error) {
	var order entity.HeldOrder
	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return tx.Delete(&entity.HeldOrder{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &order, nil
}

func (r *heldOrderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entity.HeldOrder{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
