package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	"github.com/kmuteti/restopos-api/pkg/apperror"
)

// HeldOrderService is the parking lot for unpaid carts. Holding persists the
// cart verbatim and touches neither stock nor the shift ledger; a resumed
// cart goes back through the full sale pipeline to be paid.
type HeldOrderService struct {
	heldOrderRepo repository.HeldOrderRepository
}

// NewHeldOrderService creates a new held order service
func NewHeldOrderService(heldOrderRepo repository.HeldOrderRepository) *HeldOrderService {
	return &HeldOrderService{heldOrderRepo: heldOrderRepo}
}

// HeldItemInput represents one cart line to park
type HeldItemInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   float64
	Addons      []SaleAddonInput
	Notes       string
}

// HoldOrderInput represents the hold order input
type HoldOrderInput struct {
	OwnerSessionID  string
	OrderNo         string
	OrderType       enum.OrderType
	TableNumber     *string
	CustomerName    *string
	CustomerPhone   *string
	CustomerAddress *string
	SubTotal        float64
	Discount        float64
	Total           float64
	Items           []HeldItemInput
}

// Hold parks a cart as-is. The stored prices and totals are display values
// only; commit-time pricing always re-reads the catalog.
func (s *HeldOrderService) Hold(ctx context.Context, input *HoldOrderInput) (*entity.HeldOrder, error) {
	if input.OwnerSessionID == "" {
		return nil, apperror.NewBadRequestError("Owner session is required")
	}
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Cannot hold an empty cart")
	}

	items := make(entity.HeldItems, 0, len(input.Items))
	for _, item := range input.Items {
		addons := make([]entity.SaleAddon, 0, len(item.Addons))
		for _, a := range item.Addons {
			addons = append(addons, entity.SaleAddon{Name: a.Name, Price: int64(a.Price * 100)})
		}
		items = append(items, entity.HeldItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   int64(item.UnitPrice * 100),
			Addons:      addons,
			Notes:       item.Notes,
		})
	}

	order := &entity.HeldOrder{
		OwnerSessionID:  input.OwnerSessionID,
		OrderNo:         input.OrderNo,
		OrderType:       input.OrderType,
		TableNumber:     input.TableNumber,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.CustomerAddress,
		Items:           items,
		SubTotal:        int64(input.SubTotal * 100),
		Discount:        int64(input.Discount * 100),
		Total:           int64(input.Total * 100),
		HeldAt:          time.Now(),
	}

	if err := s.heldOrderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	return order, nil
}

// List returns the terminal session's parked carts, oldest first
func (s *HeldOrderService) List(ctx context.Context, ownerSessionID string) ([]entity.HeldOrder, error) {
	if ownerSessionID == "" {
		return nil, apperror.NewBadRequestError("Owner session is required")
	}
	return s.heldOrderRepo.ListByOwner(ctx, ownerSessionID)
}

// Resume hands the cart back and deletes it in the same transaction, so a
// second resume of the same order fails with not found.
func (s *HeldOrderService) Resume(ctx context.Context, id uuid.UUID) (*entity.HeldOrder, error) {
	order, err := s.heldOrderRepo.Resume(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Held order")
	}
	return order, nil
}

// Delete discards a parked cart without paying it
func (s *HeldOrderService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.heldOrderRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.NewNotFoundError("Held order")
	}
	return nil
}
