package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/pkg/pagination"
)

// SaleCommit carries everything the atomic commit pipeline persists in one
// transaction: the sale and its items, the stock decrements per product, and
// the shift the sale is attributed to. OrderNo and ReceiptNo are assigned by
// the repository inside the transaction.
type SaleCommit struct {
	Sale       *entity.Sale
	Items      []entity.SaleItem
	Decrements map[uuid.UUID]int
	OrderDate  time.Time
}

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Commit atomically decrements stock, allocates the order serial and
	// receipt number, inserts the sale with its items, and adds the sale
	// total to the shift's per-method running total. On insufficient stock it
	// returns the failed product IDs with a nil error and nothing committed.
	Commit(ctx context.Context, commit *SaleCommit) ([]uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// UpdateKitchenStatus moves a sale from one kitchen status to another.
	// The write is conditional on the sale still being in the from status so
	// two terminals acting on the same ticket cannot interleave into a
	// transition the status graph forbids.
	UpdateKitchenStatus(ctx context.Context, id uuid.UUID, from, to enum.KitchenStatus) error
	// ActiveTickets returns sales still needing kitchen attention (pending or
	// preparing) created since dayStart, oldest first.
	ActiveTickets(ctx context.Context, dayStart time.Time) ([]entity.Sale, error)
	// CountOpenTickets counts a shift's sales that are still pending or preparing
	CountOpenTickets(ctx context.Context, shiftID uuid.UUID) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	ShiftID       *uuid.UUID
	StaffID       *uuid.UUID
	OrderType     *enum.OrderType
	PaymentMethod *enum.PaymentMethod
	KitchenStatus *enum.KitchenStatus
	StartDate     *time.Time
	EndDate       *time.Time
	SortBy        string
	SortOrder     string
}
