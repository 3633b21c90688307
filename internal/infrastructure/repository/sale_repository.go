package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	domainRepo "github.com/kmuteti/restopos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errInsufficientStock = errors.New("insufficient stock")

	// ErrShiftNotOpen is returned when a commit races a shift close and
	// finds the shift already frozen.
	ErrShiftNotOpen = errors.New("shift is not open")

	// ErrTicketStatusChanged is returned when a kitchen status write finds
	// the ticket no longer in the status the caller validated against.
	ErrTicketStatusChanged = errors.New("kitchen status changed since read")
)

// saleSortColumns lists the columns sale listings may be ordered by
var saleSortColumns = map[string]struct{}{
	"created_at":     {},
	"total":          {},
	"order_no":       {},
	"receipt_no":     {},
	"kitchen_status": {},
}

type saleRepository struct {
	db            *gorm.DB
	orderPrefix   string
	receiptPrefix string
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB, orderPrefix, receiptPrefix string) domainRepo.SaleRepository {
	return &saleRepository{db: db, orderPrefix: orderPrefix, receiptPrefix: receiptPrefix}
}

// nextSequence advances a counter row with an atomic upsert-increment and
// returns the new value. Concurrent callers serialize on the row, so two
// terminals can never observe the same value.
func nextSequence(tx *gorm.DB, scope string) (int64, error) {
	counter := entity.SequenceCounter{Scope: scope, Value: 1}
	err := tx.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"value": gorm.Expr("sequence_counters.value + 1")}),
		},
		clause.Returning{Columns: []clause.Column{{Name: "value"}}},
	).Create(&counter).Error
	return counter.Value, err
}

// Commit runs the whole sale pipeline inside one transaction: conditional
// stock decrements verified by affected-row count, serial and receipt
// allocation, sale + items insert, and shift attribution. Any failure rolls
// everything back; insufficient stock is reported via the failed product IDs
// with no partial effect observable.
func (r *saleRepository) Commit(ctx context.Context, commit *domainRepo.SaleCommit) ([]uuid.UUID, error) {
	var failedIDs []uuid.UUID

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, amount := range commit.Decrements {
			result := tx.Model(&entity.Product{}).
				Where("id = ? AND quantity >= ?", id, amount).
				Update("quantity", gorm.Expr("quantity - ?", amount))

			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failedIDs = append(failedIDs, id)
			}
		}
		if len(failedIDs) > 0 {
			return errInsufficientStock
		}

		sale := commit.Sale

		daySerial, err := nextSequence(tx, "order:"+commit.OrderDate.Format("20060102"))
		if err != nil {
			return err
		}
		receiptSerial, err := nextSequence(tx, "receipt")
		if err != nil {
			return err
		}
		sale.OrderNo = fmt.Sprintf("%s-%s%02d", r.orderPrefix, commit.OrderDate.Format("0102"), daySerial)
		sale.ReceiptNo = fmt.Sprintf("%s-%08d", r.receiptPrefix, receiptSerial)

		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		for i := range commit.Items {
			commit.Items[i].SaleID = sale.ID
		}
		if err := tx.Create(&commit.Items).Error; err != nil {
			return err
		}

		// Attribute the sale to its shift exactly once, and only while the
		// shift is still open.
		column := shiftTotalColumn(sale.PaymentMethod)
		result := tx.Model(&entity.Shift{}).
			Where("id = ? AND is_closed = ?", sale.ShiftID, false).
			Update(column, gorm.Expr(column+" + ?", sale.Total))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShiftNotOpen
		}

		return nil
	})

	if errors.Is(err, errInsufficientStock) && len(failedIDs) > 0 {
		return failedIDs, nil
	}
	return nil, err
}

// shiftTotalColumn maps a payment method to the shift running-total column it
// feeds. Cash-on-delivery settles in cash when the driver returns, so it
// reconciles against the cash drawer.
func shiftTotalColumn(method enum.PaymentMethod) string {
	switch method {
	case enum.PaymentMethodCard:
		return "card_sales_total"
	case enum.PaymentMethodCredit:
		return "credit_sales_total"
	case enum.PaymentMethodFOC:
		return "foc_sales_total"
	default:
		return "cash_sales_total"
	}
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Staff").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByReceiptNo(ctx context.Context, receiptNo string) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).Preload("Items").First(&sale, "receipt_no = ?", receiptNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.Search != "" {
		query = query.Where("receipt_no ILIKE ? OR order_no ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.ShiftID != nil {
		query = query.Where("shift_id = ?", *params.ShiftID)
	}

	if params.StaffID != nil {
		query = query.Where("staff_id = ?", *params.StaffID)
	}

	if params.OrderType != nil {
		query = query.Where("order_type = ?", *params.OrderType)
	}

	if params.PaymentMethod != nil {
		query = query.Where("payment_method = ?", *params.PaymentMethod)
	}

	if params.KitchenStatus != nil {
		query = query.Where("kitchen_status = ?", *params.KitchenStatus)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Items").
		Order(orderClause(params.SortBy, params.SortOrder, saleSortColumns)).
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) UpdateKitchenStatus(ctx context.Context, id uuid.UUID, from, to enum.KitchenStatus) error {
	result := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("id = ? AND kitchen_status = ?", id, from).
		Update("kitchen_status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketStatusChanged
	}
	return nil
}

func (r *saleRepository) ActiveTickets(ctx context.Context, dayStart time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("kitchen_status IN ? AND created_at >= ?",
			[]enum.KitchenStatus{enum.KitchenStatusPending, enum.KitchenStatusPreparing}, dayStart).
		Preload("Items").
		Order("created_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) CountOpenTickets(ctx context.Context, shiftID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("shift_id = ? AND kitchen_status IN ?", shiftID,
			[]enum.KitchenStatus{enum.KitchenStatusPending, enum.KitchenStatusPreparing}).
		Count(&count).Error
	return count, err
}
