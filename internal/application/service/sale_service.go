package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/cache"
	"github.com/kmuteti/restopos-api/internal/domain/entity"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	infraRepo "github.com/kmuteti/restopos-api/internal/infrastructure/repository"
	"github.com/kmuteti/restopos-api/pkg/apperror"
)

// SaleService runs the sale commit pipeline: validation, authoritative
// pricing from the catalog, payment checks, and the atomic transaction that
// decrements stock, allocates the order and receipt numbers, inserts the sale
// and attributes it to the open shift. A sale either fully exists or leaves
// no trace.
type SaleService struct {
	saleRepo    repository.SaleRepository
	shiftRepo   repository.ShiftRepository
	productRepo repository.ProductRepository
	boardCache  cache.BoardCache
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	shiftRepo repository.ShiftRepository,
	productRepo repository.ProductRepository,
	boardCache cache.BoardCache,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		shiftRepo:   shiftRepo,
		productRepo: productRepo,
		boardCache:  boardCache,
	}
}

// SaleAddonInput is a priced modifier on a cart line
type SaleAddonInput struct {
	Name  string
	Price float64
}

// SaleItemInput represents one cart line in a sale request
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	Addons    []SaleAddonInput
	Notes     *string
}

// CommitSaleInput represents the create sale input
type CommitSaleInput struct {
	StaffID          uuid.UUID
	OrderType        enum.OrderType
	TableNumber      *string
	CustomerName     *string
	CustomerPhone    *string
	CustomerAddress  *string
	Discount         float64
	DeliveryFee      float64
	PaymentMethod    enum.PaymentMethod
	AmountReceived   *float64
	FocReason        *string
	CreditCustomerID *uuid.UUID
	Notes            *string
	Items            []SaleItemInput
}

// Commit processes a payment and creates the sale
func (s *SaleService) Commit(ctx context.Context, input *CommitSaleInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Sale must contain at least one item")
	}
	if !input.OrderType.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown order type")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown payment method")
	}
	if input.Discount < 0 {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
	}

	if err := validateOrderMetadata(input); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.GetActiveByStaff(ctx, input.StaffID)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, apperror.ErrNoActiveShift
	}

	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	// Price every line from the catalog snapshot, never from the client.
	var subTotal int64
	items := make([]entity.SaleItem, 0, len(input.Items))
	decrements := make(map[uuid.UUID]int)

	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists || !product.Active {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", item.ProductID))
		}

		addons := make(entity.SaleAddons, 0, len(item.Addons))
		for _, a := range item.Addons {
			if a.Price < 0 {
				return nil, apperror.NewBadRequestError("Addon price cannot be negative")
			}
			addons = append(addons, entity.SaleAddon{Name: a.Name, Price: int64(a.Price * 100)})
		}

		line := entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   product.Price,
			Addons:      addons,
			Notes:       item.Notes,
		}
		subTotal += line.LineTotal()
		items = append(items, line)
		decrements[product.ID] += item.Quantity
	}

	discount := int64(input.Discount * 100)
	deliveryFee := int64(input.DeliveryFee * 100)
	total := entity.ComputeTotal(subTotal, discount, deliveryFee, input.OrderType)

	sale := &entity.Sale{
		ShiftID:          shift.ID,
		StaffID:          input.StaffID,
		OrderType:        input.OrderType,
		TableNumber:      input.TableNumber,
		CustomerName:     input.CustomerName,
		CustomerPhone:    input.CustomerPhone,
		CustomerAddress:  input.CustomerAddress,
		SubTotal:         subTotal,
		Discount:         discount,
		DeliveryFee:      deliveryFee,
		Total:            total,
		PaymentMethod:    input.PaymentMethod,
		FocReason:        input.FocReason,
		CreditCustomerID: input.CreditCustomerID,
		Notes:            input.Notes,
	}

	if err := applyPayment(sale, input); err != nil {
		return nil, err
	}

	// Takeaway never enters the kitchen queue
	if input.OrderType.RequiresKitchen() {
		sale.KitchenStatus = enum.KitchenStatusPending
	} else {
		sale.KitchenStatus = enum.KitchenStatusCompleted
	}

	failedIDs, err := s.saleRepo.Commit(ctx, &repository.SaleCommit{
		Sale:       sale,
		Items:      items,
		Decrements: decrements,
		OrderDate:  time.Now(),
	})
	if err != nil {
		if errors.Is(err, infraRepo.ErrShiftNotOpen) {
			return nil, apperror.ErrShiftClosed
		}
		return nil, apperror.ErrCommitFailed
	}
	if len(failedIDs) > 0 {
		names := make([]string, 0, len(failedIDs))
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				names = append(names, product.Name)
			}
		}
		return nil, apperror.NewOutOfStockError("Insufficient stock for: " + strings.Join(names, ", "))
	}
	sale.Items = items

	if sale.KitchenStatus == enum.KitchenStatusPending {
		_ = s.boardCache.Invalidate(ctx, cache.BoardKey)
	}

	return sale, nil
}

// validateOrderMetadata enforces the per-order-type required fields
func validateOrderMetadata(input *CommitSaleInput) error {
	var fieldErrors []apperror.FieldError

	switch input.OrderType {
	case enum.OrderTypeDineIn:
		if input.TableNumber == nil || *input.TableNumber == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "table_number", Message: "required for dine-in orders"})
		}
	case enum.OrderTypeDelivery:
		if input.CustomerName == nil || *input.CustomerName == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_name", Message: "required for delivery orders"})
		}
		if input.CustomerPhone == nil || *input.CustomerPhone == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_phone", Message: "required for delivery orders"})
		}
		if input.CustomerAddress == nil || *input.CustomerAddress == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customer_address", Message: "required for delivery orders"})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewMissingMetadataError(fieldErrors)
	}
	return nil
}

// applyPayment validates the method-specific payment payload and fills in the
// cash tendering fields
func applyPayment(sale *entity.Sale, input *CommitSaleInput) error {
	switch input.PaymentMethod {
	case enum.PaymentMethodCash:
		if input.AmountReceived == nil {
			return apperror.ErrInsufficientPayment
		}
		received := int64(*input.AmountReceived * 100)
		if received < sale.Total {
			return apperror.ErrInsufficientPayment
		}
		change := received - sale.Total
		sale.AmountReceived = &received
		sale.ChangeGiven = &change
	case enum.PaymentMethodFOC:
		if sale.FocReason == nil || *sale.FocReason == "" {
			return apperror.ErrMissingFocReason
		}
	case enum.PaymentMethodCredit:
		if sale.CreditCustomerID == nil {
			return apperror.ErrMissingCreditCustomer
		}
	}
	// Card and cash-on-delivery carry no payment payload
	return nil
}

// GetByID returns a sale with its items
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// GetReceipt builds the printable receipt projection for a committed sale
func (s *SaleService) GetReceipt(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return entity.NewReceipt(sale, sale.Staff.Name), nil
}

// GetReceiptByNumber rebuilds the receipt projection from a printed receipt
// number, the lookup a reprint request carries.
func (s *SaleService) GetReceiptByNumber(ctx context.Context, receiptNo string) (*entity.Receipt, error) {
	sale, err := s.saleRepo.GetByReceiptNo(ctx, receiptNo)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return s.GetReceipt(ctx, sale.ID)
}

// List returns sales matching the filter
func (s *SaleService) List(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}
