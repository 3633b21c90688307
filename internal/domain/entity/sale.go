package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Sale represents one completed payment. It is created atomically with its
// items and never mutated afterwards except for the kitchen status.
type Sale struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"shift_id"`
	StaffID          uuid.UUID          `gorm:"type:uuid;not null;index" json:"staff_id"`
	OrderNo          string             `gorm:"size:50;unique;not null" json:"order_number"`
	ReceiptNo        string             `gorm:"size:50;unique;not null" json:"receipt_number"`
	OrderType        enum.OrderType     `gorm:"not null" json:"order_type"`
	TableNumber      *string            `gorm:"size:20" json:"table_number,omitempty"`
	CustomerName     *string            `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone    *string            `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress  *string            `gorm:"type:text" json:"customer_address,omitempty"`
	SubTotal         int64              `gorm:"not null;default:0" json:"-"` // cents
	Discount         int64              `gorm:"not null;default:0" json:"-"` // cents
	DeliveryFee      int64              `gorm:"not null;default:0" json:"-"` // cents
	Total            int64              `gorm:"not null;default:0" json:"-"` // cents
	PaymentMethod    enum.PaymentMethod `gorm:"not null" json:"payment_method"`
	AmountReceived   *int64             `json:"-"` // cents, cash only
	ChangeGiven      *int64             `json:"-"` // cents, cash only
	FocReason        *string            `gorm:"type:text" json:"foc_reason,omitempty"`
	CreditCustomerID *uuid.UUID         `gorm:"type:uuid" json:"credit_customer_id,omitempty"`
	KitchenStatus    enum.KitchenStatus `gorm:"not null;default:0;index" json:"kitchen_status"`
	Notes            *string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt        time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`

	// Relationships
	Shift Shift      `gorm:"foreignKey:ShiftID" json:"-"`
	Staff Staff      `gorm:"foreignKey:StaffID" json:"-"`
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// ComputeTotal applies the sale total invariant:
// total = max(0, subtotal - discount), plus the delivery fee for deliveries.
func ComputeTotal(subTotal, discount, deliveryFee int64, orderType enum.OrderType) int64 {
	total := subTotal - discount
	if total < 0 {
		total = 0
	}
	if orderType == enum.OrderTypeDelivery {
		total += deliveryFee
	}
	return total
}

// Validate checks the construction invariants of a sale
func (s *Sale) Validate() error {
	if !s.OrderType.IsValid() {
		return errors.New("invalid order type")
	}
	if !s.PaymentMethod.IsValid() {
		return errors.New("invalid payment method")
	}
	if s.Discount < 0 {
		return errors.New("discount cannot be negative")
	}
	if s.Total != ComputeTotal(s.SubTotal, s.Discount, s.DeliveryFee, s.OrderType) {
		return errors.New("sale total does not match subtotal, discount and delivery fee")
	}
	var itemTotal int64
	for i := range s.Items {
		itemTotal += s.Items[i].LineTotal()
	}
	if len(s.Items) > 0 && itemTotal != s.SubTotal {
		return errors.New("sale subtotal does not match the sum of line totals")
	}
	return nil
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	out := &struct {
		Alias
		SubTotal       float64  `json:"subtotal"`
		Discount       float64  `json:"discount"`
		DeliveryFee    float64  `json:"delivery_fee"`
		Total          float64  `json:"total"`
		AmountReceived *float64 `json:"amount_received,omitempty"`
		ChangeGiven    *float64 `json:"change_given,omitempty"`
	}{
		Alias:       Alias(s),
		SubTotal:    float64(s.SubTotal) / 100,
		Discount:    float64(s.Discount) / 100,
		DeliveryFee: float64(s.DeliveryFee) / 100,
		Total:       float64(s.Total) / 100,
	}
	if s.AmountReceived != nil {
		received := float64(*s.AmountReceived) / 100
		out.AmountReceived = &received
	}
	if s.ChangeGiven != nil {
		change := float64(*s.ChangeGiven) / 100
		out.ChangeGiven = &change
	}
	return json.Marshal(out)
}

// SaleAddon is a priced modifier attached to a sale line (e.g. extra cheese)
type SaleAddon struct {
	Name  string `json:"name"`
	Price int64  `json:"price"` // cents
}

// SaleAddons is stored as a JSON column
type SaleAddons []SaleAddon

// Value serializes addons for storage
func (a SaleAddons) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]SaleAddon(a))
	return string(data), err
}

// Scan deserializes addons from storage
func (a *SaleAddons) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported type for SaleAddons")
}

// Sum returns the combined addon price in cents
func (a SaleAddons) Sum() int64 {
	var total int64
	for _, addon := range a {
		total += addon.Price
	}
	return total
}

// SaleItem represents one distinct cart line belonging to a sale. The product
// name and unit price are snapshots taken at sale time, not live catalog
// values. Immutable once created.
type SaleItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string     `gorm:"size:255;not null" json:"product_name"`
	Quantity    int        `gorm:"not null" json:"quantity"`
	UnitPrice   int64      `gorm:"not null" json:"-"` // cents, snapshot at sale time
	Addons      SaleAddons `gorm:"type:jsonb" json:"-"`
	Notes       *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}

// LineTotal is (unit price + addon prices) * quantity, in cents
func (si *SaleItem) LineTotal() int64 {
	return (si.UnitPrice + si.Addons.Sum()) * int64(si.Quantity)
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type addonJSON struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	addons := make([]addonJSON, 0, len(si.Addons))
	for _, a := range si.Addons {
		addons = append(addons, addonJSON{Name: a.Name, Price: float64(a.Price) / 100})
	}
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64     `json:"unit_price"`
		LineTotal float64     `json:"line_total"`
		Addons    []addonJSON `json:"addons"`
	}{
		Alias:     Alias(si),
		UnitPrice: float64(si.UnitPrice) / 100,
		LineTotal: float64(si.LineTotal()) / 100,
		Addons:    addons,
	})
}
