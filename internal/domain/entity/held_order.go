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

// HeldItem is one cart line inside a held order. Prices are whatever the
// terminal had on screen when the cart was parked; nothing here is
// authoritative, since commit-time pricing always re-reads the catalog.
type HeldItem struct {
	ProductID   uuid.UUID   `json:"product_id"`
	ProductName string      `json:"product_name"`
	Quantity    int         `json:"quantity"`
	UnitPrice   int64       `json:"unit_price"` // cents, display only
	Addons      []SaleAddon `json:"addons,omitempty"`
	Notes       string      `json:"notes,omitempty"`
}

// HeldItems is stored as a JSON column
type HeldItems []HeldItem

// Value serializes held items for storage
func (h HeldItems) Value() (driver.Value, error) {
	if len(h) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal([]HeldItem(h))
	return string(data), err
}

// Scan deserializes held items from storage
func (h *HeldItems) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, h)
	case string:
		return json.Unmarshal([]byte(v), h)
	}
	return errors.New("unsupported type for HeldItems")
}

// HeldOrder is a parked, unpaid cart. Holding never touches stock or the
// shift ledger; it is a staging mechanism only. Resume is destructive: the
// stored cart is handed back and the row is deleted in the same transaction.
type HeldOrder struct {
	ID              uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	OwnerSessionID  string         `gorm:"size:255;not null;index" json:"owner_session_id"`
	OrderNo         string         `gorm:"size:50" json:"order_number"`
	OrderType       enum.OrderType `gorm:"not null" json:"order_type"`
	TableNumber     *string        `gorm:"size:20" json:"table_number,omitempty"`
	CustomerName    *string        `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone   *string        `gorm:"size:50" json:"customer_phone,omitempty"`
	CustomerAddress *string        `gorm:"type:text" json:"customer_address,omitempty"`
	Items           HeldItems      `gorm:"type:jsonb" json:"items"`
	SubTotal        int64          `gorm:"not null;default:0" json:"-"` // cents, display only
	Discount        int64          `gorm:"not null;default:0" json:"-"` // cents, display only
	Total           int64          `gorm:"not null;default:0" json:"-"` // cents, display only
	HeldAt          time.Time      `gorm:"not null" json:"held_at"`
}

// BeforeCreate generates a UUID before creating a new held order
func (h *HeldOrder) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the HeldOrder model
func (HeldOrder) TableName() string {
	return "held_orders"
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (h HeldOrder) MarshalJSON() ([]byte, error) {
	type Alias HeldOrder
	return json.Marshal(&struct {
		Alias
		SubTotal float64 `json:"subtotal"`
		Discount float64 `json:"discount"`
		Total    float64 `json:"total"`
	}{
		Alias:    Alias(h),
		SubTotal: float64(h.SubTotal) / 100,
		Discount: float64(h.Discount) / 100,
		Total:    float64(h.Total) / 100,
	})
}
