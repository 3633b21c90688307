package request

import "github.com/google/uuid"

// HeldItemRequest represents one cart line to park
type HeldItemRequest struct {
	ProductID   uuid.UUID          `json:"product_id" binding:"required"`
	ProductName string             `json:"product_name" binding:"required"`
	Quantity    int                `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64            `json:"unit_price" binding:"min=0"`
	Addons      []SaleAddonRequest `json:"addons"`
	Notes       string             `json:"notes"`
}

// HoldOrderDataRequest carries the order-level fields of a hold request
type HoldOrderDataRequest struct {
	OrderNumber     string  `json:"order_number"`
	OrderType       int     `json:"order_type" binding:"required,min=1,max=3"`
	TableNumber     *string `json:"table_number"`
	CustomerName    *string `json:"customer_name"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address"`
	SubTotal        float64 `json:"subtotal" binding:"min=0"`
	Discount        float64 `json:"discount" binding:"min=0"`
	Total           float64 `json:"total" binding:"min=0"`
}

// HoldOrderRequest represents a hold order request. The owner session
// identifies the terminal session that parked the cart.
type HoldOrderRequest struct {
	OwnerSessionID string               `json:"owner_session_id" binding:"required"`
	OrderData      HoldOrderDataRequest `json:"order_data" binding:"required"`
	Items          []HeldItemRequest    `json:"items" binding:"required,min=1,dive"`
}
