package request

import "github.com/google/uuid"

// SaleAddonRequest is a priced modifier on a cart line
type SaleAddonRequest struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

// SaleItemRequest represents one cart line in a create sale request. The
// product name and unit price are accepted for display echo only; commit
// pricing always comes from the catalog.
type SaleItemRequest struct {
	ProductID   uuid.UUID          `json:"product_id" binding:"required"`
	ProductName string             `json:"product_name"`
	Quantity    int                `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64            `json:"unit_price"`
	Addons      []SaleAddonRequest `json:"addons"`
	Notes       *string            `json:"notes"`
}

// SaleDataRequest carries the order-level fields of a create sale request
type SaleDataRequest struct {
	OrderNumber      string     `json:"order_number"`
	OrderType        int        `json:"order_type" binding:"required,min=1,max=3"`
	TableNumber      *string    `json:"table_number"`
	CustomerName     *string    `json:"customer_name"`
	CustomerPhone    *string    `json:"customer_phone"`
	CustomerAddress  *string    `json:"customer_address"`
	SubTotal         float64    `json:"subtotal"`
	Discount         float64    `json:"discount" binding:"min=0"`
	DeliveryFee      float64    `json:"delivery_fee" binding:"min=0"`
	Total            float64    `json:"total"`
	PaymentMethod    int        `json:"payment_method" binding:"required,min=1,max=5"`
	AmountReceived   *float64   `json:"amount_received"`
	ChangeAmount     *float64   `json:"change_amount"`
	FocReason        *string    `json:"foc_reason"`
	CreditCustomerID *uuid.UUID `json:"credit_customer_id"`
	Notes            *string    `json:"notes"`
}

// CreateSaleRequest represents a create sale request
type CreateSaleRequest struct {
	SaleData  SaleDataRequest   `json:"sale_data" binding:"required"`
	SaleItems []SaleItemRequest `json:"sale_items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	Search        string `form:"search"`
	ShiftID       string `form:"shift_id"`
	StaffID       string `form:"staff_id"`
	OrderType     int    `form:"order_type"`
	PaymentMethod int    `form:"payment_method"`
	KitchenStatus string `form:"kitchen_status"`
	StartDate     string `form:"start_date"`
	EndDate       string `form:"end_date"`
	SortBy        string `form:"sort_by"`
	SortOrder     string `form:"sort_order"`
	Page          int    `form:"page"`
	PerPage       int    `form:"per_page"`
}
