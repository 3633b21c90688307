package request

// OpenShiftRequest represents an open shift request
type OpenShiftRequest struct {
	OpeningBalance float64 `json:"opening_balance" binding:"min=0"`
}

// CloseShiftRequest represents a close shift request
type CloseShiftRequest struct {
	PhysicalCashCounted float64 `json:"physical_cash_counted" binding:"min=0"`
}

// UpdateKitchenStatusRequest represents a kitchen status update request
type UpdateKitchenStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
