package apperror

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error for a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Common errors
var (
	ErrNotFound           = &AppError{Code: http.StatusNotFound, Message: "Resource not found"}
	ErrUnauthorized       = &AppError{Code: http.StatusUnauthorized, Message: "Unauthorized"}
	ErrForbidden          = &AppError{Code: http.StatusForbidden, Message: "Forbidden"}
	ErrBadRequest         = &AppError{Code: http.StatusBadRequest, Message: "Bad request"}
	ErrInternalServer     = &AppError{Code: http.StatusInternalServerError, Message: "Internal server error"}
	ErrConflict           = &AppError{Code: http.StatusConflict, Message: "Resource already exists"}
	ErrInvalidCredentials = &AppError{Code: http.StatusUnauthorized, Message: "Invalid username or password"}
	ErrTokenExpired       = &AppError{Code: http.StatusUnauthorized, Message: "Token has expired"}
	ErrInvalidToken       = &AppError{Code: http.StatusUnauthorized, Message: "Invalid token"}
)

// Sale/shift/kitchen errors. Every rejection a terminal can see carries a
// structured reason so the UI can render an actionable message.
var (
	ErrNoActiveShift         = &AppError{Code: http.StatusConflict, Message: "No active shift for this staff member; open a shift before selling"}
	ErrShiftAlreadyActive    = &AppError{Code: http.StatusConflict, Message: "Staff member already has an open shift"}
	ErrShiftNotFound         = &AppError{Code: http.StatusNotFound, Message: "Shift not found"}
	ErrShiftClosed           = &AppError{Code: http.StatusConflict, Message: "Shift is already closed"}
	ErrInsufficientPayment   = &AppError{Code: http.StatusUnprocessableEntity, Message: "Amount received is less than the sale total"}
	ErrMissingFocReason      = &AppError{Code: http.StatusUnprocessableEntity, Message: "FOC sales require a reason"}
	ErrMissingCreditCustomer = &AppError{Code: http.StatusUnprocessableEntity, Message: "Credit sales require a customer"}
	ErrInvalidTransition     = &AppError{Code: http.StatusConflict, Message: "Invalid kitchen status transition"}
	ErrCommitFailed          = &AppError{Code: http.StatusInternalServerError, Message: "Sale could not be committed; no changes were made"}
)

// NewAppError creates a new application error
func NewAppError(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a new validation error
func NewValidationError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Errors:  fieldErrors,
	}
}

// NewMissingMetadataError reports the order-type fields the request lacked
func NewMissingMetadataError(fieldErrors []FieldError) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Missing order metadata",
		Errors:  fieldErrors,
	}
}

// NewOutOfStockError names the products that could not be decremented
func NewOutOfStockError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewNotFoundError creates a not found error with a custom message
func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:    http.StatusNotFound,
		Message: resource + " not found",
	}
}

// NewConflictError creates a conflict error with a custom message
func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error with a custom message
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    http.StatusBadRequest,
		Message: message,
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	}
}
