package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/application/service"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/request"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/response"
)

// ShiftHandler handles shift ledger HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open starts a shift for the authenticated staff member
func (h *ShiftHandler) Open(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), &service.OpenShiftInput{
		StaffID:        *staffID,
		OpeningBalance: req.OpeningBalance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened", shift)
}

// Current returns the authenticated staff member's open shift
func (h *ShiftHandler) Current(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	shift, err := h.shiftService.Active(c.Request.Context(), *staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active shift retrieved", shift)
}

// Close freezes the open shift with the counted drawer cash and returns the
// reconciliation summary
func (h *ShiftHandler) Close(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	summary, err := h.shiftService.Close(c.Request.Context(), &service.CloseShiftInput{
		StaffID:             *staffID,
		PhysicalCashCounted: req.PhysicalCashCounted,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed", summary)
}

// List returns the authenticated staff member's shift history
func (h *ShiftHandler) List(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	includeClosed := c.DefaultQuery("include_closed", "true") == "true"

	shifts, err := h.shiftService.List(c.Request.Context(), *staffID, includeClosed)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shifts retrieved", shifts)
}
