package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/application/service"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/request"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/response"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

// KitchenHandler handles kitchen display board HTTP requests
type KitchenHandler struct {
	kitchenService *service.KitchenService
}

// NewKitchenHandler creates a new kitchen handler
func NewKitchenHandler(kitchenService *service.KitchenService) *KitchenHandler {
	return &KitchenHandler{kitchenService: kitchenService}
}

// SetStatus moves a ticket along the preparation lifecycle
func (h *KitchenHandler) SetStatus(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	var req request.UpdateKitchenStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	status, ok := enum.ParseKitchenStatus(req.Status)
	if !ok {
		response.BadRequest(c, "Unknown kitchen status: "+req.Status)
		return
	}

	sale, err := h.kitchenService.SetStatus(c.Request.Context(), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen status updated", gin.H{
		"sale_id":        sale.ID,
		"kitchen_status": sale.KitchenStatus,
	})
}

// Board returns the active tickets for the kitchen display
func (h *KitchenHandler) Board(c *gin.Context) {
	board, err := h.kitchenService.Board(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Kitchen board retrieved", board)
}
