package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/application/service"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/request"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/response"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

// HeldOrderHandler handles held order HTTP requests
type HeldOrderHandler struct {
	heldOrderService *service.HeldOrderService
}

// NewHeldOrderHandler creates a new held order handler
func NewHeldOrderHandler(heldOrderService *service.HeldOrderService) *HeldOrderHandler {
	return &HeldOrderHandler{heldOrderService: heldOrderService}
}

// Hold handles parking a cart
func (h *HeldOrderHandler) Hold(c *gin.Context) {
	var req request.HoldOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.HeldItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		addons := make([]service.SaleAddonInput, 0, len(item.Addons))
		for _, a := range item.Addons {
			addons = append(addons, service.SaleAddonInput{Name: a.Name, Price: a.Price})
		}
		items = append(items, service.HeldItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Addons:      addons,
			Notes:       item.Notes,
		})
	}

	order, err := h.heldOrderService.Hold(c.Request.Context(), &service.HoldOrderInput{
		OwnerSessionID:  req.OwnerSessionID,
		OrderNo:         req.OrderData.OrderNumber,
		OrderType:       enum.OrderType(req.OrderData.OrderType),
		TableNumber:     req.OrderData.TableNumber,
		CustomerName:    req.OrderData.CustomerName,
		CustomerPhone:   req.OrderData.CustomerPhone,
		CustomerAddress: req.OrderData.CustomerAddress,
		SubTotal:        req.OrderData.SubTotal,
		Discount:        req.OrderData.Discount,
		Total:           req.OrderData.Total,
		Items:           items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order held successfully", order)
}

// List handles listing the terminal session's parked carts
func (h *HeldOrderHandler) List(c *gin.Context) {
	ownerSessionID := c.Query("owner_session_id")

	orders, err := h.heldOrderService.List(c.Request.Context(), ownerSessionID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held orders retrieved successfully", orders)
}

// Resume hands a parked cart back and removes it from the store
func (h *HeldOrderHandler) Resume(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid held order ID")
		return
	}

	order, err := h.heldOrderService.Resume(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held order resumed", gin.H{"order": order})
}

// Delete discards a parked cart
func (h *HeldOrderHandler) Delete(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid held order ID")
		return
	}

	if err := h.heldOrderService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Held order deleted", nil)
}
