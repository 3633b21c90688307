package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kmuteti/restopos-api/internal/application/service"
	"github.com/kmuteti/restopos-api/internal/domain/enum"
	"github.com/kmuteti/restopos-api/internal/domain/repository"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/request"
	"github.com/kmuteti/restopos-api/internal/presentation/http/dto/response"
	"github.com/kmuteti/restopos-api/pkg/pagination"
	"github.com/kmuteti/restopos-api/pkg/utils"
)

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Create handles the create sale request. The route requires an
// Idempotency-Key header; a retried request replays the stored response
// instead of committing twice.
func (h *SaleHandler) Create(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Unauthorized(c, "Staff not authenticated")
		return
	}

	var req request.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.SaleItemInput, 0, len(req.SaleItems))
	for _, item := range req.SaleItems {
		addons := make([]service.SaleAddonInput, 0, len(item.Addons))
		for _, a := range item.Addons {
			addons = append(addons, service.SaleAddonInput{Name: a.Name, Price: a.Price})
		}
		items = append(items, service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Addons:    addons,
			Notes:     item.Notes,
		})
	}

	sale, err := h.saleService.Commit(c.Request.Context(), &service.CommitSaleInput{
		StaffID:          *staffID,
		OrderType:        enum.OrderType(req.SaleData.OrderType),
		TableNumber:      req.SaleData.TableNumber,
		CustomerName:     req.SaleData.CustomerName,
		CustomerPhone:    req.SaleData.CustomerPhone,
		CustomerAddress:  req.SaleData.CustomerAddress,
		Discount:         req.SaleData.Discount,
		DeliveryFee:      req.SaleData.DeliveryFee,
		PaymentMethod:    enum.PaymentMethod(req.SaleData.PaymentMethod),
		AmountReceived:   req.SaleData.AmountReceived,
		FocReason:        req.SaleData.FocReason,
		CreditCustomerID: req.SaleData.CreditCustomerID,
		Notes:            req.SaleData.Notes,
		Items:            items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale committed successfully", gin.H{
		"receipt_number": sale.ReceiptNo,
		"order_number":   sale.OrderNo,
		"sale":           sale,
	})
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	if filter.ShiftID != "" {
		if shiftID, err := utils.ParseUUID(filter.ShiftID); err == nil {
			params.ShiftID = &shiftID
		}
	}
	if filter.StaffID != "" {
		if staffID, err := utils.ParseUUID(filter.StaffID); err == nil {
			params.StaffID = &staffID
		}
	}
	if filter.OrderType > 0 {
		orderType := enum.OrderType(filter.OrderType)
		params.OrderType = &orderType
	}
	if filter.PaymentMethod > 0 {
		method := enum.PaymentMethod(filter.PaymentMethod)
		params.PaymentMethod = &method
	}
	if filter.KitchenStatus != "" {
		if status, ok := enum.ParseKitchenStatus(filter.KitchenStatus); ok {
			params.KitchenStatus = &status
		}
	}
	if filter.StartDate != "" {
		if start, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &start
		}
	}
	if filter.EndDate != "" {
		if end, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &end
		}
	}

	sales, total, err := h.saleService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(sales,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Receipt handles the receipt projection for a committed sale
func (h *SaleHandler) Receipt(c *gin.Context) {
	id, err := utils.ParseUUID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	receipt, err := h.saleService.GetReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// ReceiptByNumber handles a receipt reprint lookup by its printed number
func (h *SaleHandler) ReceiptByNumber(c *gin.Context) {
	receiptNo := c.Param("receiptNo")
	if receiptNo == "" {
		response.BadRequest(c, "Invalid receipt number")
		return
	}

	receipt, err := h.saleService.GetReceiptByNumber(c.Request.Context(), receiptNo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}
