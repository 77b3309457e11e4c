package handler

import (
	"errors"

	"github.com/fadhilmp/usahaku-api/internal/application/service"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/dto/request"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/dto/response"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProductionHandler handles production/assembly HTTP requests
type ProductionHandler struct {
	inventoryService *service.InventoryService
}

// NewProductionHandler creates a new production handler
func NewProductionHandler(inventoryService *service.InventoryService) *ProductionHandler {
	return &ProductionHandler{inventoryService: inventoryService}
}

// Create handles a production order. An insufficient-stock outcome responds
// with a one-line summary; the per-component shortfall list is in the
// service log.
func (h *ProductionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	finishedID, err := uuid.Parse(req.FinishedProductID)
	if err != nil {
		response.BadRequest(c, "Invalid finished product ID")
		return
	}

	input := service.ProductionOrderInput{
		UserID:            *userID,
		FinishedProductID: finishedID,
		OutputQuantity:    req.OutputQty,
		Notes:             req.Notes,
	}
	for _, comp := range req.Components {
		compID, err := uuid.Parse(comp.ProductID)
		if err != nil {
			response.BadRequest(c, "Invalid component product ID")
			return
		}
		input.Components = append(input.Components, service.StockDemand{
			ProductID: compID,
			Quantity:  comp.Qty,
		})
	}

	record, err := h.inventoryService.ApplyProduction(c.Request.Context(), input)
	if err != nil {
		var insufficient *service.InsufficientStockError
		if errors.As(err, &insufficient) {
			c.JSON(422, gin.H{
				"success": false,
				"error":   insufficient.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.Created(c, "Production recorded successfully", record)
}

// Get handles retrieving one production record
func (h *ProductionHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid production record ID")
		return
	}

	record, err := h.inventoryService.GetProduction(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Production record retrieved successfully", record)
}

// List handles listing production records
func (h *ProductionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.ListFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage}

	result, err := h.inventoryService.ListProductions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Production records retrieved successfully", result)
}
