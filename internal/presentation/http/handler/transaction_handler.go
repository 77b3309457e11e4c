package handler

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/application/service"
	"github.com/fadhilmp/usahaku-api/internal/domain/enum"
	"github.com/fadhilmp/usahaku-api/internal/domain/repository"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/dto/request"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/dto/response"
	"github.com/fadhilmp/usahaku-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Create handles creating a new transaction
func (h *TransactionHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateTransactionInput{
		UserID:             *userID,
		Type:               req.Type,
		Category:           req.Category,
		Items:              make([]service.TransactionItemInput, 0, len(req.Items)),
		DiscountMode:       req.DiscountMode,
		DiscountValue:      req.DiscountValue,
		TaxEnabled:         req.TaxEnabled,
		WithholdingPreset:  req.WithholdingPreset,
		WithholdingPercent: req.WithholdingPercent,
		PaymentMethod:      req.PaymentMethod,
		PaymentStatus:      req.PaymentStatus,
		DownPayment:        req.DownPayment,
		DueDate:            req.DueDate,
		Notes:              req.Notes,
	}
	if req.TransactionDate != nil {
		input.TransactionDate = *req.TransactionDate
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.TransactionItemInput{
			ProductID: parseOptionalUUID(item.ProductID),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Unit:      item.Unit,
			UnitPrice: item.UnitPrice,
		})
	}
	for _, fee := range req.Fees {
		input.Fees = append(input.Fees, service.FeeInput{
			Name:   fee.Name,
			Amount: fee.Amount,
		})
	}

	result, err := h.transactionService.CreateTransaction(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", result)
}

// Get handles retrieving a single transaction with its items and fees
func (h *TransactionHandler) Get(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	tx, err := h.transactionService.GetTransaction(c.Request.Context(), *userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", tx)
}

// List handles listing transactions
func (h *TransactionHandler) List(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var filter request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search:    filter.Search,
		Category:  filter.Category,
		SortBy:    filter.SortBy,
		SortOrder: filter.SortOrder,
	}

	switch filter.Type {
	case "Income":
		t := enum.TransactionTypeIncome
		params.Type = &t
	case "Expense":
		t := enum.TransactionTypeExpense
		params.Type = &t
	}

	switch filter.PaymentStatus {
	case "Paid":
		s := enum.PaymentStatusPaid
		params.PaymentStatus = &s
	case "Deferred":
		s := enum.PaymentStatusDeferred
		params.PaymentStatus = &s
	}

	if filter.StartDate != "" {
		if d, err := time.Parse("2006-01-02", filter.StartDate); err == nil {
			params.StartDate = &d
		}
	}
	if filter.EndDate != "" {
		if d, err := time.Parse("2006-01-02", filter.EndDate); err == nil {
			params.EndDate = &d
		}
	}

	result, err := h.transactionService.ListTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// ListDue handles listing deferred transactions with an outstanding balance
func (h *TransactionHandler) ListDue(c *gin.Context) {
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

	result, err := h.transactionService.GetDueTransactions(c.Request.Context(), *userID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Due transactions retrieved successfully", result)
}

// PayRemaining handles recording a payment against a deferred transaction
func (h *TransactionHandler) PayRemaining(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.PayRemainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tx, err := h.transactionService.PayRemaining(c.Request.Context(), *userID, id, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", tx)
}

// Delete handles deleting a transaction
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.transactionService.DeleteTransaction(c.Request.Context(), *userID, id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
