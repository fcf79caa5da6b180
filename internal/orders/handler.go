package orders

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarlane/retail-ops/pkg/common"
	"github.com/bazaarlane/retail-ops/pkg/pagination"
	"github.com/bazaarlane/retail-ops/pkg/validation"
)

// OrderService defines the service operations the handler depends on
type OrderService interface {
	CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*Order, int64, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, req *UpdateStatusRequest) error
}

// Handler handles HTTP requests for orders
type Handler struct {
	service OrderService
}

// NewHandler creates a new order handler
func NewHandler(service OrderService) *Handler {
	return &Handler{service: service}
}

// CreateOrder creates a new order
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	order, err := h.service.CreateOrder(c.Request.Context(), &req)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to create order")
		return
	}

	common.CreatedResponse(c, order)
}

// GetOrder returns an order by ID
func (h *Handler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.service.GetOrder(c.Request.Context(), orderID)
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, "order not found")
		return
	}

	common.SuccessResponse(c, order)
}

// ListOrders returns a page of orders
func (h *Handler) ListOrders(c *gin.Context) {
	limit, offset := pagination.ParseParams(c)

	result, total, err := h.service.ListOrders(c.Request.Context(), limit, offset)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to list orders")
		return
	}

	common.PaginatedResponse(c, result, total, limit, offset)
}

// UpdateStatus updates an order's status
func (h *Handler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	if err := h.service.UpdateStatus(c.Request.Context(), orderID, &req); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to update order status")
		return
	}

	common.SuccessResponse(c, gin.H{"updated": true})
}

// RegisterRoutes registers order routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	grp := rg.Group("/orders")
	{
		grp.GET("", h.ListOrders)
		grp.GET("/:id", h.GetOrder)
		grp.POST("", authRequired, h.CreateOrder)
		grp.PATCH("/:id/status", authRequired, h.UpdateStatus)
	}
}
