package fraud

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bazaarlane/retail-ops/pkg/common"
	"github.com/bazaarlane/retail-ops/pkg/validation"
)

// FraudService defines the service operations the handler depends on
type FraudService interface {
	AssessOrder(ctx context.Context, orderID uuid.UUID) (*Assessment, error)
	AssessOrders(ctx context.Context, ids []uuid.UUID) (*BatchReport, error)
	ProfileCustomer(ctx context.Context, phone, email string) (*CustomerProfile, error)
	GetAssessment(ctx context.Context, orderID uuid.UUID) (*StoredAssessment, error)
	Statistics(ctx context.Context, days int) (*AssessmentStatistics, error)
}

// Handler handles HTTP requests for fraud assessment
type Handler struct {
	service FraudService
}

// NewHandler creates a new fraud handler
func NewHandler(service FraudService) *Handler {
	return &Handler{service: service}
}

// AssessOrder runs a fraud assessment for a single order
func (h *Handler) AssessOrder(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	assessment, err := h.service.AssessOrder(c.Request.Context(), req.OrderID)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to assess order")
		return
	}

	common.SuccessResponse(c, assessment)
}

// GetAssessment returns the last persisted assessment for an order
func (h *Handler) GetAssessment(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "invalid order id")
		return
	}

	stored, err := h.service.GetAssessment(c.Request.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoAssessment):
			common.ErrorResponse(c, http.StatusNotFound, "order has not been assessed")
		case errors.Is(err, ErrOrderNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "order not found")
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "failed to load assessment")
		}
		return
	}

	common.SuccessResponse(c, stored)
}

// ProfileCustomer returns the customer-level risk profile
func (h *Handler) ProfileCustomer(c *gin.Context) {
	phone := c.Query("phone")
	email := c.Query("email")
	if phone == "" && email == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "phone or email required")
		return
	}

	profile, err := h.service.ProfileCustomer(c.Request.Context(), phone, email)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to profile customer")
		return
	}

	common.SuccessResponse(c, profile)
}

// BatchAssess runs fraud assessments for a set of orders
func (h *Handler) BatchAssess(c *gin.Context) {
	var req BatchAssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, validation.BindErrorMessage(err))
		return
	}

	report, err := h.service.AssessOrders(c.Request.Context(), req.OrderIDs)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to assess batch")
		return
	}

	common.SuccessResponse(c, report)
}

// Statistics returns aggregate assessment statistics
func (h *Handler) Statistics(c *gin.Context) {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			common.ErrorResponse(c, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = parsed
	}

	stats, err := h.service.Statistics(c.Request.Context(), days)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to load statistics")
		return
	}

	common.SuccessResponse(c, stats)
}

// RegisterRoutes registers fraud routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	grp := rg.Group("/fraud")
	{
		grp.POST("/assess", authRequired, h.AssessOrder)
		grp.POST("/batch", authRequired, h.BatchAssess)
		grp.GET("/orders/:id/assessment", h.GetAssessment)
		grp.GET("/customers/profile", h.ProfileCustomer)
		grp.GET("/statistics", h.Statistics)
	}
}
