package reorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bazaarlane/retail-ops/pkg/common"
)

// ReorderService defines the service operations the handler depends on
type ReorderService interface {
	Suggestions(ctx context.Context, windowDays int) ([]*Suggestion, error)
	Velocity(ctx context.Context, sku string, windowDays int) (*SalesVelocity, error)
}

// Handler handles HTTP requests for reorder suggestions
type Handler struct {
	service ReorderService
}

// NewHandler creates a new reorder handler
func NewHandler(service ReorderService) *Handler {
	return &Handler{service: service}
}

// GetSuggestions returns reorder suggestions for all active SKUs
func (h *Handler) GetSuggestions(c *gin.Context) {
	windowDays := parseWindowDays(c)

	suggestions, err := h.service.Suggestions(c.Request.Context(), windowDays)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "failed to compute suggestions")
		return
	}

	common.SuccessResponse(c, suggestions)
}

// GetVelocity returns the sales velocity for one SKU
func (h *Handler) GetVelocity(c *gin.Context) {
	sku := c.Param("sku")
	if sku == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "sku required")
		return
	}

	velocity, err := h.service.Velocity(c.Request.Context(), sku, parseWindowDays(c))
	if err != nil {
		common.ErrorResponse(c, http.StatusNotFound, "sku not found")
		return
	}

	common.SuccessResponse(c, velocity)
}

func parseWindowDays(c *gin.Context) int {
	if v := c.Query("window_days"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return DefaultWindowDays
}

// RegisterRoutes registers reorder routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	grp := rg.Group("/reorder")
	{
		grp.GET("/suggestions", h.GetSuggestions)
		grp.GET("/velocity/:sku", h.GetVelocity)
	}
}
