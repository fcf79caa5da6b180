package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlane/retail-ops/pkg/validation"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int64, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *UpdateStatusRequest) error {
	args := m.Called(ctx, orderID, req)
	return args.Error(0)
}

func setupOrderRouter(t *testing.T, service OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	require.NoError(t, validation.RegisterCustomValidators())
	router := gin.New()
	handler := NewHandler(service)
	passthrough := func(c *gin.Context) { c.Next() }
	handler.RegisterRoutes(router.Group("/api/v1"), passthrough)
	return router
}

func TestCreateOrderEndpoint(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	created := &Order{ID: uuid.New(), OrderNumber: "ORD-3001", Status: StatusPending}
	service.On("CreateOrder", mock.Anything, mock.MatchedBy(func(req *CreateOrderRequest) bool {
		return req.OrderNumber == "ORD-3001"
	})).Return(created, nil)

	body, _ := json.Marshal(CreateOrderRequest{
		OrderNumber:  "ORD-3001",
		CustomerName: "Bilal Khan",
		Phone:        "0301234567",
		Address:      "House 9, F-8",
		City:         "Islamabad",
		TotalAmount:  2500,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateOrderEndpointValidation(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	// Missing required fields.
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders", bytes.NewReader([]byte(`{"order_number":"ORD-1"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CustomerName is required")
	service.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestGetOrderEndpoint(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	order := &Order{ID: uuid.New(), OrderNumber: "ORD-3002"}
	service.On("GetOrder", mock.Anything, order.ID).Return(order, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool  `json:"success"`
		Data    Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORD-3002", resp.Data.OrderNumber)
}

func TestGetOrderEndpointNotFound(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	orderID := uuid.New()
	service.On("GetOrder", mock.Anything, orderID).Return(nil, errors.New("order not found"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+orderID.String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrdersEndpoint(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	list := []*Order{{ID: uuid.New()}, {ID: uuid.New()}}
	service.On("ListOrders", mock.Anything, 10, 20).Return(list, int64(42), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders?limit=10&offset=20", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":42`)
}

func TestUpdateStatusEndpoint(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	orderID := uuid.New()
	service.On("UpdateStatus", mock.Anything, orderID, mock.MatchedBy(func(req *UpdateStatusRequest) bool {
		return req.Status == StatusDelivered
	})).Return(nil)

	body, _ := json.Marshal(UpdateStatusRequest{Status: StatusDelivered})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+orderID.String()+"/status", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateStatusEndpointRejectsUnknownStatus(t *testing.T) {
	service := new(MockOrderService)
	router := setupOrderRouter(t, service)

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/"+uuid.NewString()+"/status",
		bytes.NewReader([]byte(`{"status":"shipped"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "must be a valid order status")
	service.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
