package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service handles order business logic
type Service struct {
	repo OrderRepository
}

// NewService creates a new order service
func NewService(repo OrderRepository) *Service {
	return &Service{repo: repo}
}

// CreateOrder creates a new order from a validated request
func (s *Service) CreateOrder(ctx context.Context, req *CreateOrderRequest) (*Order, error) {
	now := time.Now()
	order := &Order{
		ID:                 uuid.New(),
		OrderNumber:        req.OrderNumber,
		CustomerName:       req.CustomerName,
		Phone:              req.Phone,
		Email:              req.Email,
		Address:            req.Address,
		City:               req.City,
		TotalAmount:        req.TotalAmount,
		Status:             StatusPending,
		VerificationStatus: VerificationPending,
		Notes:              req.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return order, nil
}

// GetOrder retrieves an order by ID
func (s *Service) GetOrder(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	return s.repo.GetOrderByID(ctx, orderID)
}

// ListOrders retrieves a page of orders ordered by recency
func (s *Service) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int64, error) {
	return s.repo.ListOrders(ctx, limit, offset)
}

// UpdateStatus updates an order's lifecycle and verification status
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req *UpdateStatusRequest) error {
	if !IsValidStatus(req.Status) {
		return fmt.Errorf("invalid order status: %s", req.Status)
	}

	return s.repo.UpdateOrderStatus(ctx, orderID, req.Status, req.VerificationStatus, req.Notes)
}
