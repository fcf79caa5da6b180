package orders

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the data operations the order service depends on
type OrderRepository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*Order, int64, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus, verification VerificationStatus, notes string) error
}
