package fraud

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// OrderStore defines the data operations the fraud service depends on
type OrderStore interface {
	GetOrderByID(ctx context.Context, orderID uuid.UUID) (*orders.Order, error)
	GetOrdersByContact(ctx context.Context, phone, email string, excludeID uuid.UUID) ([]*orders.Order, error)
	GetRecentOrders(ctx context.Context, limit int) ([]*orders.Order, error)
	GetOrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]*orders.Order, error)
	GetPendingOrders(ctx context.Context, limit int) ([]*orders.Order, error)
	SaveAssessment(ctx context.Context, stored *StoredAssessment) error
	GetAssessment(ctx context.Context, orderID uuid.UUID) (*StoredAssessment, error)
	GetAssessmentStatistics(ctx context.Context, since time.Time) (*AssessmentStatistics, error)
}

// EventPublisher publishes fraud alert events to downstream consumers
type EventPublisher interface {
	PublishAlert(ctx context.Context, event *AlertEvent) error
}

// WindowCache caches the serialized recent-order window between
// assessments. The Redis client wrapper satisfies it.
type WindowCache interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}
