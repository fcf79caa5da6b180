package reorder

import (
	"context"
	"time"
)

// InventoryRepository defines the data operations the reorder service
// depends on
type InventoryRepository interface {
	GetInventoryItems(ctx context.Context) ([]*InventoryItem, error)
	GetInventoryItem(ctx context.Context, sku string) (*InventoryItem, error)
	GetUnitsSold(ctx context.Context, since time.Time) (map[string]int, error)
}
