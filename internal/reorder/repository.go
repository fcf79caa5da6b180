package reorder

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles inventory and sales data operations
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ InventoryRepository = (*Repository)(nil)

// NewRepository creates a new reorder repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetInventoryItems retrieves all active inventory items
func (r *Repository) GetInventoryItems(ctx context.Context) ([]*InventoryItem, error) {
	query := `
		SELECT sku, name, on_hand, on_order, lead_time_days, review_period_days, safety_stock, updated_at
		FROM inventory_items
		WHERE is_active = true
		ORDER BY sku
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*InventoryItem, 0)
	for rows.Next() {
		var item InventoryItem
		err := rows.Scan(
			&item.SKU,
			&item.Name,
			&item.OnHand,
			&item.OnOrder,
			&item.LeadTimeDays,
			&item.ReviewPeriodDays,
			&item.SafetyStock,
			&item.UpdatedAt,
		)
		if err != nil {
			continue
		}
		items = append(items, &item)
	}

	return items, nil
}

// GetInventoryItem retrieves one inventory item by SKU
func (r *Repository) GetInventoryItem(ctx context.Context, sku string) (*InventoryItem, error) {
	query := `
		SELECT sku, name, on_hand, on_order, lead_time_days, review_period_days, safety_stock, updated_at
		FROM inventory_items
		WHERE sku = $1
	`

	var item InventoryItem
	err := r.db.QueryRow(ctx, query, sku).Scan(
		&item.SKU,
		&item.Name,
		&item.OnHand,
		&item.OnOrder,
		&item.LeadTimeDays,
		&item.ReviewPeriodDays,
		&item.SafetyStock,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// GetUnitsSold returns per-SKU units sold since the given time
func (r *Repository) GetUnitsSold(ctx context.Context, since time.Time) (map[string]int, error) {
	query := `
		SELECT sku, COALESCE(SUM(quantity), 0) AS units
		FROM sales_lines
		WHERE sold_at >= $1
		GROUP BY sku
	`

	rows, err := r.db.Query(ctx, query, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sold := make(map[string]int)
	for rows.Next() {
		var sku string
		var units int
		if err := rows.Scan(&sku, &units); err != nil {
			continue
		}
		sold[sku] = units
	}

	return sold, nil
}
