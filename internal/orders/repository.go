package orders

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles order data operations
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ OrderRepository = (*Repository)(nil)

// NewRepository creates a new order repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, order_number, customer_name, phone, email, address, city,
       total_amount, status, verification_status, notes, created_at, updated_at`

func scanOrder(row interface{ Scan(dest ...any) error }) (*Order, error) {
	var o Order
	var email, notes sql.NullString

	err := row.Scan(
		&o.ID,
		&o.OrderNumber,
		&o.CustomerName,
		&o.Phone,
		&email,
		&o.Address,
		&o.City,
		&o.TotalAmount,
		&o.Status,
		&o.VerificationStatus,
		&notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		o.Email = email.String
	}
	if notes.Valid {
		o.Notes = notes.String
	}

	return &o, nil
}

// CreateOrder inserts a new order
func (r *Repository) CreateOrder(ctx context.Context, o *Order) error {
	query := `
		INSERT INTO orders (
			id, order_number, customer_name, phone, email, address, city,
			total_amount, status, verification_status, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7, $8, $9, $10, NULLIF($11, ''), $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		o.ID,
		o.OrderNumber,
		o.CustomerName,
		o.Phone,
		o.Email,
		o.Address,
		o.City,
		o.TotalAmount,
		o.Status,
		o.VerificationStatus,
		o.Notes,
		o.CreatedAt,
		o.UpdatedAt,
	)

	return err
}

// GetOrderByID retrieves an order by ID
func (r *Repository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(r.db.QueryRow(ctx, query, orderID))
}

// ListOrders retrieves orders ordered by recency with total count
func (r *Repository) ListOrders(ctx context.Context, limit, offset int) ([]*Order, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result := make([]*Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			continue
		}
		result = append(result, o)
	}

	return result, total, nil
}

// UpdateOrderStatus updates the lifecycle status of an order
func (r *Repository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus, verification VerificationStatus, notes string) error {
	query := `
		UPDATE orders
		SET status = $2,
		    verification_status = COALESCE(NULLIF($3, ''), verification_status),
		    notes = COALESCE(NULLIF($4, ''), notes),
		    updated_at = $5
		WHERE id = $1
	`

	_, err := r.db.Exec(ctx, query, orderID, status, string(verification), notes, time.Now())
	return err
}
