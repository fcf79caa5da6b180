package fraud

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// ErrNoAssessment is returned when an order has never been assessed
var ErrNoAssessment = errors.New("order has no risk assessment")

// ErrOrderNotFound is returned when the order row does not exist
var ErrOrderNotFound = errors.New("order not found")

// Repository handles fraud assessment data operations
type Repository struct {
	db *pgxpool.Pool
}

// Ensure the concrete repository satisfies the service's requirements.
var _ OrderStore = (*Repository)(nil)

// NewRepository creates a new fraud repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const orderColumns = `id, order_number, customer_name, phone, email, address, city,
       total_amount, status, verification_status, notes, created_at, updated_at`

// riskDetails is the JSONB payload persisted alongside the score
type riskDetails struct {
	Flags    []string     `json:"flags"`
	Patterns []string     `json:"patterns"`
	Actions  []AutoAction `json:"actions"`
}

func scanOrderRow(row interface{ Scan(dest ...any) error }) (*orders.Order, error) {
	var o orders.Order
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

func (r *Repository) queryOrders(ctx context.Context, query string, args ...any) ([]*orders.Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*orders.Order, 0)
	for rows.Next() {
		o, err := scanOrderRow(rows)
		if err != nil {
			continue
		}
		result = append(result, o)
	}

	return result, nil
}

// GetOrderByID retrieves an order by ID
func (r *Repository) GetOrderByID(ctx context.Context, orderID uuid.UUID) (*orders.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrderRow(r.db.QueryRow(ctx, query, orderID))
}

// GetOrdersByContact retrieves all orders matching the given phone or
// email, excluding the order under assessment
func (r *Repository) GetOrdersByContact(ctx context.Context, phone, email string, excludeID uuid.UUID) ([]*orders.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id != $1
		  AND ((phone = $2 AND $2 != '') OR (LOWER(email) = LOWER($3) AND $3 != ''))
		ORDER BY created_at DESC
	`
	return r.queryOrders(ctx, query, excludeID, phone, email)
}

// GetRecentOrders retrieves the most recent orders system-wide
func (r *Repository) GetRecentOrders(ctx context.Context, limit int) ([]*orders.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC LIMIT $1`
	return r.queryOrders(ctx, query, limit)
}

// GetOrdersByIDs retrieves the given orders
func (r *Repository) GetOrdersByIDs(ctx context.Context, ids []uuid.UUID) ([]*orders.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = ANY($1) ORDER BY created_at DESC`
	return r.queryOrders(ctx, query, ids)
}

// GetPendingOrders retrieves orders awaiting confirmation
func (r *Repository) GetPendingOrders(ctx context.Context, limit int) ([]*orders.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE status = 'pending' ORDER BY created_at DESC LIMIT $1`
	return r.queryOrders(ctx, query, limit)
}

// SaveAssessment persists an assessment onto the order record,
// overwriting any previous one
func (r *Repository) SaveAssessment(ctx context.Context, stored *StoredAssessment) error {
	detailsJSON, err := json.Marshal(riskDetails{
		Flags:    stored.Flags,
		Patterns: stored.Patterns,
		Actions:  stored.Actions,
	})
	if err != nil {
		return err
	}

	query := `
		UPDATE orders
		SET risk_score = $2,
		    risk_level = $3,
		    risk_details = $4,
		    auto_blocked = $5,
		    auto_block_reason = NULLIF($6, ''),
		    risk_assessed_at = $7,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query,
		stored.OrderID,
		stored.RiskScore,
		stored.RiskLevel,
		detailsJSON,
		stored.AutoBlocked,
		stored.AutoBlockReason,
		stored.AssessedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", stored.OrderID, ErrOrderNotFound)
	}

	return nil
}

// GetAssessment retrieves the last persisted assessment for an order
func (r *Repository) GetAssessment(ctx context.Context, orderID uuid.UUID) (*StoredAssessment, error) {
	query := `
		SELECT risk_score, risk_level, risk_details, auto_blocked, auto_block_reason, risk_assessed_at
		FROM orders
		WHERE id = $1
	`

	var score sql.NullInt32
	var level, reason sql.NullString
	var detailsJSON []byte
	var autoBlocked sql.NullBool
	var assessedAt sql.NullTime

	err := r.db.QueryRow(ctx, query, orderID).Scan(
		&score,
		&level,
		&detailsJSON,
		&autoBlocked,
		&reason,
		&assessedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrOrderNotFound)
		}
		return nil, err
	}

	if !score.Valid {
		return nil, ErrNoAssessment
	}

	stored := &StoredAssessment{
		OrderID:   orderID,
		RiskScore: int(score.Int32),
		RiskLevel: RiskLevel(level.String),
	}
	if autoBlocked.Valid {
		stored.AutoBlocked = autoBlocked.Bool
	}
	if reason.Valid {
		stored.AutoBlockReason = reason.String
	}
	if assessedAt.Valid {
		stored.AssessedAt = assessedAt.Time
	}

	var details riskDetails
	if err := json.Unmarshal(detailsJSON, &details); err == nil {
		stored.Flags = details.Flags
		stored.Patterns = details.Patterns
		stored.Actions = details.Actions
	}

	return stored, nil
}

// GetAssessmentStatistics aggregates persisted assessments since the
// given time
func (r *Repository) GetAssessmentStatistics(ctx context.Context, since time.Time) (*AssessmentStatistics, error) {
	stats := &AssessmentStatistics{
		Period: fmt.Sprintf("%s to %s", since.Format("2006-01-02"), time.Now().Format("2006-01-02")),
	}

	query := `
		SELECT
			COUNT(*) AS total_assessed,
			COUNT(CASE WHEN risk_level = 'critical' THEN 1 END) AS critical_count,
			COUNT(CASE WHEN risk_level = 'high' THEN 1 END) AS high_count,
			COUNT(CASE WHEN risk_level = 'medium' THEN 1 END) AS medium_count,
			COUNT(CASE WHEN risk_level = 'low' THEN 1 END) AS low_count,
			COUNT(CASE WHEN auto_blocked THEN 1 END) AS blocked_count,
			COALESCE(AVG(risk_score), 0) AS average_score
		FROM orders
		WHERE risk_assessed_at >= $1
	`

	err := r.db.QueryRow(ctx, query, since).Scan(
		&stats.TotalAssessed,
		&stats.CriticalCount,
		&stats.HighCount,
		&stats.MediumCount,
		&stats.LowCount,
		&stats.BlockedCount,
		&stats.AverageScore,
	)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
