package reorder

import "time"

// Urgency classifies how soon a reorder is needed
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyNormal   Urgency = "normal"
)

// InventoryItem represents a stocked product
type InventoryItem struct {
	SKU              string    `json:"sku" db:"sku"`
	Name             string    `json:"name" db:"name"`
	OnHand           int       `json:"on_hand" db:"on_hand"`
	OnOrder          int       `json:"on_order" db:"on_order"`
	LeadTimeDays     int       `json:"lead_time_days" db:"lead_time_days"`
	ReviewPeriodDays int       `json:"review_period_days" db:"review_period_days"`
	SafetyStock      int       `json:"safety_stock" db:"safety_stock"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// SalesVelocity is the computed sales rate for a SKU over a trailing window
type SalesVelocity struct {
	SKU           string  `json:"sku"`
	WindowDays    int     `json:"window_days"`
	UnitsSold     int     `json:"units_sold"`
	DailyVelocity float64 `json:"daily_velocity"`
	DaysOfStock   float64 `json:"days_of_stock"`
}

// Suggestion is a recommended purchase order line for a SKU
type Suggestion struct {
	SKU           string  `json:"sku"`
	Name          string  `json:"name"`
	OnHand        int     `json:"on_hand"`
	OnOrder       int     `json:"on_order"`
	DailyVelocity float64 `json:"daily_velocity"`
	DaysOfStock   float64 `json:"days_of_stock"`
	SuggestedQty  int     `json:"suggested_qty"`
	Urgency       Urgency `json:"urgency"`
}
