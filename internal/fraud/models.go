package fraud

import (
	"time"

	"github.com/google/uuid"
)

// RiskLevel categorizes a clamped risk score
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "low"
	RiskLevelMedium   RiskLevel = "medium"
	RiskLevelHigh     RiskLevel = "high"
	RiskLevelCritical RiskLevel = "critical"
)

// Risk band thresholds on the clamped score
const (
	ScoreMax            = 100
	CriticalThreshold   = 80
	HighThreshold       = 60
	MediumThreshold     = 40
	BlockScoreThreshold = 80
	FlagScoreThreshold  = 60
)

// AutoAction is a recommended automated action for an assessed order.
// Presentation text lives in messages.go; callers and tests work with
// the enum.
type AutoAction string

const (
	ActionBlock   AutoAction = "BLOCK"
	ActionAlert   AutoAction = "ALERT"
	ActionFlag    AutoAction = "FLAG"
	ActionVerify  AutoAction = "VERIFY"
	ActionMonitor AutoAction = "MONITOR"
)

// Finding is the output of a single signal extractor: a point delta,
// a human-readable flag, and an optional pattern label.
type Finding struct {
	Points  int
	Flag    string
	Pattern string
}

// Assessment is the result of scoring one order. It is a pure function
// of its inputs and carries no timestamp.
type Assessment struct {
	OrderID     uuid.UUID    `json:"order_id"`
	RiskScore   int          `json:"risk_score"`
	RiskLevel   RiskLevel    `json:"risk_level"`
	Flags       []string     `json:"flags"`
	Patterns    []string     `json:"patterns"`
	Actions     []AutoAction `json:"actions"`
	Messages    []string     `json:"messages"`
	ShouldBlock bool         `json:"should_block"`
	ShouldFlag  bool         `json:"should_flag"`
}

// StoredAssessment is an assessment as persisted on the order record.
// Each run overwrites the previous one; the audit trail lives in logs
// and published events.
type StoredAssessment struct {
	OrderID         uuid.UUID    `json:"order_id"`
	RiskScore       int          `json:"risk_score"`
	RiskLevel       RiskLevel    `json:"risk_level"`
	Flags           []string     `json:"flags"`
	Patterns        []string     `json:"patterns"`
	Actions         []AutoAction `json:"actions"`
	AutoBlocked     bool         `json:"auto_blocked"`
	AutoBlockReason string       `json:"auto_block_reason,omitempty"`
	AssessedAt      time.Time    `json:"assessed_at"`
}

// CustomerProfile is the customer-level aggregate. It is independent of
// the order-level score and is never combined with it.
type CustomerProfile struct {
	CustomerKey        string   `json:"customer_key"`
	TotalOrders        int      `json:"total_orders"`
	SuccessfulOrders   int      `json:"successful_orders"`
	FailedOrders       int      `json:"failed_orders"`
	ReturnRate         float64  `json:"return_rate"`
	AddressChanges     int      `json:"address_changes"`
	SuspiciousPatterns []string `json:"suspicious_patterns"`
	RiskScore          float64  `json:"risk_score"`
}

// PatternCount is a pattern label with its occurrence count
type PatternCount struct {
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
}

// BatchStatistics summarizes a batch of assessments
type BatchStatistics struct {
	TotalAssessed int            `json:"total_assessed"`
	CriticalCount int            `json:"critical_count"`
	HighCount     int            `json:"high_count"`
	MediumCount   int            `json:"medium_count"`
	LowCount      int            `json:"low_count"`
	BlockedCount  int            `json:"blocked_count"`
	FlaggedCount  int            `json:"flagged_count"`
	MeanScore     float64        `json:"mean_score"`
	TopPatterns   []PatternCount `json:"top_patterns"`
}

// BatchReport is the response of a batch assessment run
type BatchReport struct {
	Assessments []*Assessment    `json:"assessments"`
	Statistics  *BatchStatistics `json:"statistics"`
}

// AssessmentStatistics aggregates persisted assessments over a period
type AssessmentStatistics struct {
	Period        string  `json:"period"`
	TotalAssessed int     `json:"total_assessed"`
	CriticalCount int     `json:"critical_count"`
	HighCount     int     `json:"high_count"`
	MediumCount   int     `json:"medium_count"`
	LowCount      int     `json:"low_count"`
	BlockedCount  int     `json:"blocked_count"`
	AverageScore  float64 `json:"average_score"`
}

// AlertEvent is published when an assessment flags or blocks an order
type AlertEvent struct {
	OrderID    uuid.UUID `json:"order_id"`
	Phone      string    `json:"phone"`
	RiskScore  int       `json:"risk_score"`
	RiskLevel  RiskLevel `json:"risk_level"`
	Flags      []string  `json:"flags"`
	Blocked    bool      `json:"blocked"`
	OccurredAt time.Time `json:"occurred_at"`
}

// AssessRequest is the API request for a single-order assessment
type AssessRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
}

// BatchAssessRequest is the API request for a batch assessment.
// An empty list assesses all pending orders.
type BatchAssessRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}
