package fraud

import (
	"fmt"
	"strings"
	"time"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// Rule is a single fraud signal extractor. Evaluate is pure: it never
// mutates its inputs, and malformed fields (empty phone, address or
// notes) degrade to a nil Finding rather than an error. The history
// slice holds the customer's other orders sorted most recent first;
// "now" for time-based rules is the order's own creation timestamp.
type Rule interface {
	Name() string
	Evaluate(o *orders.Order, history []*orders.Order, idx *OrderIndex) *Finding
}

// DefaultRules returns the production rule set
func DefaultRules() []Rule {
	return []Rule{
		HighValueRule{Threshold: 50000, Points: 20},
		OrderVelocityRule{Window: 24 * time.Hour, MinOthers: 3, Points: 25},
		AddressChangeRule{Points: 15},
		AddressHoppingRule{MinAddresses: 4, Points: 20},
		NewCustomerHighValueRule{MaxPriorOrders: 1, Threshold: 30000, Points: 20},
		ReturnRateRule{MinOrders: 3, Points: 30},
		DisapprovedVerificationRule{Points: 25},
		SuspiciousCityRule{Keywords: []string{"test", "fake", "dummy"}, Points: 35},
		SuspiciousPhoneRule{Substrings: []string{"0000", "1111"}, Points: 25},
		FailedDeliveryRule{MinFailures: 2, Points: 20},
	}
}

// HighValueRule fires when the order total exceeds a fixed threshold
type HighValueRule struct {
	Threshold float64
	Points    int
}

func (r HighValueRule) Name() string { return "high_value" }

func (r HighValueRule) Evaluate(o *orders.Order, _ []*orders.Order, _ *OrderIndex) *Finding {
	if o.TotalAmount > r.Threshold {
		return &Finding{Points: r.Points, Flag: "High Value Order"}
	}
	return nil
}

// OrderVelocityRule fires when the same phone placed MinOthers or more
// other orders inside the window ending at this order's timestamp
type OrderVelocityRule struct {
	Window    time.Duration
	MinOthers int
	Points    int
}

func (r OrderVelocityRule) Name() string { return "order_velocity" }

func (r OrderVelocityRule) Evaluate(o *orders.Order, _ []*orders.Order, idx *OrderIndex) *Finding {
	if strings.TrimSpace(o.Phone) == "" {
		return nil
	}

	now := o.CreatedAt
	cutoff := now.Add(-r.Window)
	count := 0
	for _, other := range idx.ByPhone(o.Phone) {
		if other.ID == o.ID {
			continue
		}
		if other.CreatedAt.After(cutoff) && !other.CreatedAt.After(now) {
			count++
		}
	}

	if count >= r.MinOthers {
		return &Finding{
			Points:  r.Points,
			Flag:    fmt.Sprintf("%d Orders in 24hrs", count),
			Pattern: "Rapid Order Velocity",
		}
	}
	return nil
}

// AddressChangeRule fires when the customer's immediately-prior order
// shipped to a different address string
type AddressChangeRule struct {
	Points int
}

func (r AddressChangeRule) Name() string { return "address_change" }

func (r AddressChangeRule) Evaluate(o *orders.Order, history []*orders.Order, _ *OrderIndex) *Finding {
	if o.Address == "" {
		return nil
	}

	// History is sorted most recent first; the prior order is the first
	// one created before this order.
	for _, prev := range history {
		if !prev.CreatedAt.Before(o.CreatedAt) {
			continue
		}
		if prev.Address == "" {
			return nil
		}
		if prev.Address != o.Address {
			return &Finding{Points: r.Points, Flag: "Address Changed"}
		}
		return nil
	}
	return nil
}

// AddressHoppingRule fires when orders sharing this phone span
// MinAddresses or more distinct addresses
type AddressHoppingRule struct {
	MinAddresses int
	Points       int
}

func (r AddressHoppingRule) Name() string { return "address_hopping" }

func (r AddressHoppingRule) Evaluate(o *orders.Order, _ []*orders.Order, idx *OrderIndex) *Finding {
	if strings.TrimSpace(o.Phone) == "" {
		return nil
	}

	distinct := make(map[string]bool)
	if addr := normalizeAddress(o.Address); addr != "" {
		distinct[addr] = true
	}
	for _, other := range idx.ByPhone(o.Phone) {
		if addr := normalizeAddress(other.Address); addr != "" {
			distinct[addr] = true
		}
	}

	if len(distinct) >= r.MinAddresses {
		return &Finding{
			Points:  r.Points,
			Flag:    fmt.Sprintf("%d Different Addresses", len(distinct)),
			Pattern: "Address Hopping Pattern",
		}
	}
	return nil
}

// NewCustomerHighValueRule fires for a high-value order from a customer
// with at most MaxPriorOrders prior orders
type NewCustomerHighValueRule struct {
	MaxPriorOrders int
	Threshold      float64
	Points         int
}

func (r NewCustomerHighValueRule) Name() string { return "new_customer_high_value" }

func (r NewCustomerHighValueRule) Evaluate(o *orders.Order, history []*orders.Order, _ *OrderIndex) *Finding {
	if len(history) <= r.MaxPriorOrders && o.TotalAmount > r.Threshold {
		return &Finding{Points: r.Points, Flag: "New Customer - High Value"}
	}
	return nil
}

// ReturnRateRule fires when more than half of the customer's orders were
// cancelled or returned, given at least MinOrders of them
type ReturnRateRule struct {
	MinOrders int
	Points    int
}

func (r ReturnRateRule) Name() string { return "return_rate" }

func (r ReturnRateRule) Evaluate(_ *orders.Order, history []*orders.Order, _ *OrderIndex) *Finding {
	total := len(history)
	if total < r.MinOrders {
		return nil
	}

	failed := 0
	for _, prev := range history {
		if prev.Status == orders.StatusCancelled || prev.Status == orders.StatusReturned {
			failed++
		}
	}

	if float64(failed)/float64(total) > 0.5 {
		pct := float64(failed) / float64(total) * 100
		return &Finding{
			Points:  r.Points,
			Flag:    fmt.Sprintf("%.1f%% Return Rate", pct),
			Pattern: "High Return Pattern",
		}
	}
	return nil
}

// DisapprovedVerificationRule fires when the order's address verification
// was disapproved
type DisapprovedVerificationRule struct {
	Points int
}

func (r DisapprovedVerificationRule) Name() string { return "disapproved_verification" }

func (r DisapprovedVerificationRule) Evaluate(o *orders.Order, _ []*orders.Order, _ *OrderIndex) *Finding {
	if o.VerificationStatus == orders.VerificationDisapproved {
		return &Finding{Points: r.Points, Flag: "Address Disapproved"}
	}
	return nil
}

// SuspiciousCityRule fires when the city contains any of the configured
// keywords. The keyword list is a swappable heuristic, not a classifier.
type SuspiciousCityRule struct {
	Keywords []string
	Points   int
}

func (r SuspiciousCityRule) Name() string { return "suspicious_city" }

func (r SuspiciousCityRule) Evaluate(o *orders.Order, _ []*orders.Order, _ *OrderIndex) *Finding {
	city := strings.ToLower(o.City)
	if city == "" {
		return nil
	}
	for _, kw := range r.Keywords {
		if strings.Contains(city, kw) {
			return &Finding{
				Points:  r.Points,
				Flag:    "Suspicious Location",
				Pattern: "Test/Fake Address Pattern",
			}
		}
	}
	return nil
}

// SuspiciousPhoneRule fires when the phone contains any of the configured
// substrings
type SuspiciousPhoneRule struct {
	Substrings []string
	Points     int
}

func (r SuspiciousPhoneRule) Name() string { return "suspicious_phone" }

func (r SuspiciousPhoneRule) Evaluate(o *orders.Order, _ []*orders.Order, _ *OrderIndex) *Finding {
	if o.Phone == "" {
		return nil
	}
	for _, sub := range r.Substrings {
		if strings.Contains(o.Phone, sub) {
			return &Finding{Points: r.Points, Flag: "Suspicious Phone Pattern"}
		}
	}
	return nil
}

// FailedDeliveryRule fires when MinFailures or more of the customer's
// orders were cancelled with "delivery failed" in the notes
type FailedDeliveryRule struct {
	MinFailures int
	Points      int
}

func (r FailedDeliveryRule) Name() string { return "failed_deliveries" }

func (r FailedDeliveryRule) Evaluate(_ *orders.Order, history []*orders.Order, _ *OrderIndex) *Finding {
	count := 0
	for _, prev := range history {
		if prev.Status != orders.StatusCancelled {
			continue
		}
		if strings.Contains(strings.ToLower(prev.Notes), "delivery failed") {
			count++
		}
	}

	if count >= r.MinFailures {
		return &Finding{
			Points:  r.Points,
			Flag:    fmt.Sprintf("%d Failed Deliveries", count),
			Pattern: "Repeated Delivery Failures",
		}
	}
	return nil
}

func normalizeAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}
