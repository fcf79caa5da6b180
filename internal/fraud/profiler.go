package fraud

import (
	"github.com/bazaarlane/retail-ops/internal/orders"
)

// Profiler tuning. These thresholds are looser than the order-level
// rules: the profile is a reporting aggregate, not a gating score.
const (
	profilerReturnRateCap     = 40.0
	profilerAddressPoints     = 5
	profilerAddressPointsCap  = 25
	profilerNoSuccessBonus    = 35.0
	profilerHighReturnRate    = 40.0
	profilerFrequentAddresses = 5
)

// ProfileCustomer computes the customer-level risk aggregate over the
// customer's full order list. The result is independent of the
// order-level assessment and is not combined with it.
func ProfileCustomer(customerKey string, list []*orders.Order) *CustomerProfile {
	profile := &CustomerProfile{
		CustomerKey:        customerKey,
		TotalOrders:        len(list),
		SuspiciousPatterns: make([]string, 0),
	}

	distinct := make(map[string]bool)
	for _, o := range list {
		switch o.Status {
		case orders.StatusDelivered:
			profile.SuccessfulOrders++
		case orders.StatusCancelled, orders.StatusReturned:
			profile.FailedOrders++
		}
		if addr := normalizeAddress(o.Address); addr != "" {
			distinct[addr] = true
		}
	}
	profile.AddressChanges = len(distinct)

	if profile.TotalOrders > 0 {
		profile.ReturnRate = float64(profile.FailedOrders) / float64(profile.TotalOrders) * 100
	}

	if profile.ReturnRate > profilerHighReturnRate {
		profile.SuspiciousPatterns = append(profile.SuspiciousPatterns, "High return rate")
	}
	if profile.AddressChanges >= profilerFrequentAddresses {
		profile.SuspiciousPatterns = append(profile.SuspiciousPatterns, "Frequent address changes")
	}
	if profile.TotalOrders > 10 && profile.SuccessfulOrders < 3 {
		profile.SuspiciousPatterns = append(profile.SuspiciousPatterns, "Low success rate")
	}

	score := profile.ReturnRate
	if score > profilerReturnRateCap {
		score = profilerReturnRateCap
	}

	addressPoints := profile.AddressChanges * profilerAddressPoints
	if addressPoints > profilerAddressPointsCap {
		addressPoints = profilerAddressPointsCap
	}
	score += float64(addressPoints)

	if profile.TotalOrders > 5 && profile.SuccessfulOrders == 0 {
		score += profilerNoSuccessBonus
	}

	if score < 0 {
		score = 0
	}
	if score > ScoreMax {
		score = ScoreMax
	}
	profile.RiskScore = score

	return profile
}
