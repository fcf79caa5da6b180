package reorder

import "math"

// DefaultWindowDays is the trailing sales window used when none is given
const DefaultWindowDays = 30

// ComputeVelocity derives the daily sales rate and days-of-stock for a
// SKU from its units sold over a trailing window
func ComputeVelocity(item *InventoryItem, unitsSold, windowDays int) *SalesVelocity {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	v := &SalesVelocity{
		SKU:           item.SKU,
		WindowDays:    windowDays,
		UnitsSold:     unitsSold,
		DailyVelocity: float64(unitsSold) / float64(windowDays),
	}

	if v.DailyVelocity > 0 {
		v.DaysOfStock = float64(item.OnHand) / v.DailyVelocity
	} else {
		v.DaysOfStock = math.Inf(1)
	}

	return v
}

// BuildSuggestion turns an item's velocity into a purchase order line.
// Returns nil when no reorder is needed. The quantity covers expected
// demand through one lead time plus one review period, tops up safety
// stock, and nets out stock already on hand or on order.
func BuildSuggestion(item *InventoryItem, v *SalesVelocity) *Suggestion {
	coverDays := float64(item.LeadTimeDays + item.ReviewPeriodDays)
	demand := int(math.Ceil(v.DailyVelocity * coverDays))

	qty := demand + item.SafetyStock - item.OnHand - item.OnOrder
	if qty <= 0 {
		return nil
	}

	return &Suggestion{
		SKU:           item.SKU,
		Name:          item.Name,
		OnHand:        item.OnHand,
		OnOrder:       item.OnOrder,
		DailyVelocity: v.DailyVelocity,
		DaysOfStock:   v.DaysOfStock,
		SuggestedQty:  qty,
		Urgency:       urgencyFor(item, v),
	}
}

func urgencyFor(item *InventoryItem, v *SalesVelocity) Urgency {
	switch {
	case v.DaysOfStock <= float64(item.LeadTimeDays):
		return UrgencyCritical
	case v.DaysOfStock <= float64(item.LeadTimeDays+item.ReviewPeriodDays):
		return UrgencyWarning
	default:
		return UrgencyNormal
	}
}
