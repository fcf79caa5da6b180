package reorder

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() *InventoryItem {
	return &InventoryItem{
		SKU:              "SKU-100",
		Name:             "Steel Kettle 2L",
		OnHand:           40,
		OnOrder:          0,
		LeadTimeDays:     7,
		ReviewPeriodDays: 7,
		SafetyStock:      10,
	}
}

func TestComputeVelocity(t *testing.T) {
	v := ComputeVelocity(testItem(), 60, 30)

	assert.Equal(t, "SKU-100", v.SKU)
	assert.Equal(t, 60, v.UnitsSold)
	assert.InDelta(t, 2.0, v.DailyVelocity, 0.001)
	assert.InDelta(t, 20.0, v.DaysOfStock, 0.001)
}

func TestComputeVelocityZeroSales(t *testing.T) {
	v := ComputeVelocity(testItem(), 0, 30)

	assert.Equal(t, 0.0, v.DailyVelocity)
	assert.True(t, math.IsInf(v.DaysOfStock, 1))
}

func TestComputeVelocityDefaultsWindow(t *testing.T) {
	v := ComputeVelocity(testItem(), 30, 0)

	assert.Equal(t, DefaultWindowDays, v.WindowDays)
	assert.InDelta(t, 1.0, v.DailyVelocity, 0.001)
}

func TestBuildSuggestionQuantity(t *testing.T) {
	item := testItem()
	item.OnHand = 10
	item.OnOrder = 5
	v := ComputeVelocity(item, 60, 30)

	s := BuildSuggestion(item, v)

	require.NotNil(t, s)
	// ceil(2.0 * 14) + 10 - 10 - 5 = 23.
	assert.Equal(t, 23, s.SuggestedQty)
	assert.Equal(t, 10, s.OnHand)
	assert.Equal(t, 5, s.OnOrder)
	assert.Equal(t, UrgencyCritical, s.Urgency)
}

func TestBuildSuggestionNoneNeeded(t *testing.T) {
	item := testItem()
	item.OnHand = 100
	v := ComputeVelocity(item, 60, 30)

	assert.Nil(t, BuildSuggestion(item, v))
}

func TestBuildSuggestionRoundsDemandUp(t *testing.T) {
	item := testItem()
	item.OnHand = 0
	item.SafetyStock = 0
	// 50 units over 30 days is 1.666/day; 14 cover days is 23.33 units.
	v := ComputeVelocity(item, 50, 30)

	s := BuildSuggestion(item, v)

	require.NotNil(t, s)
	assert.Equal(t, 24, s.SuggestedQty)
}

func TestUrgencyBands(t *testing.T) {
	item := testItem()

	tests := []struct {
		name    string
		onHand  int
		urgency Urgency
	}{
		{"stock runs out within lead time", 14, UrgencyCritical},
		{"stock runs out within lead plus review", 28, UrgencyWarning},
		{"stock covers beyond the review horizon", 29, UrgencyNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item.OnHand = tt.onHand
			v := ComputeVelocity(item, 60, 30)
			assert.Equal(t, tt.urgency, urgencyFor(item, v))
		})
	}
}

func TestUrgencyZeroVelocityIsNormal(t *testing.T) {
	item := testItem()
	v := ComputeVelocity(item, 0, 30)

	assert.Equal(t, UrgencyNormal, urgencyFor(item, v))
}
