package fraud

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

func TestAssessBatchUsesUniverseHistory(t *testing.T) {
	scorer := NewScorer()

	target := makeOrder(withPhone("0305551234"))
	history := []*orders.Order{
		makeOrder(withPhone("0305551234"), withStatus(orders.StatusCancelled), withCreatedAt(baseTime.Add(-48*time.Hour))),
		makeOrder(withPhone("0305551234"), withStatus(orders.StatusReturned), withCreatedAt(baseTime.Add(-96*time.Hour))),
		makeOrder(withPhone("0305551234"), withStatus(orders.StatusCancelled), withCreatedAt(baseTime.Add(-120*time.Hour))),
	}
	unrelated := makeOrder(withPhone("0309990000"), withEmail("other@example.com"), withStatus(orders.StatusCancelled))

	universe := append([]*orders.Order{target, unrelated}, history...)
	assessments := scorer.AssessBatch([]*orders.Order{target}, universe)

	require.Len(t, assessments, 1)
	a := assessments[0]
	assert.Equal(t, target.ID, a.OrderID)
	// All three prior orders failed, so the return-rate rule fires from
	// history discovered through the shared phone.
	assert.Contains(t, a.Flags, "100.0% Return Rate")
	assert.Contains(t, a.Patterns, "High Return Pattern")
}

func TestAssessBatchMatchesByEmail(t *testing.T) {
	scorer := NewScorer()

	target := makeOrder(withPhone("0305551234"))
	// Same email, different phone: still part of the customer's history.
	prior := []*orders.Order{
		makeOrder(withPhone("0307770000"), withStatus(orders.StatusCancelled), withCreatedAt(baseTime.Add(-48*time.Hour))),
		makeOrder(withPhone("0307770000"), withStatus(orders.StatusCancelled), withCreatedAt(baseTime.Add(-72*time.Hour))),
		makeOrder(withPhone("0307770000"), withStatus(orders.StatusCancelled), withCreatedAt(baseTime.Add(-96*time.Hour))),
	}

	universe := append([]*orders.Order{target}, prior...)
	assessments := scorer.AssessBatch([]*orders.Order{target}, universe)

	require.Len(t, assessments, 1)
	assert.Contains(t, assessments[0].Patterns, "High Return Pattern")
}

func TestAssessBatchSkipsNilOrders(t *testing.T) {
	scorer := NewScorer()
	target := makeOrder()

	assessments := scorer.AssessBatch([]*orders.Order{nil, target, nil}, []*orders.Order{target})

	require.Len(t, assessments, 1)
	assert.Equal(t, target.ID, assessments[0].OrderID)
}

func TestSummarizeEmpty(t *testing.T) {
	stats := Summarize(nil)

	assert.Equal(t, 0, stats.TotalAssessed)
	assert.Equal(t, 0.0, stats.MeanScore)
	assert.Empty(t, stats.TopPatterns)
}

func TestSummarizeCountsBandsAndActions(t *testing.T) {
	assessments := []*Assessment{
		{RiskScore: 100, RiskLevel: RiskLevelCritical, ShouldBlock: true, ShouldFlag: true},
		{RiskScore: 70, RiskLevel: RiskLevelHigh, ShouldFlag: true},
		{RiskScore: 45, RiskLevel: RiskLevelMedium},
		{RiskScore: 45, RiskLevel: RiskLevelMedium},
		{RiskScore: 0, RiskLevel: RiskLevelLow},
	}

	stats := Summarize(assessments)

	assert.Equal(t, 5, stats.TotalAssessed)
	assert.Equal(t, 1, stats.CriticalCount)
	assert.Equal(t, 1, stats.HighCount)
	assert.Equal(t, 2, stats.MediumCount)
	assert.Equal(t, 1, stats.LowCount)
	assert.Equal(t, 1, stats.BlockedCount)
	assert.Equal(t, 2, stats.FlaggedCount)
	assert.InDelta(t, 52.0, stats.MeanScore, 0.001)
}

func TestSummarizeRanksPatterns(t *testing.T) {
	assessments := []*Assessment{
		{Patterns: []string{"High Return Pattern", "Address Hopping Pattern"}},
		{Patterns: []string{"High Return Pattern"}},
		{Patterns: []string{"Rapid Order Velocity"}},
		{Patterns: []string{"High Return Pattern", "Rapid Order Velocity"}},
	}

	stats := Summarize(assessments)

	require.Len(t, stats.TopPatterns, 3)
	assert.Equal(t, PatternCount{Pattern: "High Return Pattern", Count: 3}, stats.TopPatterns[0])
	// Two-way tie at count 2 and 1: first encountered wins.
	assert.Equal(t, PatternCount{Pattern: "Rapid Order Velocity", Count: 2}, stats.TopPatterns[1])
	assert.Equal(t, PatternCount{Pattern: "Address Hopping Pattern", Count: 1}, stats.TopPatterns[2])
}

func TestSummarizeTruncatesToTopFive(t *testing.T) {
	assessments := []*Assessment{
		{Patterns: []string{"P1", "P2", "P3", "P4", "P5", "P6", "P7"}},
		{Patterns: []string{"P1", "P2"}},
	}

	stats := Summarize(assessments)

	require.Len(t, stats.TopPatterns, TopPatternsLimit)
	assert.Equal(t, "P1", stats.TopPatterns[0].Pattern)
	assert.Equal(t, "P2", stats.TopPatterns[1].Pattern)
}

func TestSummarizeTieBreakIsFirstEncountered(t *testing.T) {
	assessments := []*Assessment{
		{Patterns: []string{"Beta"}},
		{Patterns: []string{"Alpha"}},
		{Patterns: []string{"Beta"}},
		{Patterns: []string{"Alpha"}},
	}

	stats := Summarize(assessments)

	require.Len(t, stats.TopPatterns, 2)
	assert.Equal(t, "Beta", stats.TopPatterns[0].Pattern)
	assert.Equal(t, "Alpha", stats.TopPatterns[1].Pattern)
}
