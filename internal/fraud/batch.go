package fraud

import (
	"sort"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// TopPatternsLimit bounds the pattern frequency list in batch statistics
const TopPatternsLimit = 5

// AssessBatch scores each target order against the given order universe.
// The universe is indexed by phone and email once, so each order's
// history lookup is a map read instead of a window rescan.
func (s *Scorer) AssessBatch(targets []*orders.Order, universe []*orders.Order) []*Assessment {
	idx := NewOrderIndex(universe)

	assessments := make([]*Assessment, 0, len(targets))
	for _, o := range targets {
		if o == nil {
			continue
		}
		history := idx.CustomerHistory(o)
		assessments = append(assessments, s.Assess(o, history, idx))
	}

	return assessments
}

// Summarize reduces a list of assessments into batch statistics. Pattern
// ranking ties are broken by first encounter in the traversal order.
func Summarize(assessments []*Assessment) *BatchStatistics {
	stats := &BatchStatistics{
		TotalAssessed: len(assessments),
		TopPatterns:   make([]PatternCount, 0),
	}

	scoreSum := 0
	counts := make(map[string]int)
	firstSeen := make([]string, 0)

	for _, a := range assessments {
		scoreSum += a.RiskScore

		switch a.RiskLevel {
		case RiskLevelCritical:
			stats.CriticalCount++
		case RiskLevelHigh:
			stats.HighCount++
		case RiskLevelMedium:
			stats.MediumCount++
		default:
			stats.LowCount++
		}

		if a.ShouldBlock {
			stats.BlockedCount++
		}
		if a.ShouldFlag {
			stats.FlaggedCount++
		}

		for _, p := range a.Patterns {
			if _, ok := counts[p]; !ok {
				firstSeen = append(firstSeen, p)
			}
			counts[p]++
		}
	}

	if stats.TotalAssessed > 0 {
		stats.MeanScore = float64(scoreSum) / float64(stats.TotalAssessed)
	}

	ranked := make([]PatternCount, 0, len(firstSeen))
	for _, p := range firstSeen {
		ranked = append(ranked, PatternCount{Pattern: p, Count: counts[p]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if len(ranked) > TopPatternsLimit {
		ranked = ranked[:TopPatternsLimit]
	}
	stats.TopPatterns = ranked

	return stats
}
