package fraud

import (
	"sort"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// Scorer runs a rule set over an order and aggregates the findings into
// a bounded risk assessment.
type Scorer struct {
	rules []Rule
}

// NewScorer creates a scorer with the production rule set
func NewScorer() *Scorer {
	return &Scorer{rules: DefaultRules()}
}

// NewScorerWithRules creates a scorer with a custom rule set
func NewScorerWithRules(rules []Rule) *Scorer {
	return &Scorer{rules: rules}
}

// Assess scores a single order. customerOrders is the customer's other
// orders in any order; idx indexes the recent-order window and may be
// nil, in which case cross-customer rules yield no signal.
func (s *Scorer) Assess(o *orders.Order, customerOrders []*orders.Order, idx *OrderIndex) *Assessment {
	history := sortByRecency(customerOrders)

	raw := 0
	flags := make([]string, 0)
	patterns := make([]string, 0)

	for _, rule := range s.rules {
		finding := rule.Evaluate(o, history, idx)
		if finding == nil {
			continue
		}
		raw += finding.Points
		if finding.Flag != "" {
			flags = append(flags, finding.Flag)
		}
		if finding.Pattern != "" {
			patterns = append(patterns, finding.Pattern)
		}
	}

	score := clampScore(raw)
	level := LevelForScore(score)
	actions := ActionsForLevel(level)

	return &Assessment{
		OrderID:     o.ID,
		RiskScore:   score,
		RiskLevel:   level,
		Flags:       flags,
		Patterns:    patterns,
		Actions:     actions,
		Messages:    RenderActions(actions),
		ShouldBlock: score >= BlockScoreThreshold,
		ShouldFlag:  score >= FlagScoreThreshold,
	}
}

// LevelForScore maps a clamped score to its risk band
func LevelForScore(score int) RiskLevel {
	switch {
	case score >= CriticalThreshold:
		return RiskLevelCritical
	case score >= HighThreshold:
		return RiskLevelHigh
	case score >= MediumThreshold:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

// ActionsForLevel maps a risk band to its recommended automated actions
func ActionsForLevel(level RiskLevel) []AutoAction {
	switch level {
	case RiskLevelCritical:
		return []AutoAction{ActionBlock, ActionAlert}
	case RiskLevelHigh:
		return []AutoAction{ActionFlag, ActionVerify}
	case RiskLevelMedium:
		return []AutoAction{ActionMonitor}
	default:
		return []AutoAction{}
	}
}

func clampScore(raw int) int {
	if raw < 0 {
		return 0
	}
	if raw > ScoreMax {
		return ScoreMax
	}
	return raw
}

// sortByRecency returns a copy of the given orders sorted most recent
// first. Inputs are never mutated.
func sortByRecency(list []*orders.Order) []*orders.Order {
	sorted := make([]*orders.Order, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	return sorted
}
