package fraud

import (
	"strings"

	"github.com/bazaarlane/retail-ops/internal/orders"
)

// OrderIndex maps a window of orders by phone and email so the signal
// extractors can consult customer groupings without rescanning the
// whole window per order.
type OrderIndex struct {
	byPhone map[string][]*orders.Order
	byEmail map[string][]*orders.Order
}

// NewOrderIndex builds an index over the given order universe
func NewOrderIndex(universe []*orders.Order) *OrderIndex {
	idx := &OrderIndex{
		byPhone: make(map[string][]*orders.Order),
		byEmail: make(map[string][]*orders.Order),
	}

	for _, o := range universe {
		if o == nil {
			continue
		}
		if phone := strings.TrimSpace(o.Phone); phone != "" {
			idx.byPhone[phone] = append(idx.byPhone[phone], o)
		}
		if email := normalizeEmail(o.Email); email != "" {
			idx.byEmail[email] = append(idx.byEmail[email], o)
		}
	}

	return idx
}

// ByPhone returns all indexed orders sharing the given phone
func (idx *OrderIndex) ByPhone(phone string) []*orders.Order {
	if idx == nil {
		return nil
	}
	return idx.byPhone[strings.TrimSpace(phone)]
}

// ByEmail returns all indexed orders sharing the given email
func (idx *OrderIndex) ByEmail(email string) []*orders.Order {
	if idx == nil {
		return nil
	}
	return idx.byEmail[normalizeEmail(email)]
}

// CustomerHistory returns every indexed order matching the given order's
// phone or email, excluding the order itself.
func (idx *OrderIndex) CustomerHistory(o *orders.Order) []*orders.Order {
	if idx == nil || o == nil {
		return nil
	}

	seen := make(map[string]bool)
	var history []*orders.Order

	for _, match := range idx.ByPhone(o.Phone) {
		if match.ID == o.ID || seen[match.ID.String()] {
			continue
		}
		seen[match.ID.String()] = true
		history = append(history, match)
	}
	for _, match := range idx.ByEmail(o.Email) {
		if match.ID == o.ID || seen[match.ID.String()] {
			continue
		}
		seen[match.ID.String()] = true
		history = append(history, match)
	}

	return history
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
