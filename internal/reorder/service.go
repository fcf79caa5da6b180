package reorder

import (
	"context"
	"fmt"
	"time"
)

// Service handles reorder suggestion business logic
type Service struct {
	repo InventoryRepository
}

// NewService creates a new reorder service
func NewService(repo InventoryRepository) *Service {
	return &Service{repo: repo}
}

// Suggestions computes reorder suggestions for every active SKU over the
// given trailing sales window
func (s *Service) Suggestions(ctx context.Context, windowDays int) ([]*Suggestion, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	items, err := s.repo.GetInventoryItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	sold, err := s.repo.GetUnitsSold(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	suggestions := make([]*Suggestion, 0)
	for _, item := range items {
		velocity := ComputeVelocity(item, sold[item.SKU], windowDays)
		if suggestion := BuildSuggestion(item, velocity); suggestion != nil {
			suggestions = append(suggestions, suggestion)
		}
	}

	return suggestions, nil
}

// Velocity computes the sales velocity for one SKU over the given
// trailing window
func (s *Service) Velocity(ctx context.Context, sku string, windowDays int) (*SalesVelocity, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	item, err := s.repo.GetInventoryItem(ctx, sku)
	if err != nil {
		return nil, fmt.Errorf("failed to load item: %w", err)
	}

	since := time.Now().AddDate(0, 0, -windowDays)
	sold, err := s.repo.GetUnitsSold(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales: %w", err)
	}

	return ComputeVelocity(item, sold[item.SKU], windowDays), nil
}
