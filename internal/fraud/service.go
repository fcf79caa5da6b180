package fraud

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bazaarlane/retail-ops/internal/orders"
	"github.com/bazaarlane/retail-ops/pkg/logger"
)

const (
	defaultRecentWindow  = 1000
	defaultWindowTTL     = 60 * time.Second
	recentWindowCacheKey = "fraud:recent_orders"
)

// Service orchestrates fraud assessments: it resolves inputs from the
// order store, runs the scorer, persists results and emits alerts.
type Service struct {
	repo       OrderStore
	publisher  EventPublisher
	cache      WindowCache
	scorer     *Scorer
	windowSize int
	windowTTL  time.Duration
}

// NewService creates a new fraud service. publisher and cache may be nil;
// alerts and window caching are then skipped.
func NewService(repo OrderStore, publisher EventPublisher, cache WindowCache, windowSize, windowTTLSeconds int) *Service {
	if windowSize <= 0 {
		windowSize = defaultRecentWindow
	}
	ttl := defaultWindowTTL
	if windowTTLSeconds > 0 {
		ttl = time.Duration(windowTTLSeconds) * time.Second
	}

	return &Service{
		repo:       repo,
		publisher:  publisher,
		cache:      cache,
		scorer:     NewScorer(),
		windowSize: windowSize,
		windowTTL:  ttl,
	}
}

// AssessOrder scores one order against its customer history and the
// recent-order window, persists the result and publishes an alert when
// the order is flagged or blocked.
func (s *Service) AssessOrder(ctx context.Context, orderID uuid.UUID) (*Assessment, error) {
	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	history, err := s.repo.GetOrdersByContact(ctx, order.Phone, order.Email, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer history: %w", err)
	}

	window, err := s.recentWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	assessment := s.scorer.Assess(order, history, NewOrderIndex(window))

	if err := s.persist(ctx, assessment); err != nil {
		return nil, err
	}

	s.record(ctx, order, assessment)

	return assessment, nil
}

// AssessOrders scores a batch of orders. With no IDs given, all pending
// orders are assessed. Each result is persisted; alerting follows the
// same rules as single assessments.
func (s *Service) AssessOrders(ctx context.Context, ids []uuid.UUID) (*BatchReport, error) {
	var targets []*orders.Order
	var err error

	if len(ids) == 0 {
		targets, err = s.repo.GetPendingOrders(ctx, s.windowSize)
	} else {
		targets, err = s.repo.GetOrdersByIDs(ctx, ids)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load batch orders: %w", err)
	}

	window, err := s.recentWindow(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent orders: %w", err)
	}

	assessments := s.scorer.AssessBatch(targets, window)

	byID := make(map[uuid.UUID]*orders.Order, len(targets))
	for _, o := range targets {
		byID[o.ID] = o
	}

	for _, a := range assessments {
		order := byID[a.OrderID]
		if err := s.persist(ctx, a); err != nil {
			logger.WithContext(ctx).Error("Failed to persist assessment",
				zap.String("order_id", a.OrderID.String()),
				zap.Error(err),
			)
			continue
		}
		s.record(ctx, order, a)
	}

	return &BatchReport{
		Assessments: assessments,
		Statistics:  Summarize(assessments),
	}, nil
}

// ProfileCustomer computes the customer-level risk aggregate for the
// given phone or email
func (s *Service) ProfileCustomer(ctx context.Context, phone, email string) (*CustomerProfile, error) {
	if phone == "" && email == "" {
		return nil, fmt.Errorf("phone or email required")
	}

	list, err := s.repo.GetOrdersByContact(ctx, phone, email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer orders: %w", err)
	}

	key := phone
	if key == "" {
		key = email
	}

	return ProfileCustomer(key, list), nil
}

// GetAssessment returns the last persisted assessment for an order
func (s *Service) GetAssessment(ctx context.Context, orderID uuid.UUID) (*StoredAssessment, error) {
	return s.repo.GetAssessment(ctx, orderID)
}

// Statistics aggregates persisted assessments over the trailing number
// of days
func (s *Service) Statistics(ctx context.Context, days int) (*AssessmentStatistics, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.repo.GetAssessmentStatistics(ctx, since)
}

// persist writes the assessment onto the order record
func (s *Service) persist(ctx context.Context, a *Assessment) error {
	stored := &StoredAssessment{
		OrderID:     a.OrderID,
		RiskScore:   a.RiskScore,
		RiskLevel:   a.RiskLevel,
		Flags:       a.Flags,
		Patterns:    a.Patterns,
		Actions:     a.Actions,
		AutoBlocked: a.ShouldBlock,
		AssessedAt:  time.Now(),
	}
	if a.ShouldBlock {
		stored.AutoBlockReason = fmt.Sprintf("risk score %d: %s", a.RiskScore, strings.Join(a.Flags, "; "))
	}

	if err := s.repo.SaveAssessment(ctx, stored); err != nil {
		return fmt.Errorf("failed to save assessment: %w", err)
	}

	return nil
}

// record emits metrics, logs and alert events for a persisted assessment
func (s *Service) record(ctx context.Context, order *orders.Order, a *Assessment) {
	assessmentsTotal.WithLabelValues(string(a.RiskLevel)).Inc()
	if a.ShouldBlock {
		autoBlocksTotal.Inc()
	}

	log := logger.WithContext(ctx)
	log.Info("Order assessed",
		zap.String("order_id", a.OrderID.String()),
		zap.Int("risk_score", a.RiskScore),
		zap.String("risk_level", string(a.RiskLevel)),
		zap.Strings("flags", a.Flags),
	)

	if !a.ShouldFlag || s.publisher == nil {
		return
	}

	event := &AlertEvent{
		OrderID:    a.OrderID,
		RiskScore:  a.RiskScore,
		RiskLevel:  a.RiskLevel,
		Flags:      a.Flags,
		Blocked:    a.ShouldBlock,
		OccurredAt: time.Now(),
	}
	if order != nil {
		event.Phone = order.Phone
	}

	if err := s.publisher.PublishAlert(ctx, event); err != nil {
		log.Error("Failed to publish fraud alert",
			zap.String("order_id", a.OrderID.String()),
			zap.Error(err),
		)
	}
}

// recentWindow loads the recent-order window, preferring the cached copy
func (s *Service) recentWindow(ctx context.Context) ([]*orders.Order, error) {
	if s.cache != nil {
		if raw, err := s.cache.GetString(ctx, recentWindowCacheKey); err == nil && raw != "" {
			var window []*orders.Order
			if err := json.Unmarshal([]byte(raw), &window); err == nil {
				return window, nil
			}
		}
	}

	window, err := s.repo.GetRecentOrders(ctx, s.windowSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if raw, err := json.Marshal(window); err == nil {
			if err := s.cache.SetWithExpiration(ctx, recentWindowCacheKey, raw, s.windowTTL); err != nil {
				logger.WithContext(ctx).Warn("Failed to cache recent-order window", zap.Error(err))
			}
		}
	}

	return window, nil
}
