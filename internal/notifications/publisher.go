package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/bazaarlane/retail-ops/internal/fraud"
)

// NATS subjects for fraud alert events
const (
	SubjectOrderFlagged = "fraud.order.flagged"
	SubjectOrderBlocked = "fraud.order.blocked"
)

// Publisher publishes operational events over NATS
type Publisher struct {
	conn *nats.Conn
}

// Ensure the publisher satisfies the fraud service's requirements.
var _ fraud.EventPublisher = (*Publisher)(nil)

// NewPublisher connects to NATS and returns a publisher
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("retail-ops"),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to nats: %w", err)
	}

	return &Publisher{conn: conn}, nil
}

// PublishAlert publishes a fraud alert event. Blocked orders go to the
// blocked subject, flagged-only orders to the flagged subject.
func (p *Publisher) PublishAlert(_ context.Context, event *fraud.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	subject := SubjectOrderFlagged
	if event.Blocked {
		subject = SubjectOrderBlocked
	}

	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("unable to publish %s: %w", subject, err)
	}

	return nil
}

// Close drains and closes the NATS connection
func (p *Publisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}
