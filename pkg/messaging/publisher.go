package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// Envelope is the JSON body of every published event.
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Publisher sends ledger events to NATS. A nil *Publisher silently drops events.
type Publisher struct {
	conn   *nats.Conn
	prefix string
	logger *zap.Logger
}

// NewPublisher connects to the NATS server at url.
func NewPublisher(url, subjectPrefix string, logger *zap.Logger) (*Publisher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	nc, err := nats.Connect(url,
		nats.Name("lms-ledger-api"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", zap.Error(err))
			}
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats %s: %w", url, err)
	}
	logger.Info("nats publisher initialized", zap.String("url", url), zap.String("prefix", subjectPrefix))
	return &Publisher{conn: nc, prefix: subjectPrefix, logger: logger}, nil
}

// Subject joins the configured prefix with an event type.
func (p *Publisher) Subject(eventType string) string {
	if p == nil || p.prefix == "" {
		return eventType
	}
	return p.prefix + "." + eventType
}

// Publish marshals payload into an Envelope and publishes it. The publish is fire-and-forget.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if p == nil || p.conn == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Encode(eventType, payload, time.Now().UTC())
	if err != nil {
		return err
	}
	subject := p.Subject(eventType)
	if err := p.conn.Publish(subject, body); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	p.logger.Debug("event published", zap.String("subject", subject))
	return nil
}

// Close drains pending messages and closes the connection.
func (p *Publisher) Close() error {
	if p == nil || p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// Encode renders the wire form of an event.
func Encode(eventType string, payload interface{}, at time.Time) ([]byte, error) {
	body, err := json.Marshal(Envelope{Type: eventType, OccurredAt: at, Payload: payload})
	if err != nil {
		return nil, fmt.Errorf("marshal %s event: %w", eventType, err)
	}
	return body, nil
}
