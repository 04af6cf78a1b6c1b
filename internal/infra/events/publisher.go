package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"studysync-api/internal/pkg/config"
	"studysync-api/internal/usecase/commands"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	eventTypeBookingConfirmed = "booking.confirmed"
	eventTypeBookingCanceled  = "booking.canceled"
)

type envelope struct {
	Type       string                `json:"type"`
	OccurredAt time.Time             `json:"occurred_at"`
	Payload    commands.BookingEvent `json:"payload"`
}

// BookingPublisher delivers booking lifecycle events to a durable
// queue. Publishing is best-effort: broker failures are logged and
// swallowed so a flaky broker never blocks a booking.
type BookingPublisher struct {
	cfg config.BrokerConfig

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewBookingPublisher(cfg config.BrokerConfig) (*BookingPublisher, func()) {
	p := &BookingPublisher{cfg: cfg}

	cleanup := func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.ch != nil {
			_ = p.ch.Close()
		}
		if p.conn != nil {
			_ = p.conn.Close()
		}
	}
	return p, cleanup
}

func (p *BookingPublisher) PublishBookingConfirmed(ctx context.Context, event commands.BookingEvent) {
	p.publish(ctx, eventTypeBookingConfirmed, event)
}

func (p *BookingPublisher) PublishBookingCanceled(ctx context.Context, event commands.BookingEvent) {
	p.publish(ctx, eventTypeBookingCanceled, event)
}

func (p *BookingPublisher) publish(ctx context.Context, eventType string, event commands.BookingEvent) {
	body, err := json.Marshal(envelope{
		Type:       eventType,
		OccurredAt: event.OccurredAt,
		Payload:    event,
	})
	if err != nil {
		slog.Warn("failed to marshal booking event", "type", eventType, "error", err.Error())
		return
	}

	ch, err := p.channel()
	if err != nil {
		slog.Warn("broker unavailable, booking event dropped", "type", eventType, "error", err.Error())
		return
	}

	err = ch.PublishWithContext(ctx,
		"",          // default exchange
		p.cfg.Queue, // routing key = queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		// Drop the cached channel so the next publish redials.
		p.reset()
		slog.Warn("failed to publish booking event", "type", eventType, "error", err.Error())
	}
}

// channel returns the cached channel, dialing and declaring the durable
// queue on first use or after a failure.
func (p *BookingPublisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to dial broker: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(
		p.cfg.Queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	p.ch = ch
	return ch, nil
}

func (p *BookingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
}
