// Package broker publishes parcel lifecycle events to downstream consumers.
package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rabbitmq/amqp091-go"

	"github.com/99minutos/parcel-service/internal/core/domain"
)

// RabbitPublisher publishes events to a durable topic exchange, routed by
// event type (e.g. "parcel.status_changed").
type RabbitPublisher struct {
	conn     *amqp091.Connection
	ch       *amqp091.Channel
	exchange string
	mu       sync.Mutex
}

// NewRabbitPublisher dials url and declares the exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		amqp091.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq declare exchange %s: %w", exchange, err)
	}

	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, event domain.ParcelEvent) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	// amqp091 channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, p.exchange, string(event.Type), false, false, msg); err != nil {
		return fmt.Errorf("rabbitmq publish %s: %w", event.Type, err)
	}
	return nil
}

// Ping reports whether the connection is still open.
func (p *RabbitPublisher) Ping(context.Context) error {
	if p.conn.IsClosed() {
		return amqp091.ErrClosed
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	_ = p.ch.Close()
	return p.conn.Close()
}

func newPublishing(event domain.ParcelEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("encode event: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Type:         string(event.Type),
		Headers: amqp091.Table{
			"tracking_number": event.TrackingNumber,
		},
		Body: body,
	}, nil
}
