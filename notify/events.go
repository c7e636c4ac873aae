package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/rake87226-cmyk/vercel-backend/config"
)

const (
	EventOrderPlaced       = "order.placed"
	EventReservationPlaced = "reservation.placed"
	EventPaymentRecorded   = "payment.recorded"
)

// Publisher is the part of an AMQP channel the event publisher uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// EventPublisher fans domain events out to a RabbitMQ topic exchange. A
// publisher without a channel only logs the events.
type EventPublisher struct {
	conn     *amqp.Connection
	ch       Publisher
	exchange string
	log      zerolog.Logger
}

func NewEventPublisher(ch Publisher, exchange string, logger zerolog.Logger) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange, log: logger.With().Str("component", "events").Logger()}
}

// DialEvents connects to cfg.URL and declares the exchange. An empty URL or
// an unreachable broker yields the logging stub.
func DialEvents(cfg config.Events, logger zerolog.Logger) *EventPublisher {
	if cfg.URL == "" {
		logger.Info().Msg("AMQP not configured. Events will be logged but not published.")
		return NewEventPublisher(nil, cfg.Exchange, logger)
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Warn().Err(err).Msg("RabbitMQ unreachable. Events will be logged but not published.")
		return NewEventPublisher(nil, cfg.Exchange, logger)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		logger.Warn().Err(err).Msg("Failed to open RabbitMQ channel")
		return NewEventPublisher(nil, cfg.Exchange, logger)
	}
	if err := ch.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		logger.Warn().Err(err).Str("exchange", cfg.Exchange).Msg("Failed to declare events exchange")
		return NewEventPublisher(nil, cfg.Exchange, logger)
	}

	logger.Info().Str("exchange", cfg.Exchange).Msg("RabbitMQ event publisher initialized")
	p := NewEventPublisher(ch, cfg.Exchange, logger)
	p.conn = conn
	return p
}

func (p *EventPublisher) Configured() bool { return p != nil && p.ch != nil }

// Publish sends payload as JSON with routing key key.
func (p *EventPublisher) Publish(ctx context.Context, key string, payload any) Result {
	body, err := json.Marshal(payload)
	if err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("Failed to encode event")
		return Result{Channel: ChannelEvents, Error: err.Error()}
	}
	if !p.Configured() {
		p.log.Info().Str("key", key).RawJSON("payload", body).Msg("Event not published")
		return Result{Channel: ChannelEvents, Reason: "AMQP not configured"}
	}

	id := uuid.NewString()
	err = p.ch.PublishWithContext(ctx, p.exchange, key, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		MessageId:    id,
		Timestamp:    time.Now().UTC(),
		Type:         key,
		Headers:      amqp.Table{"x-source": "restaurant-api"},
		Body:         body,
	})
	if err != nil {
		p.log.Error().Err(err).Str("key", key).Msg("Event publish failed")
		return Result{Channel: ChannelEvents, Error: fmt.Sprintf("publish %s: %v", key, err)}
	}
	return Result{Channel: ChannelEvents, Success: true, MessageID: id}
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	if c, ok := p.ch.(*amqp.Channel); ok && c != nil {
		_ = c.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
