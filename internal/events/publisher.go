// Package events publishes domain events to RabbitMQ so downstream
// consumers (notifications, analytics) can react to seat and screening
// changes. Publishing is fire-and-forget from the caller's point of
// view: services log a failed publish and carry on.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const (
	RoutingKeySeatReserved     = "seat.reserved"
	RoutingKeySeatReleased     = "seat.released"
	RoutingKeyScreeningDeleted = "screening.deleted"
	RoutingKeyUserDeleted      = "user.deleted"
)

// SeatEvent describes one seat changing hands.
type SeatEvent struct {
	ScreeningID uuid.UUID `json:"screening_id"`
	UserID      uuid.UUID `json:"user_id"`
	Row         int       `json:"row"`
	Seat        int       `json:"seat"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// ScreeningDeletedEvent is emitted after a screening and its holds are
// removed in one transaction.
type ScreeningDeletedEvent struct {
	ScreeningID   uuid.UUID `json:"screening_id"`
	HoldsReleased int64     `json:"holds_released"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// UserDeletedEvent is emitted after a user and their holds are removed
// in one transaction.
type UserDeletedEvent struct {
	UserID        uuid.UUID `json:"user_id"`
	HoldsReleased int64     `json:"holds_released"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, event any) error
}

type RabbitPublisher struct {
	url string
	log *zap.Logger
}

func NewRabbitPublisher(url string, log *zap.Logger) *RabbitPublisher {
	return &RabbitPublisher{
		url: url,
		log: log.With(zap.String("publisher", "rabbitmq")),
	}
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", routingKey, err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		p.log.Error("Failed to connect to RabbitMQ",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
		return fmt.Errorf("connect to rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer ch.Close()

	queue, err := ch.QueueDeclare(
		routingKey,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", routingKey, err)
	}

	err = ch.PublishWithContext(ctx,
		"",
		queue.Name,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
		return fmt.Errorf("publish event %s: %w", routingKey, err)
	}

	p.log.Debug("Published event", zap.String("routing_key", routingKey))
	return nil
}
