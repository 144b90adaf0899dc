package events

import (
	"context"
	"fmt"
	"time"

	"salon/pkg/kafka"
	"salon/pkg/logger"
	"salon/pkg/middleware"
	"salon/pkg/model"
)

const (
	TypeBookingCreated       = "booking.created"
	TypeBookingStatusUpdated = "booking.status_updated"
	TypeBookingDeleted       = "booking.deleted"

	SchemaVersion = "1"
)

// BookingEvent is the payload of every booking lifecycle event.
type BookingEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurred_at"`
	Booking    *model.Booking `json:"booking"`
}

type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
	Close() error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer MessagePublisher, source string, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, source: source, log: log}
}

// SlotKey is the partition key: events for one slot stay ordered.
func SlotKey(booking *model.Booking) string {
	return booking.BookingDate + ":" + booking.TimeSlot
}

func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	msg, err := kafka.NewMessage().
		WithKey(SlotKey(booking)).
		WithValue(BookingEvent{Type: eventType, OccurredAt: time.Now().UTC(), Booking: booking}).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(p.source).
		WithCorrelationID(middleware.GetRequestID(ctx)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher is used when no Kafka brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error { return nil }

func (noopPublisher) Close() error { return nil }
