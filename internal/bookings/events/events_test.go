package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"salon/pkg/kafka"
	"salon/pkg/logger"
	"salon/pkg/middleware"
	"salon/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingProducer struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (r *recordingProducer) Publish(_ context.Context, msg kafka.Message) error {
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, msg)
	return nil
}

func (r *recordingProducer) Close() error {
	r.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := &recordingProducer{}
	pub := NewKafkaPublisher(producer, "bookings", logger.Discard())

	booking := &model.Booking{
		ID:          "3b241101-e2bb-4255-8caf-4136c566a962",
		BookingDate: "2026-06-01",
		TimeSlot:    model.TimeSlotEvening,
		Status:      model.StatusPending,
	}
	ctx := middleware.WithRequestID(context.Background(), "req-42")

	require.NoError(t, pub.Publish(ctx, TypeBookingCreated, booking))
	require.Len(t, producer.messages, 1)

	msg := producer.messages[0]
	assert.Equal(t, "2026-06-01:evening", msg.Key)
	assert.Equal(t, TypeBookingCreated, msg.GetEventType())
	assert.Equal(t, "req-42", msg.GetCorrelationID())
	assert.Equal(t, "bookings", msg.Headers[kafka.HeaderSource])

	var event BookingEvent
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.Equal(t, TypeBookingCreated, event.Type)
	assert.Equal(t, booking.ID, event.Booking.ID)
}

func TestKafkaPublisher_WrapsProducerError(t *testing.T) {
	boom := errors.New("no brokers")
	pub := NewKafkaPublisher(&recordingProducer{err: boom}, "bookings", logger.Discard())

	err := pub.Publish(context.Background(), TypeBookingDeleted, &model.Booking{BookingDate: "2026-01-01", TimeSlot: "morning"})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), TypeBookingDeleted)
}

func TestKafkaPublisher_Close(t *testing.T) {
	producer := &recordingProducer{}
	require.NoError(t, NewKafkaPublisher(producer, "bookings", logger.Discard()).Close())
	assert.True(t, producer.closed)
}

func TestNoopPublisher(t *testing.T) {
	pub := NewNoopPublisher()
	assert.NoError(t, pub.Publish(context.Background(), TypeBookingCreated, &model.Booking{}))
	assert.NoError(t, pub.Close())
}
