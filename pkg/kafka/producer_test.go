package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu       sync.Mutex
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func newTestProducer(writer, dlq *fakeWriter) *Producer {
	p := &Producer{writer: writer, topic: "salon.bookings"}
	if dlq != nil {
		p.dlqWriter = dlq
		p.dlqTopic = "salon.bookings.dlq"
	}
	return p
}

func buildMessage(t *testing.T) Message {
	t.Helper()
	msg, err := NewMessage().
		WithKey("2026-06-01:morning").
		WithValue(map[string]any{"id": "abc"}).
		WithEventType("booking.created").
		WithSource("bookings").
		Build()
	require.NoError(t, err)
	return msg
}

func TestMessageBuilder(t *testing.T) {
	msg := buildMessage(t)

	assert.Equal(t, "2026-06-01:morning", msg.Key)
	assert.JSONEq(t, `{"id":"abc"}`, string(msg.Value))
	assert.NotEmpty(t, msg.GetEventID())
	assert.Equal(t, "booking.created", msg.GetEventType())
	assert.NotEmpty(t, msg.Headers[HeaderTimestamp])

	_, err := NewMessage().WithKey("k").WithValue(make(chan int)).Build()
	assert.ErrorIs(t, err, ErrInvalidMessage)
}

func TestProducer_Publish(t *testing.T) {
	writer := &fakeWriter{}
	p := newTestProducer(writer, nil)

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))
	require.Len(t, writer.messages, 1)
	assert.Equal(t, []byte("2026-06-01:morning"), writer.messages[0].Key)

	headers := map[string]string{}
	for _, h := range writer.messages[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "booking.created", headers[HeaderEventType])
}

func TestProducer_RejectsInvalidMessages(t *testing.T) {
	p := newTestProducer(&fakeWriter{}, nil)

	assert.ErrorIs(t, p.Publish(context.Background(), Message{Value: []byte("x")}), ErrEmptyKey)
	assert.ErrorIs(t, p.Publish(context.Background(), Message{Key: "k"}), ErrEmptyValue)
}

func TestProducer_MiddlewareOrder(t *testing.T) {
	p := newTestProducer(&fakeWriter{}, nil)

	var order []string
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "outer")
		return next(ctx, msg)
	})
	p.Use(func(ctx context.Context, msg Message, next func(context.Context, Message) error) error {
		order = append(order, "inner:"+msg.Topic)
		return next(ctx, msg)
	})

	require.NoError(t, p.Publish(context.Background(), buildMessage(t)))
	assert.Equal(t, []string{"outer", "inner:salon.bookings"}, order)
}

func TestProducer_FailureGoesToDLQ(t *testing.T) {
	boom := errors.New("leader not available")
	dlq := &fakeWriter{}
	p := newTestProducer(&fakeWriter{err: boom}, dlq)

	msg := buildMessage(t)
	err := p.Publish(context.Background(), msg)
	assert.ErrorIs(t, err, boom)
	require.Len(t, dlq.messages, 1)

	headers := map[string]string{}
	for _, h := range dlq.messages[0].Headers {
		headers[h.Key] = string(h.Value)
	}
	assert.Equal(t, "salon.bookings", headers[HeaderOriginalTopic])
	assert.Equal(t, boom.Error(), headers["dlq-error"])
	_, mutated := msg.Headers[HeaderOriginalTopic]
	assert.False(t, mutated, "caller's headers are not modified")
}

func TestProducer_Close(t *testing.T) {
	writer := &fakeWriter{}
	dlq := &fakeWriter{}
	p := newTestProducer(writer, dlq)

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
	assert.True(t, dlq.closed)
	assert.ErrorIs(t, p.Publish(context.Background(), buildMessage(t)), ErrProducerClosed)
}
