package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"salon/pkg/logger"
	"salon/pkg/model"
)

var (
	ErrQueueFull       = errors.New("event queue is full")
	ErrPublisherClosed = errors.New("event publisher is closed")
)

type pendingEvent struct {
	ctx       context.Context
	eventType string
	booking   model.Booking
}

// AsyncPublisher hands events to a single background worker so a slow
// broker never holds up the request that produced them. Events keep their
// submission order. Each publish gets its own timeout, detached from the
// request deadline but keeping its values (request id).
type AsyncPublisher struct {
	next    Publisher
	timeout time.Duration
	log     *logger.Logger

	queue chan pendingEvent
	done  chan struct{}

	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once
	closeErr  error
}

func NewAsyncPublisher(next Publisher, timeout time.Duration, queueSize int, log *logger.Logger) *AsyncPublisher {
	if queueSize <= 0 {
		queueSize = 1
	}
	p := &AsyncPublisher{
		next:    next,
		timeout: timeout,
		log:     log,
		queue:   make(chan pendingEvent, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// Publish enqueues a copy of booking and returns at once. It fails only
// when the queue is full or the publisher is closed.
func (p *AsyncPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPublisherClosed
	}

	select {
	case p.queue <- pendingEvent{ctx: context.WithoutCancel(ctx), eventType: eventType, booking: *booking}:
		return nil
	default:
		return ErrQueueFull
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)
	for ev := range p.queue {
		p.deliver(ev)
	}
}

func (p *AsyncPublisher) deliver(ev pendingEvent) {
	ctx := ev.ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	if err := p.next.Publish(ctx, ev.eventType, &ev.booking); err != nil {
		p.log.Warn("Failed to publish booking event",
			"event_type", ev.eventType,
			"id", ev.booking.ID,
			"error", err,
		)
	}
}

// Close stops accepting events, waits for the queued ones and closes the
// wrapped publisher.
func (p *AsyncPublisher) Close() error {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.queue)
		p.mu.Unlock()

		<-p.done
		p.closeErr = p.next.Close()
	})
	return p.closeErr
}
