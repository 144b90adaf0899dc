package kafka_middleware

import (
	"context"
	"time"

	"salon/pkg/kafka"
	"salon/pkg/metrics"
)

// MetricsProducerMiddleware records publish counts and latency per topic.
func MetricsProducerMiddleware() kafka.ProducerMiddleware {
	metrics.Register()
	return func(ctx context.Context, msg kafka.Message, next func(ctx context.Context, msg kafka.Message) error) error {
		start := time.Now()
		err := next(ctx, msg)
		metrics.ObserveKafkaPublish(msg.Topic, err, time.Since(start))
		return err
	}
}
