package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "salon"

// Booking operation outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	bookingOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_operations_total",
			Help:      "Booking service operations by outcome.",
		},
		[]string{"operation", "outcome"},
	)

	kafkaPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "kafka_messages_published_total",
			Help:      "Kafka publish attempts by topic and result.",
		},
		[]string{"topic", "result"},
	)

	kafkaPublishDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "kafka_publish_duration_seconds",
			Help:      "Kafka publish latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"topic"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			httpDuration,
			bookingOperations,
			kafkaPublished,
			kafkaPublishDuration,
		)
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

func ObserveHTTP(method, path string, status int, duration time.Duration) {
	route := RouteLabel(path)
	method = MethodLabel(method)
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func IncBooking(operation, outcome string) {
	bookingOperations.WithLabelValues(operation, outcome).Inc()
}

func ObserveKafkaPublish(topic string, err error, duration time.Duration) {
	result := OutcomeSuccess
	if err != nil {
		result = OutcomeError
	}
	kafkaPublished.WithLabelValues(topic, result).Inc()
	kafkaPublishDuration.WithLabelValues(topic).Observe(duration.Seconds())
}

// RouteOther labels every path that is not an API route.
const RouteOther = "other"

var knownRoutes = map[string]bool{
	"/api/":                   true,
	"/api/bookings":           true,
	"/api/availability":       true,
	"/api/availability/range": true,
	"/health":                 true,
	"/ready":                  true,
	"/metrics":                true,
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// RouteLabel maps a request path to its route pattern. Anything after
// /api/bookings/ is the id; unknown paths share one label.
func RouteLabel(path string) string {
	if knownRoutes[path] {
		return path
	}
	if id, ok := strings.CutPrefix(path, "/api/bookings/"); ok && id != "" && !strings.Contains(id, "/") {
		return "/api/bookings/:id"
	}
	return RouteOther
}

// MethodLabel keeps the standard methods and folds the rest into "OTHER".
func MethodLabel(method string) string {
	if knownMethods[method] {
		return method
	}
	return "OTHER"
}
