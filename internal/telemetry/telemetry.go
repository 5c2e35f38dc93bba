// Package telemetry exposes Prometheus metrics and OpenTelemetry tracing
// spans around the two hot paths of this system: an inspector endpoint
// dispatching one request through the UI-thread marshaler, and a
// controller bridge invoking one request end-to-end.
package telemetry

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Config configures metric namespacing: Namespace, Subsystem, and the
// Registerer metrics are registered against.
type Config struct {
	Namespace string
	Subsystem string
	Registry  prometheus.Registerer
}

func (c Config) resolved() Config {
	if c.Namespace == "" {
		c.Namespace = "wpf_inspector"
	}
	if c.Registry == nil {
		c.Registry = prometheus.DefaultRegisterer
	}
	return c
}

// Metrics holds the counters and histograms both the endpoint and the
// bridge record against.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestErrors    *prometheus.CounterVec
	ConnectedClients prometheus.Gauge
	ActiveWatches    prometheus.Gauge
	NotificationsSent *prometheus.CounterVec
}

// New registers and returns a fresh Metrics set against cfg.Registry.
func New(cfg Config) *Metrics {
	cfg = cfg.resolved()
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "requests_total",
			Help:      "Total number of inspector requests handled, by kind and outcome.",
		}, []string{"kind", "outcome"}),

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Inspector request handling duration in seconds, by kind.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),

		RequestErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_errors_total",
			Help:      "Total inspector request errors, by kind and classified error kind.",
		}, []string{"kind", "error_kind"}),

		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "connected_clients",
			Help:      "Number of controllers currently connected to the inspector endpoint.",
		}),

		ActiveWatches: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "active_watches",
			Help:      "Number of active WatchProperty subscriptions.",
		}),

		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "notifications_sent_total",
			Help:      "Total notifications pushed to controllers, by kind.",
		}, []string{"kind"}),
	}
}

// ObserveRequest records one dispatched request's outcome and duration.
func (m *Metrics) ObserveRequest(kind string, start time.Time, errKind string) {
	outcome := "ok"
	if errKind != "" {
		outcome = "error"
		m.RequestErrors.WithLabelValues(kind, errKind).Inc()
	}
	m.RequestsTotal.WithLabelValues(kind, outcome).Inc()
	m.RequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// tracer is the package-wide otel tracer, named after this module's
// import path.
var tracer = otel.Tracer("github.com/faze79/WPFVisualTreeMcp/internal/telemetry")

// StartDispatchSpan opens a span around one endpoint-side request dispatch.
func StartDispatchSpan(ctx context.Context, kind string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "inspector.dispatch", trace.WithAttributes(
		attribute.String("request.kind", kind),
	))
}

// StartInvokeSpan opens a span around one bridge-side request invocation.
func StartInvokeSpan(ctx context.Context, kind string, processID int32) (context.Context, trace.Span) {
	return tracer.Start(ctx, "bridge.invoke", trace.WithAttributes(
		attribute.String("request.kind", kind),
		attribute.Int64("process.id", int64(processID)),
	))
}
