package analytics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/alexanderramin/giftbox/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsSink counts events by name.
type MetricsSink struct {
	events *prometheus.CounterVec
}

// NewMetricsSink registers giftbox_events_total on reg.
func NewMetricsSink(reg prometheus.Registerer) (*MetricsSink, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "giftbox_events_total",
		Help: "Analytics events recorded, by event name.",
	}, []string{"event"})
	if err := reg.Register(events); err != nil {
		return nil, fmt.Errorf("registering events counter: %w", err)
	}
	return &MetricsSink{events: events}, nil
}

func (s *MetricsSink) Name() string { return "metrics" }

func (s *MetricsSink) Write(_ context.Context, event domain.AnalyticsEvent) error {
	s.events.WithLabelValues(event.Name).Inc()
	return nil
}

// Counter exposes the underlying vector for inspection.
func (s *MetricsSink) Counter() *prometheus.CounterVec {
	return s.events
}

// MetricsServer serves a registry over HTTP.
type MetricsServer struct {
	server *http.Server
}

// NewMetricsRegistry returns a registry with Go runtime and process collectors.
func NewMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return reg
}

// NewMetricsServer exposes reg at /metrics on addr.
func NewMetricsServer(addr string, reg *prometheus.Registry) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	return &MetricsServer{server: &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

// Start serves in the background. Listen errors are reported through onErr.
func (m *MetricsServer) Start(onErr func(error)) {
	go func() {
		if err := m.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && onErr != nil {
			onErr(err)
		}
	}()
}

// Shutdown stops the server.
func (m *MetricsServer) Shutdown(ctx context.Context) error {
	return m.server.Shutdown(ctx)
}
