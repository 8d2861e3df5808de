package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application collectors.
type Metrics struct {
	// HTTP request totals labelled by method, path and status code.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency labelled by method and path.
	HTTPRequestDuration *prometheus.HistogramVec

	// Reserve outcomes: success, conflict, validation, not_found, error.
	ReservationsTotal *prometheus.CounterVec

	// Holds removed by releases and cascades, labelled by cause.
	HoldsReleasedTotal *prometheus.CounterVec
}

// New creates the collectors and registers them on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry registers the collectors on the given registry. Tests
// pass a private registry to avoid duplicate registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		ReservationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_reservations_total",
				Help: "Total number of seat reservation attempts by outcome",
			},
			[]string{"status"},
		),
		HoldsReleasedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_holds_released_total",
				Help: "Total number of seat holds removed by cause",
			},
			[]string{"cause"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.ReservationsTotal,
		m.HoldsReleasedTotal,
	)

	return m
}

// ObserveReservation records the outcome of a Reserve attempt.
func (m *Metrics) ObserveReservation(status string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(status).Inc()
}

// ObserveRelease records holds removed by a release or cascade.
func (m *Metrics) ObserveRelease(cause string, count int64) {
	if m == nil {
		return
	}
	m.HoldsReleasedTotal.WithLabelValues(cause).Add(float64(count))
}
