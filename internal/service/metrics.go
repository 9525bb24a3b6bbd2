package service

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeError        = "error"
)

// Metrics holds the service's Prometheus collectors. They live on their own
// registry so several servers can run in one process (tests do).
type Metrics struct {
	registry *prometheus.Registry

	Calculations *prometheus.CounterVec
	Duration     *prometheus.HistogramVec
	EmissionsKg  *prometheus.CounterVec
}

// NewMetrics creates and registers the service collectors on a fresh
// registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ghgcalc_calculations_total",
			Help: "Total number of emission calculations by scope and outcome",
		}, []string{"scope", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ghgcalc_calculation_duration_seconds",
			Help:    "Time spent computing emissions by scope",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"scope"}),
		EmissionsKg: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ghgcalc_emissions_co2e_kg_total",
			Help: "Sum of kg CO2e returned by successful calculations by scope",
		}, []string{"scope"}),
	}
}

// Registry returns the registry the collectors are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) observe(scope, outcome string, elapsed time.Duration, co2e float64) {
	if m == nil {
		return
	}
	m.Calculations.WithLabelValues(scope, outcome).Inc()
	m.Duration.WithLabelValues(scope).Observe(elapsed.Seconds())
	if outcome == OutcomeSuccess && co2e > 0 {
		m.EmissionsKg.WithLabelValues(scope).Add(co2e)
	}
}
