package orrery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "orrery"

// Metrics holds the Prometheus series of the kernel. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	keplerDegraded     prometheus.Counter
	keplerIterations   prometheus.Histogram
	tessellationPoints *prometheus.HistogramVec
	midpoints          prometheus.Counter
	orbitsAttached     prometheus.Gauge
	disposalFailures   prometheus.Counter
}

// NewMetrics registers the kernel metrics on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	auto := promauto.With(reg)
	return &Metrics{
		keplerDegraded: auto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "kepler",
			Name:      "convergence_degraded_total",
			Help:      "Kepler solves which hit the iteration cap before meeting tolerance",
		}),
		keplerIterations: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "kepler",
			Name:      "iterations",
			Help:      "Newton-Raphson iterations per Kepler solve",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64, 100},
		}),
		tessellationPoints: auto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "tessellation",
			Name:      "points",
			Help:      "Points per tessellated orbit path",
			Buckets:   prometheus.ExponentialBuckets(500, 2, 6),
		}, []string{"policy"}),
		midpoints: auto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "tessellation",
			Name:      "midpoints_total",
			Help:      "Midpoint samples inserted on fast arcs",
		}),
		orbitsAttached: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "orbits_attached",
			Help:      "Orbit path resources currently registered with a scene",
		}),
		disposalFailures: auto.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "resource",
			Name:      "disposal_failures_total",
			Help:      "Graphics buffer releases which failed and were ignored",
		}),
	}
}

func (m *Metrics) observeSolve(s OrbitalState) {
	if m == nil {
		return
	}
	m.keplerIterations.Observe(float64(s.Iterations))
	if s.Degraded {
		m.keplerDegraded.Inc()
	}
}

func (m *Metrics) observePath(p OrbitPath) {
	if m == nil {
		return
	}
	m.tessellationPoints.WithLabelValues(p.Policy).Observe(float64(p.Len()))
	m.midpoints.Add(float64(p.Midpoints))
}

func (m *Metrics) attached(n int) {
	if m == nil {
		return
	}
	m.orbitsAttached.Set(float64(n))
}

func (m *Metrics) disposalFailed() {
	if m == nil {
		return
	}
	m.disposalFailures.Inc()
}
