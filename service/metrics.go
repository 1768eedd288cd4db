package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	resolutions  *prometheus.CounterVec
	stepFailures *prometheus.CounterVec
}

// NewMetrics creates the listing collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio_gallery",
			Name:      "resolutions_total",
			Help:      "Listings resolved, by listing and winning strategy kind.",
		}, []string{"listing", "strategy"}),
		stepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "studio_gallery",
			Name:      "strategy_failures_total",
			Help:      "Strategies that failed against the asset store, by kind.",
		}, []string{"strategy"}),
	}
	if reg != nil {
		reg.MustRegister(m.resolutions, m.stepFailures)
	}
	return m
}

func (m *Metrics) resolved(listing, kind string) {
	if m == nil {
		return
	}
	if kind == "" {
		kind = "none"
	}
	m.resolutions.WithLabelValues(listing, kind).Inc()
}

func (m *Metrics) stepFailed(kind string) {
	if m == nil {
		return
	}
	m.stepFailures.WithLabelValues(kind).Inc()
}
