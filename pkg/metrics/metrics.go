// Package metrics holds the prometheus collectors for push outcomes and soil
// matching. A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	PushEntries    *prometheus.CounterVec
	CacheLookups   *prometheus.CounterVec
	SoilIDFailures *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PushEntries: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soilsync",
			Name:      "push_entries_total",
			Help:      "Push entries processed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soilsync",
			Name:      "soil_id_cache_total",
			Help:      "Soil matching cache lookups, by result.",
		}, []string{"result"}),
		SoilIDFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "soilsync",
			Name:      "soil_id_failures_total",
			Help:      "Soil matching resolutions that returned a failure, by reason.",
		}, []string{"reason"}),
	}
}

func (m *Metrics) PushEntry(kind, outcome string) {
	if m == nil {
		return
	}
	m.PushEntries.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) CacheLookup(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) SoilIDFailure(reason string) {
	if m == nil {
		return
	}
	m.SoilIDFailures.WithLabelValues(reason).Inc()
}
