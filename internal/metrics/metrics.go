// Package metrics exposes editor counters for local diagnostics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the editor collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	reg     *prometheus.Registry
	events  *prometheus.CounterVec
	saves   *prometheus.CounterVec
	objects prometheus.Gauge
	history prometheus.Gauge
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "events_total",
			Help:      "Editor events handled, by kind.",
		}, []string{"kind"}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "citymap",
			Name:      "saves_total",
			Help:      "Save attempts, by result.",
		}, []string{"result"}),
		objects: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "citymap",
			Name:      "objects",
			Help:      "Objects currently in the scene.",
		}),
		history: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "citymap",
			Name:      "history_depth",
			Help:      "Undo entries currently held.",
		}),
	}
	m.reg.MustRegister(m.events, m.saves, m.objects, m.history)
	return m
}

// Event counts one handled input of the given kind.
func (m *Metrics) Event(kind string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind).Inc()
}

// Save records a save attempt.
func (m *Metrics) Save(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.saves.WithLabelValues(result).Inc()
}

// Observe updates the scene and history gauges.
func (m *Metrics) Observe(objects, historyDepth int) {
	if m == nil {
		return
	}
	m.objects.Set(float64(objects))
	m.history.Set(float64(historyDepth))
}

// Registry returns the underlying registry; nil for a nil receiver.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.reg
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
