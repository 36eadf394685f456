// Package metrics exposes the Prometheus collectors recorded by the analyzers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraudtect"

// Metrics agrupa los collectors sobre un registry propio.
// Un *Metrics nil es válido y no registra nada.
type Metrics struct {
	registry *prometheus.Registry

	analyses         *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	externalFailures *prometheus.CounterVec
}

// New crea los collectors y los registra, junto con los de runtime de Go.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Completed analyses by input type and verdict.",
		}, []string{"type", "verdict"}),
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "Wall time of one analysis call.",
			Buckets:   []float64{.005, .025, .1, .5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"type"}),
		externalFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "external_failures_total",
			Help:      "External signals that failed, by source.",
		}, []string{"source"}),
	}

	reg.MustRegister(
		m.analyses,
		m.analysisDuration,
		m.externalFailures,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveAnalysis cuenta un análisis terminado y su duración.
func (m *Metrics) ObserveAnalysis(kind, verdict string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(kind, verdict).Inc()
	m.analysisDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ExternalFailure cuenta una señal externa fallida (dns, rdap, virustotal...).
func (m *Metrics) ExternalFailure(source string) {
	if m == nil {
		return
	}
	m.externalFailures.WithLabelValues(source).Inc()
}

// Handler sirve el registry en formato de exposición de Prometheus.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry retorna el registry subyacente.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}
