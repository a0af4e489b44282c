// Package prommetrics records extraction metrics in a Prometheus registry
// and writes them in the node_exporter textfile format.
package prommetrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/user/framesampler/pkg/ports"
)

// Metrics implements ports.Metrics.
type Metrics struct {
	registry *prometheus.Registry

	runs      *prometheus.CounterVec
	failures  *prometheus.CounterVec
	frames    *prometheus.CounterVec
	fallbacks prometheus.Counter
	duration  *prometheus.HistogramVec
}

// New creates Metrics on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framesampler_extractions_total",
			Help: "Completed extraction runs, by backend",
		}, []string{"backend"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framesampler_extraction_failures_total",
			Help: "Extraction runs that ended with an error, by backend",
		}, []string{"backend"}),
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "framesampler_frames_total",
			Help: "Target frames processed, by backend and outcome",
		}, []string{"backend", "outcome"}),
		fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "framesampler_backend_fallbacks_total",
			Help: "Parallel requests that ran on the sequential backend",
		}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "framesampler_extraction_duration_seconds",
			Help:    "Wall time of extraction runs",
			Buckets: []float64{0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		}, []string{"backend"}),
	}

	m.registry.MustRegister(m.runs, m.failures, m.frames, m.fallbacks, m.duration)
	return m
}

func (m *Metrics) ObserveExtraction(backend string, written, skipped int, elapsed time.Duration) {
	m.runs.WithLabelValues(backend).Inc()
	m.frames.WithLabelValues(backend, "written").Add(float64(written))
	m.frames.WithLabelValues(backend, "skipped").Add(float64(skipped))
	m.duration.WithLabelValues(backend).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveFailure(backend string) {
	m.failures.WithLabelValues(backend).Inc()
}

func (m *Metrics) ObserveFallback() {
	m.fallbacks.Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

var _ ports.Metrics = (*Metrics)(nil)
