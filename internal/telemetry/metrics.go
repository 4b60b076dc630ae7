package telemetry

import (
	"fmt"
	"time"

	"github.com/dunamismax/storekit/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts what a single tool run produced. Tools are short-lived, so
// the registry is dumped to a textfile instead of being served. Go runtime
// collectors are left out to avoid clashing with the scraping exporter's own.
//
// All methods are safe on a nil *Metrics.
type Metrics struct {
	registry      *prometheus.Registry
	assetsWritten *prometheus.CounterVec
	failures      *prometheus.CounterVec
	pixelsWritten *prometheus.CounterVec
	runDuration   *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		assetsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storekit_assets_written_total",
			Help: "Total asset files written by tool and format.",
		}, []string{"tool", "format"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storekit_asset_failures_total",
			Help: "Total asset failures by tool and pipeline stage.",
		}, []string{"tool", "stage"}),
		pixelsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "storekit_pixels_written_total",
			Help: "Total output pixels written by tool.",
		}, []string{"tool"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "storekit_run_duration_seconds",
			Help:    "Wall time of each tool run.",
			Buckets: prometheus.DefBuckets,
		}, []string{"tool"}),
	}

	m.registry.MustRegister(
		m.assetsWritten,
		m.failures,
		m.pixelsWritten,
		m.runDuration,
	)
	return m
}

func (m *Metrics) RecordAsset(tool string, format domain.Format, width, height int) {
	if m == nil {
		return
	}
	m.assetsWritten.WithLabelValues(tool, string(format)).Inc()
	m.pixelsWritten.WithLabelValues(tool).Add(float64(width * height))
}

func (m *Metrics) RecordFailure(tool, stage string) {
	if m == nil {
		return
	}
	m.failures.WithLabelValues(tool, stage).Inc()
}

func (m *Metrics) ObserveRun(tool string, d time.Duration) {
	if m == nil {
		return
	}
	m.runDuration.WithLabelValues(tool).Observe(d.Seconds())
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// WriteTextfile writes the registry in Prometheus text format, for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
