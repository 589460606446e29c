package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records the counters of a single batch run into its own registry.
type Metrics struct {
	registry   *prometheus.Registry
	prometheus Prometheus
}

// New creates the metrics of a run, labelled with the run id.
func New(run string) *Metrics {
	registry := prometheus.NewRegistry()
	p := NewPrometheusMetrics()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"run": run}, registry)
	for _, c := range p.collectors() {
		wrapped.MustRegister(c)
	}
	return &Metrics{
		registry:   registry,
		prometheus: p,
	}
}

// Rows sets the row count of the named table.
func (m *Metrics) Rows(table string, n int) {
	m.prometheus.Rows.WithLabelValues(table).Set(float64(n))
}

// Dropped counts train rows dropped for a missing target.
func (m *Metrics) Dropped(n int) {
	m.prometheus.Dropped.Add(float64(n))
}

// Filled counts the cells of the named table resolved by backward fill.
func (m *Metrics) Filled(table string, n int) {
	m.prometheus.Filled.WithLabelValues(table).Add(float64(n))
}

// Unseen counts test rows with a category not seen at train time.
func (m *Metrics) Unseen(n int) {
	m.prometheus.Unseen.Add(float64(n))
}

// Fit sets a regression fit statistic.
func (m *Metrics) Fit(stat string, v float64) {
	m.prometheus.Fit.WithLabelValues(stat).Set(v)
}

// Predictions counts the predictions written to the result file.
func (m *Metrics) Predictions(n int) {
	m.prometheus.Predictions.Add(float64(n))
}

// Time records the duration of the stage since the given start.
func (m *Metrics) Time(stage string, start time.Time) {
	m.prometheus.Duration.WithLabelValues(stage).Set(time.Since(start).Seconds())
}

// Gatherer exposes the registry of the run.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// Flush writes the metrics in the text exposition format, to be picked up by a textfile collector.
// An empty path is a noop.
func (m *Metrics) Flush(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("could not write metrics to '%s': %w", path, err)
	}
	return nil
}
