package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "lifexp"

// Prometheus holds the collectors of a run.
type Prometheus struct {
	Rows        *prometheus.GaugeVec
	Dropped     prometheus.Counter
	Filled      *prometheus.CounterVec
	Unseen      prometheus.Counter
	Fit         *prometheus.GaugeVec
	Predictions prometheus.Counter
	Duration    *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Rows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "rows",
				Help:      "Rows of the processed tables.",
			}, []string{"table"}),
		Dropped: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "dropped_rows_total",
				Help:      "Train rows dropped for a missing target.",
			}),
		Filled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "filled_cells_total",
				Help:      "Missing cells resolved by backward fill.",
			}, []string{"table"}),
		Unseen: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "unseen_categories_total",
				Help:      "Test rows with a category not seen at train time.",
			}),
		Fit: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "fit",
				Help:      "Regression fit statistics.",
			}, []string{"stat"}),
		Predictions: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "predictions_total",
				Help:      "Predictions written to the result file.",
			}),
		Duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each run stage.",
			}, []string{"stage"}),
	}
}

func (p Prometheus) collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Rows, p.Dropped, p.Filled, p.Unseen, p.Fit, p.Predictions, p.Duration}
}
