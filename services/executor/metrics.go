package executor

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/torrejonv/movecall/util"
)

var (
	// prometheusStepSeconds observes the duration of each flow step
	prometheusStepSeconds *prometheus.HistogramVec

	// prometheusRuns counts runs by outcome
	prometheusRuns *prometheus.CounterVec

	prometheusMetricsInitOnce sync.Once
)

func initPrometheusMetrics() {
	prometheusMetricsInitOnce.Do(_initPrometheusMetrics)
}

func _initPrometheusMetrics() {
	prometheusStepSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "movecall",
			Name:      "step_seconds",
			Help:      "Duration of each step of the move call flow",
			Buckets:   util.MetricsBucketsMilliLongSeconds,
		},
		[]string{"step"},
	)

	prometheusRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "movecall",
			Name:      "runs_total",
			Help:      "Number of move call runs by result",
		},
		[]string{"result"},
	)
}

// WriteMetrics writes the default registry to path in the node exporter textfile format.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
