package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder owns the prometheus collectors of one process. It uses its own
// registry so that tests and the metrics file only see fibnum series.
type Recorder struct {
	registry     *prometheus.Registry
	calculations *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	resultBits   *prometheus.GaugeVec
	progress     *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		calculations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fibnum_calculations_total",
			Help: "Fibonacci calculations processed, by algorithm and status.",
		}, []string{"algorithm", "status"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fibnum_calculation_duration_seconds",
			Help:    "Duration of Fibonacci calculations.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12),
		}, []string{"algorithm"}),
		resultBits: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fibnum_result_bits",
			Help: "Bit length of the last result of each algorithm.",
		}, []string{"algorithm"}),
		progress: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fibnum_calculation_progress",
			Help: "Progress of running calculations (0.0 to 1.0).",
		}, []string{"calculator_index"}),
	}
}

// Default is the process-wide recorder used by the calculators.
var Default = NewRecorder()

// ObserveCalculation counts one calculation and records its duration.
func (r *Recorder) ObserveCalculation(algorithm string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	r.calculations.WithLabelValues(algorithm, status).Inc()
	r.duration.WithLabelValues(algorithm).Observe(d.Seconds())
}

// SetResultBits records the bit length of a result.
func (r *Recorder) SetResultBits(algorithm string, bits int) {
	r.resultBits.WithLabelValues(algorithm).Set(float64(bits))
}

// ProgressGauge returns the gauge fed by progress.MetricsObserver.
func (r *Recorder) ProgressGauge() *prometheus.GaugeVec {
	return r.progress
}

// Gatherer exposes the registry for exporters.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every series in the text exposition format, for the
// node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
