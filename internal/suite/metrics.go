package suite

import (
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gotrs-io/hrm-e2e/internal/models"
)

// Metrics records suite results on its own registry, suitable for the
// node_exporter textfile collector.
type Metrics struct {
	registry     *prometheus.Registry
	outcomes     *prometheus.CounterVec
	steps        *prometheus.HistogramVec
	stepFailures *prometheus.CounterVec
	runs         *prometheus.CounterVec
	lastSuccess  prometheus.Gauge
	lastRun      prometheus.Gauge
	lastDuration prometheus.Gauge
}

// NewMetrics creates the suite metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrm_e2e",
			Name:      "verifications_total",
			Help:      "Employee verifications by outcome.",
		}, []string{"outcome"}),
		steps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrm_e2e",
			Name:      "step_duration_seconds",
			Help:      "Duration of suite steps.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"step"}),
		stepFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrm_e2e",
			Name:      "step_failures_total",
			Help:      "Suite steps that returned an error.",
		}, []string{"step"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrm_e2e",
			Name:      "runs_total",
			Help:      "Completed suite runs by result.",
		}, []string{"result"}),
		lastSuccess: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "hrm_e2e",
			Name:      "last_run_success",
			Help:      "1 if the last run finished without error.",
		}),
		lastRun: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "hrm_e2e",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished.",
		}),
		lastDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "hrm_e2e",
			Name:      "last_run_duration_seconds",
			Help:      "Wall time of the last run.",
		}),
	}
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveStep records one step's duration and failure.
func (m *Metrics) ObserveStep(step string, d time.Duration, err error) {
	m.steps.WithLabelValues(step).Observe(d.Seconds())
	if err != nil {
		m.stepFailures.WithLabelValues(step).Inc()
	}
}

// ObserveRun records a finished run.
func (m *Metrics) ObserveRun(report *models.RunReport, err error) {
	for _, r := range report.Results {
		m.outcomes.WithLabelValues(r.Outcome.String()).Inc()
	}
	result := "success"
	success := 1.0
	if err != nil {
		result, success = "failure", 0
	}
	m.runs.WithLabelValues(result).Inc()
	m.lastSuccess.Set(success)
	m.lastRun.Set(float64(report.FinishedAt.Unix()))
	m.lastDuration.Set(report.Duration().Seconds())
}

// WriteTextfile writes the registry in text exposition format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return prometheus.WriteToTextfile(path, m.registry)
}
