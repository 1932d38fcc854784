package prometheus

import (
	"time"
)

// AppMetrics holds all application metrics.
type AppMetrics struct {
	// Evaluation
	EvaluationsTotal     CounterVec
	EvaluationScore      HistogramVec
	EvaluationDuration   HistogramVec
	RuleActivationsTotal CounterVec
	NoRuleFiredTotal     CounterVec
	AdvisoriesTotal      CounterVec

	// Dataset
	DatasetLoadsTotal   CounterVec
	DatasetRows         GaugeVec
	DatasetLoadDuration HistogramVec

	// System Health
	ErrorsTotal CounterVec
}

// Default Buckets
var (
	DefaultScoreBuckets    = []float64{10, 20, 35, 50, 60, 70, 80, 90, 100}
	DefaultDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultLoadBuckets     = []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5, 5}
)

// NewAppMetrics registers all metrics and returns AppMetrics struct.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	m := &AppMetrics{}

	// Evaluation
	m.EvaluationsTotal = collector.RegisterCounter("evaluations_total", "Feasibility evaluations by category", "category")
	m.EvaluationScore = collector.RegisterHistogram("evaluation_score", "Defuzzified feasibility score", DefaultScoreBuckets)
	m.EvaluationDuration = collector.RegisterHistogram("evaluation_duration_seconds", "Evaluation duration", DefaultDurationBuckets)
	m.RuleActivationsTotal = collector.RegisterCounter("rule_activations_total", "Rules fired with non-zero strength", "rule")
	m.NoRuleFiredTotal = collector.RegisterCounter("no_rule_fired_total", "Evaluations in which no rule fired")
	m.AdvisoriesTotal = collector.RegisterCounter("advisories_total", "Input advisories raised", "code")

	// Dataset
	m.DatasetLoadsTotal = collector.RegisterCounter("dataset_loads_total", "Dataset load attempts", "status")
	m.DatasetRows = collector.RegisterGauge("dataset_rows", "Rows in the last loaded dataset", "state")
	m.DatasetLoadDuration = collector.RegisterHistogram("dataset_load_duration_seconds", "Dataset load duration", DefaultLoadBuckets)

	// System Health
	m.ErrorsTotal = collector.RegisterCounter("errors_total", "Total errors", "component", "error_code")

	return m
}

// Helpers

// RecordEvaluation records one completed evaluation.
func RecordEvaluation(metrics *AppMetrics, category string, score float64, rules []string, noRuleFired bool, duration time.Duration) {
	metrics.EvaluationsTotal.WithLabelValues(category).Inc()
	metrics.EvaluationScore.WithLabelValues().Observe(score)
	metrics.EvaluationDuration.WithLabelValues().Observe(duration.Seconds())
	for _, r := range rules {
		metrics.RuleActivationsTotal.WithLabelValues(r).Inc()
	}
	if noRuleFired {
		metrics.NoRuleFiredTotal.WithLabelValues().Inc()
	}
}

func RecordAdvisory(metrics *AppMetrics, code string) {
	metrics.AdvisoriesTotal.WithLabelValues(code).Inc()
}

// RecordDatasetLoad records a dataset load; rows are ignored when err is set.
func RecordDatasetLoad(metrics *AppMetrics, rows, validRows, droppedRows int, duration time.Duration, err error) {
	metrics.DatasetLoadDuration.WithLabelValues().Observe(duration.Seconds())
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues("failure").Inc()
		return
	}
	metrics.DatasetLoadsTotal.WithLabelValues("success").Inc()
	metrics.DatasetRows.WithLabelValues("total").Set(float64(rows))
	metrics.DatasetRows.WithLabelValues("valid").Set(float64(validRows))
	metrics.DatasetRows.WithLabelValues("dropped").Set(float64(droppedRows))
}

func RecordError(metrics *AppMetrics, component, errorCode string) {
	metrics.ErrorsTotal.WithLabelValues(component, errorCode).Inc()
}

//Personal.AI order the ending
