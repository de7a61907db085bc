// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hauler"

// Job lifecycle, labelled by Zeebe task type.
var (
	WorkerJobsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "jobs_completed_total",
		Help:      "Jobs completed, by task type",
	}, []string{"task_type"})

	WorkerJobsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "jobs_failed_total",
		Help:      "Jobs failed or thrown as BPMN errors, by task type and error code",
	}, []string{"task_type", "error_code"})

	WorkerJobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "job_duration_seconds",
		Help:      "Job handling time including the complete/fail command",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"task_type"})

	WorkerJobsActive = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "jobs_active",
		Help:      "Jobs currently being handled",
	}, []string{"task_type"})
)

// Entitlement outcomes.
var (
	EntitlementDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "entitlement",
		Name:      "decisions_total",
		Help:      "Access decisions by check, tier and outcome",
	}, []string{"check", "tier", "outcome"})

	UpgradeSuggestions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "entitlement",
		Name:      "upgrade_suggestions_total",
		Help:      "Upgrade suggestions made, by current and suggested tier",
	}, []string{"tier", "suggested_tier"})
)

// RecordDecision counts one access decision. check is "feature",
// "service_area" or "job_request".
func RecordDecision(check, tier string, allowed bool) {
	outcome := "denied"
	if allowed {
		outcome = "allowed"
	}
	EntitlementDecisions.WithLabelValues(check, tier, outcome).Inc()
}

func RecordUpgradeSuggestion(tier, suggested string) {
	UpgradeSuggestions.WithLabelValues(tier, suggested).Inc()
}
