package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeRejected  = "rejected"
	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
	OutcomeDiscarded = "discarded"
)

var (
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "studio_workflow_submissions_total",
		Help: "Workflow submissions by workflow and outcome",
	}, []string{"workflow", "outcome"})

	BackendDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "studio_backend_request_duration_seconds",
		Help:    "Round-trip time of generation backend calls",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"workflow"})

	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "studio_active_sessions",
		Help: "Browser sessions currently holding workflow state",
	})
)

// ObserveSubmission records the outcome of one submission attempt. A zero
// start skips the latency histogram (local rejections never reach the backend).
func ObserveSubmission(workflow, outcome string, start time.Time) {
	Submissions.WithLabelValues(workflow, outcome).Inc()
	if !start.IsZero() {
		BackendDuration.WithLabelValues(workflow).Observe(time.Since(start).Seconds())
	}
}
