// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Score buckets cover the 0..100 range in steps of ten.
var scoreBuckets = prometheus.LinearBuckets(10, 10, 10)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	FitScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fit_score",
			Help:    "Distribution of computed candidate/job fit scores",
			Buckets: scoreBuckets,
		},
	)

	QualityScores = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_quality_score",
			Help:    "Distribution of job posting quality scores",
			Buckets: scoreBuckets,
		},
		[]string{"publish_status"},
	)

	AttemptEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_attempt_events_total",
			Help: "Attempt events applied, by event type and outcome",
		},
		[]string{"event", "outcome"},
	)

	AssessmentOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_outcomes_total",
			Help: "Scored assessments by pass/fail",
		},
		[]string{"passed"},
	)

	AssessmentTotalScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_total_score",
			Help:    "Distribution of assessment total scores (0..27)",
			Buckets: prometheus.LinearBuckets(4, 4, 7),
		},
	)
)

// JobStarted marks a job active and returns a func that records its outcome.
// errorCode is empty on success.
func JobStarted(taskType string) func(errorCode string) {
	start := time.Now()
	WorkerJobsActive.WithLabelValues(taskType).Inc()

	return func(errorCode string) {
		WorkerJobsActive.WithLabelValues(taskType).Dec()
		WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(start).Seconds())
		if errorCode == "" {
			WorkerJobsCompleted.WithLabelValues(taskType).Inc()
			return
		}
		WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	}
}
