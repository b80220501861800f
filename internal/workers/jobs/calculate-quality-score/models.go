// internal/workers/jobs/calculate-quality-score/models.go
package calculatequalityscore

import (
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/quality"
)

type Input struct {
	Job models.Job `json:"job"`
	// DryRun scores without writing to the jobs table.
	DryRun bool `json:"dryRun,omitempty"`
}

type Output struct {
	JobID         string            `json:"jobId"`
	QualityScore  int               `json:"qualityScore"`
	Breakdown     quality.Breakdown `json:"qualityBreakdown"`
	Feedback      []string          `json:"qualityFeedback"`
	PublishStatus string            `json:"publishStatus"`
	CanPublish    bool              `json:"canPublish"`
	JobStatus     models.JobStatus  `json:"jobStatus"`
	Persisted     bool              `json:"persisted"`
}
