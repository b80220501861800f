// internal/workers/matching/rank-jobs/models.go
package rankjobs

import (
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/fit"
	"matching-workers/internal/workers/matching/rank-jobs/queries"
)

type Input struct {
	UserProfile *models.UserProfile `json:"userProfile"`
	Filters     queries.Filter      `json:"filters"`
	Size        int                 `json:"size,omitempty"`
	MinScore    int                 `json:"minScore,omitempty"`
}

type RankedJob struct {
	JobID        string        `json:"jobId"`
	Title        string        `json:"title"`
	FitScore     int           `json:"fitScore"`
	FitReasons   []string      `json:"fitReasons"`
	FitBreakdown fit.Breakdown `json:"fitBreakdown"`
}

type Output struct {
	Jobs       []RankedJob `json:"jobs"`
	Considered int         `json:"considered"`
	TotalHits  int64       `json:"totalHits"`
}
