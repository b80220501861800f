// internal/workers/matching/calculate-fit-score/models.go
package calculatefitscore

import (
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/fit"
)

// Profile sources reported in the output.
const (
	SourceInput    = "input"
	SourceCache    = "cache"
	SourceDatabase = "database"
	SourceNone     = "none"
)

type Input struct {
	UserID        string              `json:"userId"`
	UserProfile   *models.UserProfile `json:"userProfile,omitempty"`
	Job           models.Job          `json:"job"`
	ApplicationID string              `json:"applicationId,omitempty"`
}

type Output struct {
	FitScore      int           `json:"fitScore"`
	FitReasons    []string      `json:"fitReasons"`
	FitBreakdown  fit.Breakdown `json:"fitBreakdown"`
	ProfileSource string        `json:"profileSource"`
	Persisted     bool          `json:"persisted"`
}
