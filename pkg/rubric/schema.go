// pkg/rubric/schema.go
package rubric

import (
	"matching-workers/internal/assessment"
	"matching-workers/internal/scoring/fit"
	"matching-workers/internal/scoring/quality"
)

// Rubric overrides the built-in scoring tables. Every section and field is
// optional; anything left out keeps its default.
type Rubric struct {
	Version     string           `json:"version"`
	LastUpdated string           `json:"lastUpdated"`
	Fit         *FitSection      `json:"fit,omitempty"`
	Quality     *quality.Rules   `json:"quality,omitempty"`
	Scenario    *ScenarioSection `json:"scenario,omitempty"`
}

type FitSection struct {
	RoleSynonyms     map[string][]string `json:"roleSynonyms,omitempty"`
	LeadTypeScores   map[string]int      `json:"leadTypeScores,omitempty"`
	SalesCycleScores map[string]int      `json:"salesCycleScores,omitempty"`
	FlexibleModes    []string            `json:"flexibleModes,omitempty"`
	CostBandPattern  string              `json:"costBandPattern,omitempty"`
	Weights          *fit.Weights        `json:"weights,omitempty"`
	Thresholds       *fit.Thresholds     `json:"thresholds,omitempty"`
}

type ScenarioSection struct {
	KeywordGroups    []assessment.KeywordGroup `json:"keywordGroups,omitempty"`
	PositiveTerms    []string                  `json:"positiveTerms,omitempty"`
	HostileTerms     []string                  `json:"hostileTerms,omitempty"`
	StrategyPatterns []string                  `json:"strategyPatterns,omitempty"`
	TimePatterns     []string                  `json:"timePatterns,omitempty"`
	TimeExclusions   []string                  `json:"timeExclusions,omitempty"`
}
