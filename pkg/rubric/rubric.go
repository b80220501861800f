// pkg/rubric/rubric.go
package rubric

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"matching-workers/internal/assessment"
	"matching-workers/internal/scoring/fit"
	"matching-workers/internal/scoring/quality"
)

func LoadRubric(path string) (*Rubric, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var r Rubric
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rubric %s: %w", path, err)
	}
	return &r, nil
}

// LoadOrDefault returns the default rubric for an empty path.
func LoadOrDefault(path string) (*Rubric, error) {
	if strings.TrimSpace(path) == "" {
		return &Rubric{}, nil
	}
	return LoadRubric(path)
}

func key(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// FitRules merges the fit section over the built-in tables. Table entries are
// merged per key; weights and thresholds replace the defaults as a whole.
func (r *Rubric) FitRules() (fit.Rules, error) {
	rules := fit.DefaultRules()
	sec := r.Fit
	if sec == nil {
		return rules, nil
	}

	for k, v := range sec.RoleSynonyms {
		rules.RoleSynonyms[key(k)] = v
	}
	for k, v := range sec.LeadTypeScores {
		rules.LeadTypeScores[key(k)] = v
	}
	for k, v := range sec.SalesCycleScores {
		rules.SalesCycleScores[key(k)] = v
	}
	if len(sec.FlexibleModes) > 0 {
		rules.FlexibleModes = make(map[string]bool, len(sec.FlexibleModes))
		for _, m := range sec.FlexibleModes {
			rules.FlexibleModes[key(m)] = true
		}
	}
	if sec.CostBandPattern != "" {
		re, err := regexp.Compile(sec.CostBandPattern)
		if err != nil {
			return fit.Rules{}, fmt.Errorf("compile cost band pattern: %w", err)
		}
		if re.NumSubexp() < 1 {
			return fit.Rules{}, fmt.Errorf("cost band pattern needs a capture group for the amount")
		}
		rules.CostBandPattern = re
	}
	if sec.Weights != nil {
		rules.Weights = *sec.Weights
	}
	if sec.Thresholds != nil {
		rules.Thresholds = *sec.Thresholds
	}
	return rules, nil
}

func (r *Rubric) QualityRules() quality.Rules {
	if r.Quality == nil {
		return quality.DefaultRules()
	}
	return *r.Quality
}

// ScenarioRubric replaces each scenario list that the file sets.
func (r *Rubric) ScenarioRubric() assessment.ScenarioRubric {
	out := assessment.DefaultScenarioRubric()
	sec := r.Scenario
	if sec == nil {
		return out
	}
	if len(sec.KeywordGroups) > 0 {
		out.KeywordGroups = sec.KeywordGroups
	}
	if len(sec.PositiveTerms) > 0 {
		out.PositiveTerms = sec.PositiveTerms
	}
	if len(sec.HostileTerms) > 0 {
		out.HostileTerms = sec.HostileTerms
	}
	if len(sec.StrategyPatterns) > 0 {
		out.StrategyPatterns = sec.StrategyPatterns
	}
	if len(sec.TimePatterns) > 0 {
		out.TimePatterns = sec.TimePatterns
	}
	if len(sec.TimeExclusions) > 0 {
		out.TimeExclusions = sec.TimeExclusions
	}
	return out
}

// Scorers bundles the engines configured from one rubric.
type Scorers struct {
	Fit      *fit.Scorer
	Quality  *quality.Scorer
	Scenario *assessment.ScenarioScorer
}

func (r *Rubric) Scorers() (*Scorers, error) {
	fitRules, err := r.FitRules()
	if err != nil {
		return nil, err
	}
	scenario, err := assessment.NewScenarioScorer(r.ScenarioRubric())
	if err != nil {
		return nil, err
	}
	return &Scorers{
		Fit:      fit.NewScorer(fit.WithRules(fitRules)),
		Quality:  quality.NewScorer(quality.WithRules(r.QualityRules())),
		Scenario: scenario,
	}, nil
}
