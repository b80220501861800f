// Package fit scores how well a candidate profile suits a job posting.
package fit

import (
	"fmt"
	"sort"
	"strings"

	"matching-workers/internal/models"
)

type Breakdown struct {
	Role       int `json:"role"`
	LeadType   int `json:"leadType"`
	SalesCycle int `json:"salesCycle"`
	DealSize   int `json:"dealSize"`
	Location   int `json:"location"`
	Tools      int `json:"tools"`
}

type Result struct {
	Score     int       `json:"score"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithRules replaces the built-in rubric. Unset tables fall back to defaults.
func WithRules(r Rules) Option {
	return func(s *Scorer) {
		s.rules = r.withDefaults()
	}
}

// Scorer is stateless after construction and safe for concurrent use.
type Scorer struct {
	rules Rules
}

func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{rules: DefaultRules()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultScorer = NewScorer()

// Score rates profile against job with the built-in rubric.
func Score(profile models.UserProfile, job models.Job) Result {
	return defaultScorer.Score(profile, job)
}

type reason struct {
	score int
	text  string
}

func (s *Scorer) Score(profile models.UserProfile, job models.Job) Result {
	r := s.rules

	locScore, locAttr := MatchLocation(profile, job.Location, r.FlexibleModes)
	toolScore, matchedTools := MatchTools(profile.Tools, job.Tools)

	b := Breakdown{
		Role:       MatchRole(profile.DesiredRole, job.RoleNeeded, r.RoleSynonyms),
		LeadType:   MatchLeadType(job.LeadType, r.LeadTypeScores),
		SalesCycle: MatchSalesCycle(job.SalesCycle, r.SalesCycleScores),
		DealSize:   MatchDealSize(profile.AvgDealSize, job.CostBand, r.CostBandPattern),
		Location:   locScore,
		Tools:      toolScore,
	}

	w := r.Weights
	total := w.Role*b.Role + w.LeadType*b.LeadType + w.SalesCycle*b.SalesCycle +
		w.DealSize*b.DealSize + w.Location*b.Location + w.Tools*b.Tools
	sum := w.sum()

	return Result{
		Score:     clamp((2*total+sum)/(2*sum), 0, 100),
		Reasons:   s.reasons(job, b, locAttr, matchedTools),
		Breakdown: b,
	}
}

// reasons lists the dimensions that cleared their threshold, strongest
// first, capped at three. Ties keep the order below.
func (s *Scorer) reasons(job models.Job, b Breakdown, locAttr string, matchedTools []string) []string {
	t := s.rules.Thresholds
	var candidates []reason

	if b.Role >= t.Role {
		candidates = append(candidates, reason{b.Role,
			fmt.Sprintf("Your desired role matches the position: %s", strings.TrimSpace(job.RoleNeeded))})
	}
	if b.DealSize >= t.DealSize {
		candidates = append(candidates, reason{b.DealSize,
			fmt.Sprintf("Deal size is in line with your track record (%s)", strings.TrimSpace(job.CostBand))})
	}
	if b.SalesCycle >= t.SalesCycle {
		candidates = append(candidates, reason{b.SalesCycle,
			fmt.Sprintf("Sales cycle of %s suits your pace", strings.TrimSpace(job.SalesCycle))})
	}
	if b.Location >= t.Location {
		var text string
		switch b.Location {
		case locationFlexible:
			text = fmt.Sprintf("Location independent: %s position", locAttr)
		case locationCity:
			text = fmt.Sprintf("Located in your city: %s", locAttr)
		default:
			text = fmt.Sprintf("Located in your country: %s", locAttr)
		}
		candidates = append(candidates, reason{b.Location, text})
	}
	if b.LeadType >= t.LeadType {
		candidates = append(candidates, reason{b.LeadType,
			fmt.Sprintf("You work with %s leads", strings.TrimSpace(job.LeadType))})
	}
	if b.Tools >= t.Tools && len(matchedTools) > 0 {
		candidates = append(candidates, reason{b.Tools,
			fmt.Sprintf("You already use %d of %d required tools: %s",
				len(matchedTools), len(nonEmpty(job.Tools)), strings.Join(matchedTools, ", "))})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxReasons {
		candidates = candidates[:maxReasons]
	}

	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.text)
	}
	return out
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
