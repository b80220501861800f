// Package quality rates how complete a job posting is and whether it may be published.
package quality

import (
	"strings"
	"unicode/utf8"

	"matching-workers/internal/models"
)

type Breakdown struct {
	Title       int `json:"title"`
	Role        int `json:"role"`
	Industries  int `json:"industries"`
	LeadType    int `json:"leadType"`
	Commission  int `json:"commission"`
	Employment  int `json:"employment"`
	Description int `json:"description"`
}

// Total is the sum of all components.
func (b Breakdown) Total() int {
	return b.Title + b.Role + b.Industries + b.LeadType + b.Commission + b.Employment + b.Description
}

type Result struct {
	Score     int       `json:"score"`
	Breakdown Breakdown `json:"breakdown"`
	Feedback  []string  `json:"feedback"`
}

type Option func(*Scorer)

func WithRules(r Rules) Option {
	return func(s *Scorer) {
		s.rules = r.withDefaults()
	}
}

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

// CalculateScore rates job with the built-in rubric.
func CalculateScore(job models.Job) Result {
	return defaultScorer.CalculateScore(job)
}

func (s *Scorer) CalculateScore(job models.Job) Result {
	b := Breakdown{
		Title:       s.titleScore(job.Title),
		Role:        roleScore(job),
		Industries:  industriesScore(job.Industries),
		LeadType:    leadTypeScore(job),
		Commission:  commissionScore(job),
		Employment:  employmentScore(job),
		Description: descriptionScore(job.Description.Text()),
	}

	return Result{
		Score:     b.Total(),
		Breakdown: b,
		Feedback:  s.feedback(b),
	}
}

func (s *Scorer) titleScore(title string) int {
	t := strings.TrimSpace(title)
	if t == "" {
		return 0
	}
	n := utf8.RuneCountInString(t)
	switch {
	case n < titleMinLen:
		return 5
	case n > titleMaxLen:
		return 10
	}
	lower := strings.ToLower(t)
	for _, kw := range s.rules.TitleKeywords {
		if kw != "" && strings.Contains(lower, strings.ToLower(kw)) {
			return maxTitle
		}
	}
	return 15
}

func roleScore(job models.Job) int {
	if strings.TrimSpace(job.RoleNeeded) == "" {
		return 0
	}
	score := 15
	if strings.TrimSpace(job.Seniority) != "" {
		score += 5
	}
	return score
}

func industriesScore(industries []string) int {
	n := 0
	for _, ind := range industries {
		if strings.TrimSpace(ind) != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return 0
	case n <= maxFocusedInds:
		return maxIndustries
	default:
		return 10
	}
}

func leadTypeScore(job models.Job) int {
	score := 0
	if strings.TrimSpace(job.LeadType) != "" {
		score += 8
	}
	if strings.TrimSpace(job.SalesCycle) != "" {
		score += 7
	}
	return score
}

func commissionScore(job models.Job) int {
	if job.HasCommission() {
		return maxCommission
	}
	return 0
}

func employmentScore(job models.Job) int {
	score := 0
	if job.WeeklyHours != nil {
		score += 5
	}
	if strings.TrimSpace(job.EmploymentType) != "" {
		score += 5
	}
	return score
}

func descriptionScore(text string) int {
	switch n := utf8.RuneCountInString(text); {
	case n == 0:
		return 0
	case n >= descriptionMinLen:
		return maxDescription
	default:
		return 2
	}
}

// feedback emits one hint for every component below its cap.
func (s *Scorer) feedback(b Breakdown) []string {
	scores := map[string][2]int{
		ComponentTitle:       {b.Title, maxTitle},
		ComponentRole:        {b.Role, maxRole},
		ComponentIndustries:  {b.Industries, maxIndustries},
		ComponentLeadType:    {b.LeadType, maxLeadType},
		ComponentCommission:  {b.Commission, maxCommission},
		ComponentEmployment:  {b.Employment, maxEmployment},
		ComponentDescription: {b.Description, maxDescription},
	}

	out := make([]string, 0, len(componentOrder))
	for _, name := range componentOrder {
		if sc := scores[name]; sc[0] < sc[1] {
			out = append(out, s.rules.Feedback[name])
		}
	}
	return out
}

func CanPublish(score int) bool {
	return score >= ReadyThreshold
}

func GetPublishStatus(score int) string {
	switch {
	case score >= ReadyThreshold:
		return StatusReady
	case score >= PendingThreshold:
		return StatusPending
	default:
		return StatusDraft
	}
}

// LifecycleStatus maps a publish status onto the job lifecycle. Ready jobs
// still go through manual review, so they land in pending as well.
func LifecycleStatus(score int) models.JobStatus {
	if GetPublishStatus(score) == StatusDraft {
		return models.JobStatusDraft
	}
	return models.JobStatusPending
}
