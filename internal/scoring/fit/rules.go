// internal/scoring/fit/rules.go
package fit

import "regexp"

// Neutral and fixed sub-scores shared by the matchers.
const (
	neutralScore = 50

	roleExact   = 100
	roleSynonym = 85
	roleMiss    = 30

	leadTypeOther = 70

	dealSizeLenient = 70

	locationFlexible = 95
	locationCity     = 100
	locationCountry  = 80
	locationMiss     = 40

	toolsNoneRequired = 80
	toolsNoneListed   = 60

	maxReasons = 3
)

// Weights are integer percentages. They are normalised by their sum, so a
// rubric that does not add up to 100 still yields a 0..100 score.
type Weights struct {
	Role       int `json:"role"`
	LeadType   int `json:"leadType"`
	SalesCycle int `json:"salesCycle"`
	DealSize   int `json:"dealSize"`
	Location   int `json:"location"`
	Tools      int `json:"tools"`
}

func (w Weights) sum() int {
	return w.Role + w.LeadType + w.SalesCycle + w.DealSize + w.Location + w.Tools
}

// Thresholds a sub-score must reach before it produces a reason.
type Thresholds struct {
	Role       int `json:"role"`
	LeadType   int `json:"leadType"`
	SalesCycle int `json:"salesCycle"`
	DealSize   int `json:"dealSize"`
	Location   int `json:"location"`
	Tools      int `json:"tools"`
}

// Rules is the lookup-table half of the fit rubric. Keys are lower-case.
type Rules struct {
	// RoleSynonyms maps a job role to candidate roles accepted as equivalent.
	RoleSynonyms map[string][]string
	// LeadTypeScores scores known lead types; any other non-empty type gets 70.
	LeadTypeScores map[string]int
	// SalesCycleScores maps an enumerated sales-cycle bucket to its score.
	SalesCycleScores map[string]int
	// FlexibleModes are location modes that ignore the candidate's city.
	FlexibleModes map[string]bool
	// CostBandPattern extracts a deal size from a cost band: group 1 digits,
	// group 2 an optional thousands suffix.
	CostBandPattern *regexp.Regexp

	Weights    Weights
	Thresholds Thresholds
}

var defaultCostBandPattern = regexp.MustCompile(`(?i)^\s*(\d+)\s*(k)?\s*$`)

// DefaultRules returns a fresh copy of the built-in rubric.
func DefaultRules() Rules {
	return Rules{
		RoleSynonyms: map[string][]string{
			"closer":             {"account executive", "ae", "sales closer", "high ticket closer", "closing"},
			"account executive":  {"ae", "closer", "account manager", "sales executive"},
			"setter":             {"appointment setter", "sdr", "bdr", "opener", "terminierer"},
			"appointment setter": {"setter", "sdr", "bdr", "opener", "terminierer"},
			"sdr":                {"bdr", "setter", "sales development", "sales development representative"},
			"bdr":                {"sdr", "setter", "business development", "business development representative"},
			"account manager":    {"key account manager", "kam", "customer success", "account executive"},
			"sales manager":      {"vertriebsleiter", "head of sales", "sales lead", "vertriebsmanager"},
		},
		LeadTypeScores: map[string]int{
			"warm": 90,
		},
		SalesCycleScores: map[string]int{
			"< 1 woche":  95,
			"1-4 wochen": 90,
			"1-3 monate": 80,
			"3-6 monate": 70,
			"6+ monate":  60,
		},
		FlexibleModes: map[string]bool{
			"remote": true,
			"hybrid": true,
		},
		CostBandPattern: defaultCostBandPattern,
		Weights: Weights{
			Role:       30,
			LeadType:   15,
			SalesCycle: 15,
			DealSize:   15,
			Location:   15,
			Tools:      10,
		},
		Thresholds: Thresholds{
			Role:       85,
			LeadType:   85,
			SalesCycle: 80,
			DealSize:   80,
			Location:   90,
			Tools:      80,
		},
	}
}

func (r Rules) withDefaults() Rules {
	def := DefaultRules()
	if r.RoleSynonyms == nil {
		r.RoleSynonyms = def.RoleSynonyms
	}
	if r.LeadTypeScores == nil {
		r.LeadTypeScores = def.LeadTypeScores
	}
	if r.SalesCycleScores == nil {
		r.SalesCycleScores = def.SalesCycleScores
	}
	if r.FlexibleModes == nil {
		r.FlexibleModes = def.FlexibleModes
	}
	if r.CostBandPattern == nil {
		r.CostBandPattern = def.CostBandPattern
	}
	if r.Weights.sum() <= 0 {
		r.Weights = def.Weights
	}
	if r.Thresholds == (Thresholds{}) {
		r.Thresholds = def.Thresholds
	}
	return r
}
