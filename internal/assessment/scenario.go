// internal/assessment/scenario.go
package assessment

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	Part2MaxScore     = 7
	PassScenarioScore = 4
	maxKeywordScore   = 4
)

type KeywordGroup struct {
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// ScenarioRubric is the lexical rubric for free-text responses. Terms are
// matched as lower-case substrings; TimePatterns are regular expressions
// applied to the lower-cased response after TimeExclusions are removed.
type ScenarioRubric struct {
	KeywordGroups    []KeywordGroup `json:"keywordGroups"`
	PositiveTerms    []string       `json:"positiveTerms"`
	HostileTerms     []string       `json:"hostileTerms"`
	StrategyPatterns []string       `json:"strategyPatterns"`
	TimePatterns     []string       `json:"timePatterns"`
	TimeExclusions   []string       `json:"timeExclusions"`
}

func DefaultScenarioRubric() ScenarioRubric {
	return ScenarioRubric{
		KeywordGroups: []KeywordGroup{
			{Name: "need", Terms: []string{"bedarf", "problem", "herausforderung", "schmerz", "engpass", "need", "pain", "challenge"}},
			{Name: "value", Terms: []string{"mehrwert", "nutzen", "vorteil", "ersparnis", "value", "benefit", "roi"}},
			{Name: "meeting", Terms: []string{"termin", "gespräch", "telefonat", "austausch", "demo", "call", "meeting"}},
			{Name: "empathy", Terms: []string{"verstehe", "verständnis", "nachvollziehen", "understand", "i hear you"}},
		},
		PositiveTerms: []string{"gerne", "freue", "danke", "super", "perfekt", "glad", "happy", "great", "thank"},
		HostileTerms:  []string{"idiot", "dumm", "blöd", "unverschämt", "lächerlich", "halt die klappe", "stupid", "ridiculous", "shut up"},
		StrategyPatterns: []string{
			"nächster schritt", "nächsten schritt", "next step",
			"2 optionen", "zwei optionen", "2 options", "two options",
			"proof of concept", "pilot", "agenda",
			"kurzes unverbindliches gespräch", "unverbindliches gespräch", "no-obligation call",
		},
		TimePatterns: []string{
			`(diese|nächste)n?\s+woche`,
			`(this|next)\s+week`,
			`(15|20)\s*-?\s*(min|minuten|minutes)`,
			`(über)?morgen`,
			`tomorrow`,
		},
		// greetings that only look like a time reference
		TimeExclusions: []string{"guten morgen", "good morning"},
	}
}

// ScenarioScorer scores free-text responses against a compiled rubric. It is
// safe for concurrent use.
type ScenarioScorer struct {
	rubric ScenarioRubric
	times  []*regexp.Regexp
}

func NewScenarioScorer(rubric ScenarioRubric) (*ScenarioScorer, error) {
	s := &ScenarioScorer{rubric: rubric}
	for _, p := range rubric.TimePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compile time pattern %q: %w", p, err)
		}
		s.times = append(s.times, re)
	}
	return s, nil
}

var defaultScenarioScorer = mustScenarioScorer(DefaultScenarioRubric())

func mustScenarioScorer(r ScenarioRubric) *ScenarioScorer {
	s, err := NewScenarioScorer(r)
	if err != nil {
		panic(err)
	}
	return s
}

// ScoreScenarioResponse scores a response with the built-in rubric.
func ScoreScenarioResponse(response string, scenario Scenario) ScenarioAnswer {
	return defaultScenarioScorer.Score(response, scenario)
}

func (s *ScenarioScorer) Score(response string, scenario Scenario) ScenarioAnswer {
	text := strings.ToLower(response)

	d := ScenarioDetails{}
	for _, g := range s.rubric.KeywordGroups {
		if d.KeyWords < maxKeywordScore && containsAny(text, g.Terms) {
			d.KeyWords++
		}
	}
	if containsAny(text, s.rubric.PositiveTerms) && !containsAny(text, s.rubric.HostileTerms) {
		d.Sentiment = 1
	}
	if containsAny(text, s.rubric.StrategyPatterns) {
		d.Strategy = 1
	}
	if strings.Contains(response, "?") && s.mentionsTime(text) {
		d.Engagement = 1
	}

	return ScenarioAnswer{
		ScenarioID: scenario.ID,
		Response:   response,
		Score:      d.Total(),
		Details:    d,
	}
}

func (s *ScenarioScorer) mentionsTime(text string) bool {
	for _, ex := range s.rubric.TimeExclusions {
		if ex = strings.ToLower(strings.TrimSpace(ex)); ex != "" {
			text = strings.ReplaceAll(text, ex, " ")
		}
	}
	for _, re := range s.times {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}
