// Package assessment scores the two-part sales assessment and moves
// attempts through it.
package assessment

import "time"

type Category string

const (
	CategoryEmpathy     Category = "empathy"
	CategoryHostility   Category = "hostility_handling"
	CategoryAcquisition Category = "acquisition"
	CategoryResilience  Category = "resilience"
)

type Option struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Points int    `json:"points"`
}

type Question struct {
	ID       string   `json:"id"`
	Category Category `json:"category"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options"`
}

// Option looks up an answer option by ID.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

type Scenario struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Situation string `json:"situation"`
	Task      string `json:"task"`
}

type MCAnswer struct {
	QuestionID     string `json:"questionId"`
	SelectedOption string `json:"selectedOption"`
	Points         int    `json:"points"`
}

type MCScore struct {
	RawScore    int `json:"rawScore"`
	ScaledScore int `json:"scaledScore"`
}

type ScenarioDetails struct {
	KeyWords   int `json:"keyWordScore"`
	Sentiment  int `json:"sentimentScore"`
	Strategy   int `json:"strategyScore"`
	Engagement int `json:"engagementScore"`
}

func (d ScenarioDetails) Total() int {
	return d.KeyWords + d.Sentiment + d.Strategy + d.Engagement
}

type ScenarioAnswer struct {
	ScenarioID string          `json:"scenarioId"`
	Response   string          `json:"response"`
	Score      int             `json:"score"`
	Details    ScenarioDetails `json:"details"`
}

type CategoryScores struct {
	Empathy           int `json:"empathy"`
	HostilityHandling int `json:"hostilityHandling"`
	Acquisition       int `json:"acquisition"`
	Resilience        int `json:"resilience"`
}

type Result struct {
	RawMCScore int            `json:"rawMcScore"`
	Part1Score int            `json:"part1Score"`
	Part2Score int            `json:"part2Score"`
	TotalScore int            `json:"totalScore"`
	Passed     bool           `json:"passed"`
	Categories CategoryScores `json:"categories"`
}

type Status string

const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusScored     Status = "scored"
)

// Attempt is one candidate's run through the two-part assessment. Values are
// treated as immutable: Apply and ScoreAttempt return updated copies.
type Attempt struct {
	ID                   string            `json:"id"`
	CandidateID          string            `json:"candidateId"`
	Status               Status            `json:"status"`
	CurrentPart          int               `json:"currentPart"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	QuestionIDs          []string          `json:"questionIds"`
	ScenarioID           string            `json:"scenarioId"`
	Answers              map[string]string `json:"answers"`
	ScenarioResponse     string            `json:"scenarioResponse"`
	QuestionTimeLeft     int               `json:"questionTimeLeft"`
	PartTimeLeft         int               `json:"partTimeLeft"`
	FocusLostCount       int               `json:"focusLostCount"`
	PasteCount           int               `json:"pasteCount"`
	Result               *Result           `json:"result,omitempty"`
	CreatedAt            time.Time         `json:"createdAt"`
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// CurrentQuestionID is empty outside part 1.
func (a Attempt) CurrentQuestionID() string {
	if a.Status != StatusInProgress || a.CurrentPart != 1 {
		return ""
	}
	if a.CurrentQuestionIndex < 0 || a.CurrentQuestionIndex >= len(a.QuestionIDs) {
		return ""
	}
	return a.QuestionIDs[a.CurrentQuestionIndex]
}

func (a Attempt) clone() Attempt {
	c := a
	c.QuestionIDs = append([]string(nil), a.QuestionIDs...)
	c.Answers = make(map[string]string, len(a.Answers))
	for k, v := range a.Answers {
		c.Answers[k] = v
	}
	if a.Result != nil {
		r := *a.Result
		c.Result = &r
	}
	return c
}
