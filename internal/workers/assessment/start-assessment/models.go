// internal/workers/assessment/start-assessment/models.go
package startassessment

import "matching-workers/internal/assessment"

type Input struct {
	CandidateID string `json:"candidateId"`
}

// OptionView is an answer option without its points.
type OptionView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type QuestionView struct {
	ID       string              `json:"id"`
	Category assessment.Category `json:"category"`
	Prompt   string              `json:"prompt"`
	Options  []OptionView        `json:"options"`
}

type Output struct {
	AttemptID        string              `json:"attemptId"`
	Status           assessment.Status   `json:"attemptStatus"`
	CurrentPart      int                 `json:"currentPart"`
	QuestionTimeLeft int                 `json:"questionTimeLeft"`
	Questions        []QuestionView      `json:"questions"`
	Scenario         assessment.Scenario `json:"scenario"`
}

func newQuestionView(q assessment.Question) QuestionView {
	opts := make([]OptionView, len(q.Options))
	for i, o := range q.Options {
		opts[i] = OptionView{ID: o.ID, Text: o.Text}
	}
	return QuestionView{ID: q.ID, Category: q.Category, Prompt: q.Prompt, Options: opts}
}
