// internal/workers/assessment/record-attempt-event/models.go
package recordattemptevent

import "matching-workers/internal/assessment"

type Input struct {
	AttemptID string               `json:"attemptId"`
	EventType assessment.EventType `json:"eventType"`
	OptionID  string               `json:"optionId,omitempty"`
	Seconds   int                  `json:"seconds,omitempty"`
	Text      string               `json:"text,omitempty"`
}

func (i *Input) event() assessment.Event {
	return assessment.Event{
		Type:     i.EventType,
		OptionID: i.OptionID,
		Seconds:  i.Seconds,
		Text:     i.Text,
	}
}

type Output struct {
	AttemptID            string            `json:"attemptId"`
	Status               assessment.Status `json:"attemptStatus"`
	CurrentPart          int               `json:"currentPart"`
	CurrentQuestionIndex int               `json:"currentQuestionIndex"`
	CurrentQuestionID    string            `json:"currentQuestionId,omitempty"`
	QuestionTimeLeft     int               `json:"questionTimeLeft"`
	PartTimeLeft         int               `json:"partTimeLeft"`
	AnsweredCount        int               `json:"answeredCount"`
	FocusLostCount       int               `json:"focusLostCount"`
	PasteCount           int               `json:"pasteCount"`
	Submitted            bool              `json:"submitted"`
}

func newOutput(a assessment.Attempt) *Output {
	return &Output{
		AttemptID:            a.ID,
		Status:               a.Status,
		CurrentPart:          a.CurrentPart,
		CurrentQuestionIndex: a.CurrentQuestionIndex,
		CurrentQuestionID:    a.CurrentQuestionID(),
		QuestionTimeLeft:     a.QuestionTimeLeft,
		PartTimeLeft:         a.PartTimeLeft,
		AnsweredCount:        len(a.Answers),
		FocusLostCount:       a.FocusLostCount,
		PasteCount:           a.PasteCount,
		Submitted:            a.Status == assessment.StatusSubmitted || a.Status == assessment.StatusScored,
	}
}
