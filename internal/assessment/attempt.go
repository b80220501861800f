// internal/assessment/attempt.go
package assessment

import (
	"fmt"
	"strings"
)

const (
	QuestionTimeLimit = 21  // seconds per part 1 question
	ScenarioTimeLimit = 180 // seconds for part 2
	DefaultQuestions  = 20
)

type EventType string

const (
	EventStart          EventType = "start"
	EventSelectAnswer   EventType = "select_answer"
	EventNext           EventType = "next"
	EventTick           EventType = "tick"
	EventUpdateResponse EventType = "update_response"
	EventSubmit         EventType = "submit"
	EventFocusLost      EventType = "focus_lost"
	EventPaste          EventType = "paste"
)

// Event is one user action or clock report fed to Apply. OptionID is used by
// select_answer, Seconds by tick (elapsed time), Text by update_response.
type Event struct {
	Type     EventType `json:"type"`
	OptionID string    `json:"optionId,omitempty"`
	Seconds  int       `json:"seconds,omitempty"`
	Text     string    `json:"text,omitempty"`
}

// NewAttempt builds a draft attempt over the selected questions and scenario.
func NewAttempt(id, candidateID string, questions []Question, scenario Scenario) Attempt {
	return Attempt{
		ID:          id,
		CandidateID: candidateID,
		Status:      StatusDraft,
		QuestionIDs: questionIDs(questions),
		ScenarioID:  scenario.ID,
		Answers:     map[string]string{},
	}
}

// Apply returns the attempt that results from ev. The input is never
// modified. Clock and proctoring events reaching a closed attempt are
// dropped; anything else out of order is an error.
func Apply(a Attempt, ev Event) (Attempt, error) {
	next := a.clone()

	switch a.Status {
	case StatusSubmitted, StatusScored:
		switch ev.Type {
		case EventTick, EventFocusLost, EventPaste:
			return next, nil
		}
		return a, fmt.Errorf("%w: %s on %s attempt", ErrAttemptClosed, ev.Type, a.Status)
	case StatusDraft:
		if ev.Type != EventStart {
			return a, fmt.Errorf("%w: %s before start", ErrInvalidTransition, ev.Type)
		}
		if len(a.QuestionIDs) == 0 {
			return a, fmt.Errorf("%w: no questions selected", ErrInvalidTransition)
		}
		next.Status = StatusInProgress
		next.CurrentPart = 1
		next.CurrentQuestionIndex = 0
		next.QuestionTimeLeft = QuestionTimeLimit
		next.PartTimeLeft = 0
		return next, nil
	case StatusInProgress:
	default:
		return a, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, a.Status)
	}

	switch ev.Type {
	case EventStart:
		return a, fmt.Errorf("%w: already started", ErrInvalidTransition)

	case EventSelectAnswer:
		if a.CurrentPart != 1 {
			return a, fmt.Errorf("%w: answer selection outside part 1", ErrInvalidTransition)
		}
		if strings.TrimSpace(ev.OptionID) == "" {
			return a, fmt.Errorf("%w: empty option", ErrInvalidTransition)
		}
		next.Answers[a.CurrentQuestionID()] = ev.OptionID

	case EventNext:
		if a.CurrentPart != 1 {
			return a, fmt.Errorf("%w: no question to advance past in part %d", ErrInvalidTransition, a.CurrentPart)
		}
		advance(&next)

	case EventTick:
		if ev.Seconds <= 0 {
			return next, nil
		}
		if a.CurrentPart == 1 {
			next.QuestionTimeLeft -= ev.Seconds
			if next.QuestionTimeLeft <= 0 {
				advance(&next)
			}
			return next, nil
		}
		next.PartTimeLeft -= ev.Seconds
		if next.PartTimeLeft <= 0 {
			submit(&next)
		}

	case EventUpdateResponse:
		if a.CurrentPart != 2 {
			return a, fmt.Errorf("%w: response update outside part 2", ErrInvalidTransition)
		}
		next.ScenarioResponse = ev.Text

	case EventSubmit:
		if a.CurrentPart != 2 {
			return a, fmt.Errorf("%w: submit during part %d", ErrInvalidTransition, a.CurrentPart)
		}
		submit(&next)

	case EventFocusLost:
		next.FocusLostCount++

	case EventPaste:
		next.PasteCount++

	default:
		return a, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev.Type)
	}

	return next, nil
}

// ApplyWithBank is Apply with answer selections checked against the
// options of the current bank question.
func ApplyWithBank(a Attempt, ev Event, bank *Bank) (Attempt, error) {
	if ev.Type == EventSelectAnswer && a.Status == StatusInProgress && a.CurrentPart == 1 &&
		strings.TrimSpace(ev.OptionID) != "" {
		id := a.CurrentQuestionID()
		q, ok := bank.Question(id)
		if !ok {
			return a, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
		}
		if _, ok := q.Option(ev.OptionID); !ok {
			return a, fmt.Errorf("%w: %q for %s", ErrUnknownOption, ev.OptionID, id)
		}
	}
	return Apply(a, ev)
}

// advance moves to the next question, or into part 2 after the last one.
func advance(a *Attempt) {
	if a.CurrentQuestionIndex < len(a.QuestionIDs)-1 {
		a.CurrentQuestionIndex++
		a.QuestionTimeLeft = QuestionTimeLimit
		return
	}
	a.CurrentPart = 2
	a.CurrentQuestionIndex = 0
	a.QuestionTimeLeft = 0
	a.PartTimeLeft = ScenarioTimeLimit
}

func submit(a *Attempt) {
	a.Status = StatusSubmitted
	a.PartTimeLeft = 0
}

// MCAnswers resolves the attempt's selections against bank. Unanswered
// questions and unknown options count as zero points.
func (a Attempt) MCAnswers(bank *Bank) ([]MCAnswer, error) {
	answers := make([]MCAnswer, 0, len(a.QuestionIDs))
	for _, id := range a.QuestionIDs {
		q, ok := bank.Question(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownQuestion, id)
		}
		selected := a.Answers[id]
		points := 0
		if opt, ok := q.Option(selected); ok {
			points = opt.Points
		}
		answers = append(answers, MCAnswer{QuestionID: id, SelectedOption: selected, Points: points})
	}
	return answers, nil
}

// ScoreAttempt scores a submitted attempt and moves it to scored. The
// returned attempt carries the result and accepts no further events.
func ScoreAttempt(a Attempt, bank *Bank, scorer *ScenarioScorer) (Attempt, ScenarioAnswer, error) {
	switch a.Status {
	case StatusSubmitted:
	case StatusScored:
		return a, ScenarioAnswer{}, fmt.Errorf("%w: already scored", ErrAttemptClosed)
	default:
		return a, ScenarioAnswer{}, fmt.Errorf("%w: status %s", ErrNotSubmitted, a.Status)
	}

	mcAnswers, err := a.MCAnswers(bank)
	if err != nil {
		return a, ScenarioAnswer{}, err
	}
	scenario, ok := bank.Scenario(a.ScenarioID)
	if !ok {
		return a, ScenarioAnswer{}, fmt.Errorf("%w: %s", ErrUnknownScenario, a.ScenarioID)
	}
	if scorer == nil {
		scorer = defaultScenarioScorer
	}
	scenarioAnswer := scorer.Score(a.ScenarioResponse, scenario)

	result, err := CalculateAssessmentResult(mcAnswers, scenarioAnswer)
	if err != nil {
		return a, ScenarioAnswer{}, err
	}

	next := a.clone()
	next.Status = StatusScored
	next.Result = &result
	return next, scenarioAnswer, nil
}
