// internal/assessment/attempt_test.go
package assessment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttempt(t *testing.T) Attempt {
	t.Helper()
	bank := DefaultBank()
	a := NewAttempt("attempt-1", "user-1", bank.Questions, bank.Scenarios[0])
	started, err := Apply(a, Event{Type: EventStart})
	require.NoError(t, err)
	return started
}

// atLastQuestion walks an attempt to the last part 1 question.
func atLastQuestion(t *testing.T) Attempt {
	t.Helper()
	a := newTestAttempt(t)
	var err error
	for i := 0; i < len(a.QuestionIDs)-1; i++ {
		a, err = Apply(a, Event{Type: EventNext})
		require.NoError(t, err)
	}
	require.Equal(t, 19, a.CurrentQuestionIndex)
	return a
}

func inPart2(t *testing.T) Attempt {
	t.Helper()
	a, err := Apply(atLastQuestion(t), Event{Type: EventNext})
	require.NoError(t, err)
	return a
}

func TestApply_Start(t *testing.T) {
	a := newTestAttempt(t)

	assert.Equal(t, StatusInProgress, a.Status)
	assert.Equal(t, 1, a.CurrentPart)
	assert.Equal(t, 0, a.CurrentQuestionIndex)
	assert.Equal(t, QuestionTimeLimit, a.QuestionTimeLeft)
	assert.Equal(t, "q01", a.CurrentQuestionID())

	_, err := Apply(a, Event{Type: EventStart})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestApply_StartWithoutQuestions(t *testing.T) {
	_, err := Apply(NewAttempt("a", "u", nil, Scenario{ID: "s01"}), Event{Type: EventStart})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestApply_DraftRejectsEverythingButStart(t *testing.T) {
	draft := NewAttempt("a", "u", DefaultBank().Questions, Scenario{ID: "s01"})

	for _, typ := range []EventType{EventSelectAnswer, EventNext, EventTick, EventUpdateResponse, EventSubmit, EventFocusLost} {
		t.Run(string(typ), func(t *testing.T) {
			_, err := Apply(draft, Event{Type: typ, OptionID: "a", Seconds: 1})
			assert.True(t, errors.Is(err, ErrInvalidTransition))
		})
	}
}

func TestApply_SelectAnswerDoesNotAdvance(t *testing.T) {
	a := newTestAttempt(t)

	next, err := Apply(a, Event{Type: EventSelectAnswer, OptionID: "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, next.CurrentQuestionIndex)
	assert.Equal(t, map[string]string{"q01": "b"}, next.Answers)

	changed, err := Apply(next, Event{Type: EventSelectAnswer, OptionID: "c"})
	require.NoError(t, err)
	assert.Equal(t, "c", changed.Answers["q01"])

	_, err = Apply(next, Event{Type: EventSelectAnswer})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestApplyWithBank_RejectsUnknownOption(t *testing.T) {
	bank := DefaultBank()
	a := newTestAttempt(t)

	next, err := ApplyWithBank(a, Event{Type: EventSelectAnswer, OptionID: "b"}, bank)
	require.NoError(t, err)
	assert.Equal(t, "b", next.Answers["q01"])

	rejected, err := ApplyWithBank(next, Event{Type: EventSelectAnswer, OptionID: "zz"}, bank)
	assert.True(t, errors.Is(err, ErrUnknownOption))
	assert.Equal(t, next, rejected)

	// other events pass straight through
	moved, err := ApplyWithBank(next, Event{Type: EventNext}, bank)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.CurrentQuestionIndex)
}

func TestApplyWithBank_QuestionMissingFromBank(t *testing.T) {
	a := newTestAttempt(t)
	small := &Bank{Scenarios: DefaultBank().Scenarios}

	_, err := ApplyWithBank(a, Event{Type: EventSelectAnswer, OptionID: "a"}, small)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	a := newTestAttempt(t)
	a, _ = Apply(a, Event{Type: EventSelectAnswer, OptionID: "a"})
	before := a.clone()

	_, err := Apply(a, Event{Type: EventSelectAnswer, OptionID: "d"})
	require.NoError(t, err)
	_, err = Apply(a, Event{Type: EventNext})
	require.NoError(t, err)

	assert.Equal(t, before, a)
}

func TestApply_NextResetsQuestionTimer(t *testing.T) {
	a := newTestAttempt(t)
	a, err := Apply(a, Event{Type: EventTick, Seconds: 15})
	require.NoError(t, err)
	assert.Equal(t, 6, a.QuestionTimeLeft)

	a, err = Apply(a, Event{Type: EventNext})
	require.NoError(t, err)
	assert.Equal(t, 1, a.CurrentQuestionIndex)
	assert.Equal(t, QuestionTimeLimit, a.QuestionTimeLeft)
}

func TestApply_LastQuestionMovesToPart2(t *testing.T) {
	for _, ev := range []Event{{Type: EventNext}, {Type: EventTick, Seconds: QuestionTimeLimit}} {
		t.Run(string(ev.Type), func(t *testing.T) {
			a, err := Apply(atLastQuestion(t), ev)
			require.NoError(t, err)

			assert.Equal(t, StatusInProgress, a.Status)
			assert.Equal(t, 2, a.CurrentPart)
			assert.Equal(t, 0, a.CurrentQuestionIndex)
			assert.Equal(t, ScenarioTimeLimit, a.PartTimeLeft)
			assert.Equal(t, "", a.CurrentQuestionID())
		})
	}
}

func TestApply_TimeoutAdvancesOncePerTick(t *testing.T) {
	a := newTestAttempt(t)

	a, err := Apply(a, Event{Type: EventTick, Seconds: 100})
	require.NoError(t, err)

	assert.Equal(t, 1, a.CurrentQuestionIndex)
	assert.Equal(t, QuestionTimeLimit, a.QuestionTimeLeft)
}

func TestApply_NonPositiveTickIsNoOp(t *testing.T) {
	a := newTestAttempt(t)

	next, err := Apply(a, Event{Type: EventTick, Seconds: 0})
	require.NoError(t, err)
	assert.Equal(t, a, next)
}

func TestApply_Part2(t *testing.T) {
	a := inPart2(t)

	_, err := Apply(a, Event{Type: EventNext})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	_, err = Apply(a, Event{Type: EventSelectAnswer, OptionID: "a"})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	a, err = Apply(a, Event{Type: EventUpdateResponse, Text: "Hallo"})
	require.NoError(t, err)
	a, err = Apply(a, Event{Type: EventTick, Seconds: 60})
	require.NoError(t, err)

	assert.Equal(t, "Hallo", a.ScenarioResponse)
	assert.Equal(t, 120, a.PartTimeLeft)
	assert.Equal(t, StatusInProgress, a.Status)
}

func TestApply_SubmitOnlyInPart2(t *testing.T) {
	_, err := Apply(newTestAttempt(t), Event{Type: EventSubmit})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	_, err = Apply(newTestAttempt(t), Event{Type: EventUpdateResponse, Text: "x"})
	assert.True(t, errors.Is(err, ErrInvalidTransition))

	a, err := Apply(inPart2(t), Event{Type: EventSubmit})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, a.Status)

	_, err = Apply(a, Event{Type: EventSubmit})
	assert.True(t, errors.Is(err, ErrAttemptClosed))
}

func TestApply_Part2TimeoutSubmitsExactlyOnce(t *testing.T) {
	a := inPart2(t)

	submitted, err := Apply(a, Event{Type: EventTick, Seconds: ScenarioTimeLimit})
	require.NoError(t, err)
	assert.Equal(t, StatusSubmitted, submitted.Status)
	assert.Equal(t, 0, submitted.PartTimeLeft)

	again, err := Apply(submitted, Event{Type: EventTick, Seconds: 5})
	require.NoError(t, err)
	assert.Equal(t, submitted, again)

	again, err = Apply(again, Event{Type: EventTick, Seconds: 5})
	require.NoError(t, err)
	assert.Equal(t, submitted, again)
}

func TestApply_Proctoring(t *testing.T) {
	a := newTestAttempt(t)

	a, err := Apply(a, Event{Type: EventFocusLost})
	require.NoError(t, err)
	a, err = Apply(a, Event{Type: EventFocusLost})
	require.NoError(t, err)
	a, err = Apply(a, Event{Type: EventPaste})
	require.NoError(t, err)

	assert.Equal(t, 2, a.FocusLostCount)
	assert.Equal(t, 1, a.PasteCount)

	submitted, err := Apply(inPart2(t), Event{Type: EventSubmit})
	require.NoError(t, err)
	after, err := Apply(submitted, Event{Type: EventPaste})
	require.NoError(t, err)
	assert.Equal(t, 0, after.PasteCount)
}

func TestApply_UnknownEvent(t *testing.T) {
	_, err := Apply(newTestAttempt(t), Event{Type: "rewind"})
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}

func TestScoreAttempt(t *testing.T) {
	bank := DefaultBank()
	a := newTestAttempt(t)

	// best option on the first 17 questions, nothing after
	var err error
	for i := 0; i < 20; i++ {
		if i < 17 {
			q, _ := bank.Question(a.CurrentQuestionID())
			for _, o := range q.Options {
				if o.Points == MaxQuestionPoints {
					a, err = Apply(a, Event{Type: EventSelectAnswer, OptionID: o.ID})
					require.NoError(t, err)
				}
			}
		}
		a, err = Apply(a, Event{Type: EventTick, Seconds: QuestionTimeLimit})
		require.NoError(t, err)
	}
	require.Equal(t, 2, a.CurrentPart)

	a, err = Apply(a, Event{Type: EventUpdateResponse,
		Text: "Ich verstehe Ihr Problem. Der Nutzen zeigt sich im Termin. Gerne als nächster Schritt morgen?"})
	require.NoError(t, err)
	a, err = Apply(a, Event{Type: EventSubmit})
	require.NoError(t, err)

	scored, scenario, err := ScoreAttempt(a, bank, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusScored, scored.Status)
	assert.Equal(t, 7, scenario.Score)
	require.NotNil(t, scored.Result)
	assert.Equal(t, 85, scored.Result.RawMCScore)
	assert.Equal(t, 17, scored.Result.Part1Score)
	assert.Equal(t, 24, scored.Result.TotalScore)
	assert.True(t, scored.Result.Passed)
	assert.Nil(t, a.Result)

	_, _, err = ScoreAttempt(scored, bank, nil)
	assert.True(t, errors.Is(err, ErrAttemptClosed))

	_, err = Apply(scored, Event{Type: EventUpdateResponse, Text: "edit"})
	assert.True(t, errors.Is(err, ErrAttemptClosed))
}

func TestScoreAttempt_Errors(t *testing.T) {
	bank := DefaultBank()

	_, _, err := ScoreAttempt(newTestAttempt(t), bank, nil)
	assert.True(t, errors.Is(err, ErrNotSubmitted))

	submitted, err := Apply(inPart2(t), Event{Type: EventSubmit})
	require.NoError(t, err)

	unknownScenario := submitted.clone()
	unknownScenario.ScenarioID = "s99"
	_, _, err = ScoreAttempt(unknownScenario, bank, nil)
	assert.True(t, errors.Is(err, ErrUnknownScenario))

	unknownQuestion := submitted.clone()
	unknownQuestion.QuestionIDs[0] = "q99"
	_, _, err = ScoreAttempt(unknownQuestion, bank, nil)
	assert.True(t, errors.Is(err, ErrUnknownQuestion))
}

func TestAttempt_MCAnswersCountsUnansweredAsZero(t *testing.T) {
	bank := DefaultBank()
	a := NewAttempt("a", "u", bank.Questions[:3], bank.Scenarios[0])
	a.Answers = map[string]string{"q01": "a", "q03": "zz"}

	answers, err := a.MCAnswers(bank)
	require.NoError(t, err)

	assert.Equal(t, []MCAnswer{
		{QuestionID: "q01", SelectedOption: "a", Points: 5},
		{QuestionID: "q02", SelectedOption: "", Points: 0},
		{QuestionID: "q03", SelectedOption: "zz", Points: 0},
	}, answers)
}
