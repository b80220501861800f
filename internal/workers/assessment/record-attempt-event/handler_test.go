// internal/workers/assessment/record-attempt-event/handler_test.go
package recordattemptevent

import (
	"context"
	"testing"
	"time"

	"matching-workers/internal/assessment"
	"matching-workers/internal/assessment/store"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}

func setupStore(t *testing.T) (*miniredis.Miniredis, *store.RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, store.NewRedisStore(client, time.Hour)
}

// seedAttempt stores a started attempt over the first n bank questions.
func seedAttempt(t *testing.T, s *store.RedisStore, n int) assessment.Attempt {
	t.Helper()
	bank := assessment.DefaultBank()
	a := assessment.NewAttempt("attempt-1", "user-1", bank.Questions[:n], bank.Scenarios[0])
	a, err := assessment.Apply(a, assessment.Event{Type: assessment.EventStart})
	require.NoError(t, err)
	a, err = s.Create(context.Background(), a)
	require.NoError(t, err)
	return a
}

func run(t *testing.T, h *Handler, inputs ...*Input) *Output {
	t.Helper()
	var out *Output
	for _, in := range inputs {
		var err error
		out, err = h.Execute(context.Background(), in)
		require.NoError(t, err, "event %s", in.EventType)
	}
	return out
}

func ev(t assessment.EventType) *Input {
	return &Input{AttemptID: "attempt-1", EventType: t}
}

func TestHandler_Execute_AnswerAndAdvance(t *testing.T) {
	_, s := setupStore(t)
	seedAttempt(t, s, 3)
	h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))

	out := run(t, h,
		&Input{AttemptID: "attempt-1", EventType: assessment.EventSelectAnswer, OptionID: "b"},
		ev(assessment.EventNext),
	)

	assert.Equal(t, assessment.StatusInProgress, out.Status)
	assert.Equal(t, 1, out.CurrentPart)
	assert.Equal(t, 1, out.CurrentQuestionIndex)
	assert.Equal(t, "q02", out.CurrentQuestionID)
	assert.Equal(t, assessment.QuestionTimeLimit, out.QuestionTimeLeft)
	assert.Equal(t, 1, out.AnsweredCount)
	assert.False(t, out.Submitted)

	stored, err := s.Get(context.Background(), "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, "b", stored.Answers["q01"])
}

func TestHandler_Execute_TimerAdvancesQuestion(t *testing.T) {
	_, s := setupStore(t)
	seedAttempt(t, s, 3)
	h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))

	out := run(t, h, &Input{AttemptID: "attempt-1", EventType: assessment.EventTick, Seconds: 10})
	assert.Equal(t, 0, out.CurrentQuestionIndex)
	assert.Equal(t, assessment.QuestionTimeLimit-10, out.QuestionTimeLeft)

	out = run(t, h, &Input{AttemptID: "attempt-1", EventType: assessment.EventTick, Seconds: 30})
	assert.Equal(t, 1, out.CurrentQuestionIndex)
	assert.Equal(t, assessment.QuestionTimeLimit, out.QuestionTimeLeft)
	assert.Equal(t, 0, out.AnsweredCount)
}

func TestHandler_Execute_ScenarioAndSubmit(t *testing.T) {
	_, s := setupStore(t)
	seedAttempt(t, s, 2)
	h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))

	out := run(t, h, ev(assessment.EventNext), ev(assessment.EventNext))
	assert.Equal(t, 2, out.CurrentPart)
	assert.Empty(t, out.CurrentQuestionID)
	assert.Equal(t, assessment.ScenarioTimeLimit, out.PartTimeLeft)

	out = run(t, h,
		&Input{AttemptID: "attempt-1", EventType: assessment.EventUpdateResponse, Text: "Ich verstehe Ihren Ärger."},
		ev(assessment.EventPaste),
		ev(assessment.EventFocusLost),
		ev(assessment.EventSubmit),
	)
	assert.Equal(t, assessment.StatusSubmitted, out.Status)
	assert.True(t, out.Submitted)
	assert.Equal(t, 1, out.PasteCount)
	assert.Equal(t, 1, out.FocusLostCount)

	stored, err := s.Get(context.Background(), "attempt-1")
	require.NoError(t, err)
	assert.Equal(t, "Ich verstehe Ihren Ärger.", stored.ScenarioResponse)
}

func TestHandler_Execute_ScenarioTimeoutSubmits(t *testing.T) {
	_, s := setupStore(t)
	seedAttempt(t, s, 1)
	h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))

	out := run(t, h,
		ev(assessment.EventNext),
		&Input{AttemptID: "attempt-1", EventType: assessment.EventTick, Seconds: assessment.ScenarioTimeLimit + 5},
	)
	assert.True(t, out.Submitted)
	assert.Equal(t, 0, out.PartTimeLeft)

	// late clock and proctoring signals are dropped
	out = run(t, h,
		&Input{AttemptID: "attempt-1", EventType: assessment.EventTick, Seconds: 5},
		ev(assessment.EventPaste),
	)
	assert.Equal(t, assessment.StatusSubmitted, out.Status)
	assert.Equal(t, 0, out.PasteCount)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name     string
		prepare  []*Input
		input    *Input
		expected apperrors.ErrorCode
	}{
		{
			name:     "unknown attempt",
			input:    &Input{AttemptID: "nope", EventType: assessment.EventNext},
			expected: apperrors.ErrCodeAttemptNotFound,
		},
		{
			name:     "blank attempt id",
			input:    &Input{AttemptID: " ", EventType: assessment.EventNext},
			expected: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "second start",
			input:    ev(assessment.EventStart),
			expected: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "submit during part 1",
			input:    ev(assessment.EventSubmit),
			expected: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "response during part 1",
			input:    &Input{AttemptID: "attempt-1", EventType: assessment.EventUpdateResponse, Text: "x"},
			expected: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "submit after submission",
			prepare:  []*Input{ev(assessment.EventNext), ev(assessment.EventNext), ev(assessment.EventSubmit)},
			input:    ev(assessment.EventSubmit),
			expected: apperrors.ErrCodeInvalidTransition,
		},
		{
			name:     "unknown option",
			input:    &Input{AttemptID: "attempt-1", EventType: assessment.EventSelectAnswer, OptionID: "zz"},
			expected: apperrors.ErrCodeInvalidInput,
		},
		{
			name:     "answer after submission",
			prepare:  []*Input{ev(assessment.EventNext), ev(assessment.EventNext), ev(assessment.EventSubmit)},
			input:    &Input{AttemptID: "attempt-1", EventType: assessment.EventSelectAnswer, OptionID: "a"},
			expected: apperrors.ErrCodeInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, s := setupStore(t)
			seedAttempt(t, s, 2)
			h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))
			run(t, h, tt.prepare...)

			before, err := s.Get(context.Background(), "attempt-1")
			require.NoError(t, err)

			_, err = h.Execute(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.expected, apperrors.Classify(err, apperrors.ErrCodeInternal).Code)

			after, err := s.Get(context.Background(), "attempt-1")
			require.NoError(t, err)
			assert.Equal(t, before, after, "rejected event must not change the stored attempt")
		})
	}
}

func TestHandler_Execute_RedisDown(t *testing.T) {
	mr, s := setupStore(t)
	seedAttempt(t, s, 2)
	mr.Close()
	h := NewHandler(createTestConfig(), nil, s, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), ev(assessment.EventNext))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeCacheFailed, apperrors.Classify(err, apperrors.ErrCodeInternal).Code)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{"tick", `{"attemptId":"a1","eventType":"tick","seconds":1}`, false},
		{"answer with process vars", `{"attemptId":"a1","eventType":"select_answer","optionId":"c","candidateId":"u1"}`, false},
		{"unknown event", `{"attemptId":"a1","eventType":"rewind"}`, true},
		{"negative seconds", `{"attemptId":"a1","eventType":"tick","seconds":-1}`, true},
		{"too many seconds", `{"attemptId":"a1","eventType":"tick","seconds":7200}`, true},
		{"fractional seconds", `{"attemptId":"a1","eventType":"tick","seconds":1.5}`, true},
		{"missing event", `{"attemptId":"a1"}`, true},
		{"missing attempt", `{"eventType":"next"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input, err := parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrCodeInvalidInput, apperrors.Classify(err, apperrors.ErrCodeInternal).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a1", input.AttemptID)
		})
	}
}
