// internal/workers/assessment/start-assessment/handler.go
package startassessment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"matching-workers/internal/assessment"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "start-assessment"
)

var ErrBankTooSmall = errors.New("BANK_TOO_SMALL")

// AttemptCreator persists a new attempt.
type AttemptCreator interface {
	Create(ctx context.Context, a assessment.Attempt) (assessment.Attempt, error)
}

type Handler struct {
	config     *Config
	bank       *assessment.Bank
	store      AttemptCreator
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
	newID      func() string

	// rand.Rand is not safe for concurrent use.
	mu  sync.Mutex
	rng *rand.Rand
}

func NewHandler(config *Config, bank *assessment.Bank, store AttemptCreator, rng *rand.Rand, log logger.Logger) *Handler {
	if bank == nil {
		bank = assessment.DefaultBank()
	}
	if rng == nil {
		rng = assessment.NewRand(0)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		bank:       bank,
		store:      store,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
		newID:      uuid.NewString,
		rng:        rng,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	done := metrics.JobStarted(TaskType)
	ctx, span := observability.StartJobSpan(context.Background(), TaskType, job.Key, job.ProcessInstanceKey)
	defer span.End()
	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	input, err := parseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err, done)
		return
	}

	output, err := h.execute(ctx, input)
	if err != nil {
		observability.RecordError(span, err)
		h.fail(ctx, client, job, err, done)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

func parseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	if result := validation.ValidateInput(raw, GetInputSchema()); !result.Valid {
		return nil, apperrors.NewInvalidInputError(strings.Join(result.GetErrorMessages(), "; "))
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.CandidateID) == "" {
		return nil, apperrors.NewInvalidInputError("candidateId is required")
	}

	questions, scenario, err := h.draw()
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, err)
	}

	draft := assessment.NewAttempt(h.newID(), input.CandidateID, questions, scenario)
	started, err := assessment.Apply(draft, assessment.Event{Type: assessment.EventStart})
	if err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrCodeInternal)
	}

	stored, err := h.store.Create(ctx, started)
	if err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrCodeCacheFailed)
	}

	h.logger.Info("assessment started", map[string]interface{}{
		"attemptId":   stored.ID,
		"candidateId": stored.CandidateID,
		"questions":   len(stored.QuestionIDs),
		"scenarioId":  stored.ScenarioID,
	})

	views := make([]QuestionView, len(questions))
	for i, q := range questions {
		views[i] = newQuestionView(q)
	}

	return &Output{
		AttemptID:        stored.ID,
		Status:           stored.Status,
		CurrentPart:      stored.CurrentPart,
		QuestionTimeLeft: stored.QuestionTimeLeft,
		Questions:        views,
		Scenario:         scenario,
	}, nil
}

// draw samples the question set and the scenario for one attempt.
func (h *Handler) draw() ([]assessment.Question, assessment.Scenario, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.bank.Questions) < h.config.QuestionCount {
		return nil, assessment.Scenario{}, fmt.Errorf("%w: %d questions, %d required",
			ErrBankTooSmall, len(h.bank.Questions), h.config.QuestionCount)
	}

	questions := assessment.SelectRandomQuestions(h.bank.Questions, h.config.QuestionCount, h.rng)
	scenario, ok := assessment.SelectRandomScenario(h.bank.Scenarios, h.rng)
	if !ok {
		return nil, assessment.Scenario{}, fmt.Errorf("%w: no scenarios", ErrBankTooSmall)
	}
	return questions, scenario, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error, done func(string)) {
	stdErr := apperrors.Classify(err, apperrors.ErrCodeInternal)
	done(string(stdErr.Code))
	h.errHandler.HandleJobError(ctx, client, job, stdErr)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
