// internal/workers/assessment/score-assessment/handler.go
package scoreassessment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"matching-workers/internal/assessment"
	"matching-workers/internal/assessment/store"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/lib/pq"
)

const (
	TaskType = "score-assessment"
)

var ErrMissingResult = errors.New("MISSING_RESULT")

const insertAttemptQuery = `
	INSERT INTO assessment_attempts (
		id, candidate_id, question_ids, answers, scenario_id, scenario_response,
		raw_mc_score, part1_score, part2_score, total_score, passed, categories,
		focus_lost_count, paste_count, created_at, scored_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, NOW())
	ON CONFLICT (id) DO NOTHING
`

// AttemptStore loads and updates attempts.
type AttemptStore interface {
	Get(ctx context.Context, id string) (assessment.Attempt, error)
	Update(ctx context.Context, id string, fn store.UpdateFunc) (assessment.Attempt, error)
}

type Handler struct {
	config     *Config
	bank       *assessment.Bank
	scorer     *assessment.ScenarioScorer
	store      AttemptStore
	db         *sql.DB
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

// NewHandler uses the built-in bank and scenario rubric when bank or scorer is nil.
func NewHandler(config *Config, bank *assessment.Bank, scorer *assessment.ScenarioScorer, store AttemptStore, db *sql.DB, log logger.Logger) *Handler {
	if bank == nil {
		bank = assessment.DefaultBank()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		bank:       bank,
		scorer:     scorer,
		store:      store,
		db:         db,
		errHandler: apperrors.NewErrorHandler(log),
		logger:     log,
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, apperrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err)), done)
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		observability.RecordError(span, err)
		h.fail(ctx, client, job, err, done)
		return
	}

	h.completeJob(ctx, client, job, output)
	done("")
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if strings.TrimSpace(input.AttemptID) == "" {
		return nil, apperrors.NewInvalidInputError("attemptId is required")
	}

	var answer assessment.ScenarioAnswer
	scored, err := h.store.Update(ctx, input.AttemptID, func(a assessment.Attempt) (assessment.Attempt, error) {
		next, ans, err := assessment.ScoreAttempt(a, h.bank, h.scorer)
		answer = ans
		return next, err
	})

	replayed := false
	if errors.Is(err, assessment.ErrAttemptClosed) {
		// Scored by an earlier run whose persistence step may not have finished.
		scored, answer, err = h.replay(ctx, input.AttemptID)
		replayed = true
	}
	if err != nil {
		return nil, apperrors.Classify(err, apperrors.ErrCodeCacheFailed)
	}
	if scored.Result == nil {
		return nil, apperrors.New(apperrors.ErrCodeInternal, fmt.Errorf("%w: %s", ErrMissingResult, scored.ID))
	}

	persisted, err := h.persist(ctx, scored)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeDatabaseUpdateFailed, err)
	}

	if !replayed {
		metrics.AssessmentOutcomes.WithLabelValues(strconv.FormatBool(scored.Result.Passed)).Inc()
		metrics.AssessmentTotalScores.Observe(float64(scored.Result.TotalScore))
	}

	h.logger.Info("assessment scored", map[string]interface{}{
		"attemptId":  scored.ID,
		"totalScore": scored.Result.TotalScore,
		"passed":     scored.Result.Passed,
		"persisted":  persisted,
		"replayed":   replayed,
	})

	out := newOutput(scored, answer)
	out.Persisted = persisted
	out.Replayed = replayed
	return out, nil
}

// replay loads an already scored attempt and rebuilds its scenario details.
func (h *Handler) replay(ctx context.Context, id string) (assessment.Attempt, assessment.ScenarioAnswer, error) {
	a, err := h.store.Get(ctx, id)
	if err != nil {
		return a, assessment.ScenarioAnswer{}, err
	}
	scenario, ok := h.bank.Scenario(a.ScenarioID)
	if !ok {
		return a, assessment.ScenarioAnswer{}, fmt.Errorf("%w: %s", assessment.ErrUnknownScenario, a.ScenarioID)
	}

	var answer assessment.ScenarioAnswer
	if h.scorer != nil {
		answer = h.scorer.Score(a.ScenarioResponse, scenario)
	} else {
		answer = assessment.ScoreScenarioResponse(a.ScenarioResponse, scenario)
	}

	h.logger.Warn("attempt already scored, replaying persistence", map[string]interface{}{
		"attemptId": id,
	})
	return a, answer, nil
}

func (h *Handler) persist(ctx context.Context, a assessment.Attempt) (bool, error) {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return false, fmt.Errorf("marshal answers: %w", err)
	}
	categories, err := json.Marshal(a.Result.Categories)
	if err != nil {
		return false, fmt.Errorf("marshal categories: %w", err)
	}

	res, err := h.db.ExecContext(ctx, insertAttemptQuery,
		a.ID,
		a.CandidateID,
		pq.Array(a.QuestionIDs),
		answers,
		a.ScenarioID,
		a.ScenarioResponse,
		a.Result.RawMCScore,
		a.Result.Part1Score,
		a.Result.Part2Score,
		a.Result.TotalScore,
		a.Result.Passed,
		categories,
		a.FocusLostCount,
		a.PasteCount,
		a.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert attempt: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows > 0, nil
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
