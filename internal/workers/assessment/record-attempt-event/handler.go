// internal/workers/assessment/record-attempt-event/handler.go
package recordattemptevent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"matching-workers/internal/assessment"
	"matching-workers/internal/assessment/store"
	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/common/validation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "record-attempt-event"
)

// AttemptUpdater applies a change to a stored attempt atomically.
type AttemptUpdater interface {
	Update(ctx context.Context, id string, fn store.UpdateFunc) (assessment.Attempt, error)
}

type Handler struct {
	config     *Config
	bank       *assessment.Bank
	store      AttemptUpdater
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

// NewHandler builds the worker. A nil bank means the built-in question bank.
func NewHandler(config *Config, bank *assessment.Bank, store AttemptUpdater, log logger.Logger) *Handler {
	if bank == nil {
		bank = assessment.DefaultBank()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		bank:       bank,
		store:      store,
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
	if strings.TrimSpace(input.AttemptID) == "" {
		return nil, apperrors.NewInvalidInputError("attemptId is required")
	}

	ev := input.event()
	updated, err := h.store.Update(ctx, input.AttemptID, func(a assessment.Attempt) (assessment.Attempt, error) {
		return assessment.ApplyWithBank(a, ev, h.bank)
	})
	if err != nil {
		metrics.AttemptEvents.WithLabelValues(string(ev.Type), "rejected").Inc()
		h.logger.Warn("attempt event rejected", map[string]interface{}{
			"attemptId": input.AttemptID,
			"eventType": ev.Type,
			"error":     err.Error(),
		})
		return nil, apperrors.Classify(err, apperrors.ErrCodeCacheFailed)
	}
	metrics.AttemptEvents.WithLabelValues(string(ev.Type), "applied").Inc()

	h.logger.Debug("attempt event applied", map[string]interface{}{
		"attemptId": updated.ID,
		"eventType": ev.Type,
		"status":    updated.Status,
		"part":      updated.CurrentPart,
		"index":     updated.CurrentQuestionIndex,
	})

	return newOutput(updated), nil
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
