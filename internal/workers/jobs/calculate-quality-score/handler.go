// internal/workers/jobs/calculate-quality-score/handler.go
package calculatequalityscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/quality"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-quality-score"
)

type Handler struct {
	config     *Config
	scorer     *quality.Scorer
	db         *sql.DB
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, scorer *quality.Scorer, db *sql.DB, log logger.Logger) *Handler {
	if scorer == nil {
		scorer = quality.NewScorer()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		scorer:     scorer,
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
	if input.Job.ID == "" && !input.DryRun {
		return nil, apperrors.NewInvalidInputError("job.id is required unless dryRun is set")
	}
	if input.Job.Status == models.JobStatusClosed {
		return nil, apperrors.NewInvalidInputError("closed jobs are not re-scored")
	}

	result := h.scorer.CalculateScore(input.Job)
	publishStatus := quality.GetPublishStatus(result.Score)
	metrics.QualityScores.WithLabelValues(publishStatus).Observe(float64(result.Score))

	output := &Output{
		JobID:         input.Job.ID,
		QualityScore:  result.Score,
		Breakdown:     result.Breakdown,
		Feedback:      result.Feedback,
		PublishStatus: publishStatus,
		CanPublish:    quality.CanPublish(result.Score),
		JobStatus:     nextStatus(input.Job.Status, result.Score),
	}

	if !input.DryRun {
		persisted, err := h.persist(ctx, input.Job.ID, output)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeDatabaseUpdateFailed, err)
		}
		output.Persisted = persisted
	}

	h.logger.Info("quality score calculated", map[string]interface{}{
		"jobId":         input.Job.ID,
		"score":         result.Score,
		"publishStatus": publishStatus,
		"jobStatus":     output.JobStatus,
	})

	return output, nil
}

// nextStatus keeps published jobs published; everything else follows the
// score.
func nextStatus(current models.JobStatus, score int) models.JobStatus {
	if current == models.JobStatusPublished {
		return current
	}
	return quality.LifecycleStatus(score)
}

func (h *Handler) persist(ctx context.Context, jobID string, output *Output) (bool, error) {
	res, err := h.db.ExecContext(ctx, `
		UPDATE jobs
		SET quality_score_int = $1,
		    status = CASE WHEN status = 'published' THEN status ELSE $2 END,
		    updated_at = NOW()
		WHERE id = $3 AND status <> 'closed'`,
		output.QualityScore, string(output.JobStatus), jobID)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		h.logger.Warn("job missing or closed, quality score not persisted", map[string]interface{}{
			"jobId": jobID,
		})
		return false, nil
	}
	return true, nil
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
