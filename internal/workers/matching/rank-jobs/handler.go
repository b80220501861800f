// internal/workers/matching/rank-jobs/handler.go
package rankjobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/scoring/fit"
	"matching-workers/internal/workers/matching/rank-jobs/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType = "rank-jobs"

	// Jobs fetched per requested result, so filtering by MinScore still
	// leaves enough to fill the page.
	poolFactor  = 5
	maxPoolSize = 500
)

var ErrSearchQueryFailed = errors.New("SEARCH_QUERY_FAILED")

type Handler struct {
	config     *Config
	scorer     *fit.Scorer
	client     *elasticsearch.Client
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, scorer *fit.Scorer, client *elasticsearch.Client, log logger.Logger) *Handler {
	if scorer == nil {
		scorer = fit.NewScorer()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		scorer:     scorer,
		client:     client,
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
	if input.UserProfile == nil {
		return nil, apperrors.NewInvalidInputError("userProfile is required")
	}
	if input.MinScore < 0 || input.MinScore > 100 {
		return nil, apperrors.NewInvalidInputError("minScore must be between 0 and 100")
	}

	size := h.pageSize(input.Size)
	pool := size * poolFactor
	if pool > maxPoolSize {
		pool = maxPoolSize
	}

	result, err := queries.SearchPublishedJobs(ctx, h.client, h.config.Index, input.Filters, pool)
	if err != nil {
		return nil, apperrors.New(apperrors.ErrCodeSearchQueryFailed, fmt.Errorf("%w: %v", ErrSearchQueryFailed, err))
	}

	ranked := make([]RankedJob, 0, len(result.Jobs))
	for _, job := range result.Jobs {
		r := h.scorer.Score(*input.UserProfile, job)
		metrics.FitScores.Observe(float64(r.Score))
		if r.Score < input.MinScore {
			continue
		}
		ranked = append(ranked, RankedJob{
			JobID:        job.ID,
			Title:        job.Title,
			FitScore:     r.Score,
			FitReasons:   r.Reasons,
			FitBreakdown: r.Breakdown,
		})
	}

	sortRanked(ranked)
	if len(ranked) > size {
		ranked = ranked[:size]
	}

	h.logger.Info("jobs ranked", map[string]interface{}{
		"userId":     input.UserProfile.UserID,
		"considered": len(result.Jobs),
		"returned":   len(ranked),
		"tookMs":     result.Took,
	})

	return &Output{
		Jobs:       ranked,
		Considered: len(result.Jobs),
		TotalHits:  result.TotalHits,
	}, nil
}

func (h *Handler) pageSize(requested int) int {
	switch {
	case requested <= 0:
		return h.config.DefaultSize
	case requested > h.config.MaxSize:
		return h.config.MaxSize
	default:
		return requested
	}
}

// sortRanked orders by fit score, best first. Equal scores keep a stable
// order by job id.
func sortRanked(jobs []RankedJob) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].FitScore != jobs[j].FitScore {
			return jobs[i].FitScore > jobs[j].FitScore
		}
		return jobs[i].JobID < jobs[j].JobID
	})
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
