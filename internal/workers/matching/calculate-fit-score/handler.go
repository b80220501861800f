// internal/workers/matching/calculate-fit-score/handler.go
package calculatefitscore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "matching-workers/internal/common/errors"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/metrics"
	"matching-workers/internal/common/observability"
	"matching-workers/internal/models"
	"matching-workers/internal/scoring/fit"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/redis/go-redis/v9"
)

const (
	TaskType = "calculate-fit-score"

	profileCachePrefix = "candidate:profile:"
)

type Handler struct {
	config     *Config
	scorer     *fit.Scorer
	db         *sql.DB
	redis      *redis.Client
	errHandler *apperrors.ErrorHandler
	logger     logger.Logger
}

func NewHandler(config *Config, scorer *fit.Scorer, db *sql.DB, redis *redis.Client, log logger.Logger) *Handler {
	if scorer == nil {
		scorer = fit.NewScorer()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:     config,
		scorer:     scorer,
		db:         db,
		redis:      redis,
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
	if input.UserProfile == nil && input.UserID == "" {
		return nil, apperrors.NewInvalidInputError("userId or userProfile is required")
	}

	profile, source, err := h.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	result := h.scorer.Score(profile, input.Job)
	metrics.FitScores.Observe(float64(result.Score))

	output := &Output{
		FitScore:      result.Score,
		FitReasons:    result.Reasons,
		FitBreakdown:  result.Breakdown,
		ProfileSource: source,
	}

	if input.ApplicationID != "" {
		persisted, err := h.persistScore(ctx, input.ApplicationID, result)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeDatabaseUpdateFailed, err)
		}
		output.Persisted = persisted
	}

	h.logger.Info("fit score calculated", map[string]interface{}{
		"userId":        input.UserID,
		"jobId":         input.Job.ID,
		"score":         result.Score,
		"profileSource": source,
	})

	return output, nil
}

// resolveProfile prefers the profile passed with the job, then the cache,
// then Postgres. A candidate without a stored profile is scored on an empty
// one.
func (h *Handler) resolveProfile(ctx context.Context, input *Input) (models.UserProfile, string, error) {
	if input.UserProfile != nil {
		return *input.UserProfile, SourceInput, nil
	}

	if profile, ok := h.cachedProfile(ctx, input.UserID); ok {
		return profile, SourceCache, nil
	}

	profile, err := h.loadProfile(ctx, input.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		h.logger.Warn("no stored profile, scoring with empty profile", map[string]interface{}{
			"userId": input.UserID,
		})
		return models.UserProfile{UserID: input.UserID}, SourceNone, nil
	}
	if err != nil {
		return models.UserProfile{}, "", apperrors.New(apperrors.ErrCodeProfileLookupFailed, err)
	}

	h.cacheProfile(ctx, profile)
	return profile, SourceDatabase, nil
}

func (h *Handler) cachedProfile(ctx context.Context, userID string) (models.UserProfile, bool) {
	var profile models.UserProfile
	if h.redis == nil {
		return profile, false
	}

	val, err := h.redis.Get(ctx, profileCachePrefix+userID).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			h.logger.Warn("profile cache read failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
		return profile, false
	}

	if err := json.Unmarshal([]byte(val), &profile); err != nil {
		return profile, false
	}
	return profile, true
}

func (h *Handler) cacheProfile(ctx context.Context, profile models.UserProfile) {
	if h.redis == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := h.redis.Set(ctx, profileCachePrefix+profile.UserID, data, h.config.CacheTTL).Err(); err != nil {
		h.logger.Warn("profile cache write failed", map[string]interface{}{
			"userId": profile.UserID,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) loadProfile(ctx context.Context, userID string) (models.UserProfile, error) {
	row := h.db.QueryRowContext(ctx, `
		SELECT desired_role, industries, avg_deal_size, city, country, tools, language, employment_preferences
		FROM candidate_profiles WHERE user_id = $1`, userID)

	var (
		role, city, country, language sql.NullString
		dealSize                      sql.NullInt64
		industries, tools, employment []byte
	)
	if err := row.Scan(&role, &industries, &dealSize, &city, &country, &tools, &language, &employment); err != nil {
		return models.UserProfile{}, err
	}

	profile := models.UserProfile{
		UserID:      userID,
		DesiredRole: role.String,
		AvgDealSize: int(dealSize.Int64),
		City:        city.String,
		Country:     country.String,
		Language:    language.String,
	}
	profile.Industries = decodeList(industries)
	profile.Tools = decodeList(tools)
	profile.EmploymentPreferences = decodeList(employment)

	return profile, nil
}

func decodeList(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// persistScore writes the score onto the application row. It reports false
// when no such application exists.
func (h *Handler) persistScore(ctx context.Context, applicationID string, result fit.Result) (bool, error) {
	reasons, err := json.Marshal(result.Reasons)
	if err != nil {
		return false, err
	}

	res, err := h.db.ExecContext(ctx, `
		UPDATE applications
		SET fit_score = $1, fit_reasons = $2, updated_at = NOW()
		WHERE id = $3`, result.Score, reasons, applicationID)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if rows == 0 {
		h.logger.Warn("application not found, fit score not persisted", map[string]interface{}{
			"applicationId": applicationID,
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
