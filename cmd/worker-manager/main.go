// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matching-workers/internal/assessment"
	"matching-workers/internal/assessment/store"
	"matching-workers/internal/common/camunda"
	"matching-workers/internal/common/config"
	"matching-workers/internal/common/database"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/common/observability"
	"matching-workers/pkg/rubric"

	// Assessment workers (3)
	rae "matching-workers/internal/workers/assessment/record-attempt-event"
	sca "matching-workers/internal/workers/assessment/score-assessment"
	sta "matching-workers/internal/workers/assessment/start-assessment"

	// Job posting workers (1)
	cqs "matching-workers/internal/workers/jobs/calculate-quality-score"

	// Matching workers (2)
	cfs "matching-workers/internal/workers/matching/calculate-fit-score"
	rj "matching-workers/internal/workers/matching/rank-jobs"
)

const shutdownTimeout = 30 * time.Second

type clients struct {
	zeebe zbc.Client
	pg    *database.PostgresClient
	redis *database.RedisClient
	es    *database.ElasticsearchClient
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("info", "console", "stderr").Error("config load failed", map[string]interface{}{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log.Info("starting worker manager", map[string]interface{}{
		"app":         cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Observability.TracingEnabled {
		tp, err := observability.InitTracer(cfg.App.Name, cfg.Observability.JaegerEndpoint)
		if err != nil {
			log.Warn("tracing disabled", map[string]interface{}{"error": err.Error()})
		} else {
			defer shutdownWithTimeout(log, "tracer provider", tp.Shutdown)
		}
	}

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		log.Warn("otel metrics disabled", map[string]interface{}{"error": err.Error()})
	}
	defer shutdownWithTimeout(log, "meter provider", obs.Shutdown)

	c, err := connect(ctx, cfg, log)
	if err != nil {
		log.Error("startup failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer c.close(log)

	rb, err := rubric.LoadOrDefault(cfg.Scoring.RubricPath)
	if err != nil {
		log.Error("rubric load failed", map[string]interface{}{
			"path":  cfg.Scoring.RubricPath,
			"error": err.Error(),
		})
		os.Exit(1)
	}
	scorers, err := rb.Scorers()
	if err != nil {
		log.Error("rubric invalid", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	registry := camunda.NewRegistry(c.zeebe, obs, log)
	registerWorkers(cfg, registry, c, scorers, log)
	log.Info("workers registered", map[string]interface{}{"taskTypes": registry.TaskTypes()})

	srv := newHTTPServer(cfg.Observability.MetricsAddress, c)
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	log.Info("shutdown signal received, stopping workers", nil)

	registry.Close()
	shutdownWithTimeout(log, "http server", srv.Shutdown)
	log.Info("worker manager stopped", nil)
}

func connect(ctx context.Context, cfg *config.Config, log logger.Logger) (*clients, error) {
	c := &clients{}
	rc := camunda.DefaultRetryConfig

	err := camunda.Retry(ctx, rc, log, "PostgreSQL connection", func(ctx context.Context) error {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		if err := pg.Ping(ctx); err != nil {
			pg.Close()
			return err
		}
		c.pg = pg
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info("PostgreSQL connected", nil)

	err = camunda.Retry(ctx, rc, log, "Redis connection", func(ctx context.Context) error {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		if err := rdb.Ping(ctx); err != nil {
			rdb.Close()
			return err
		}
		c.redis = rdb
		return nil
	})
	if err != nil {
		c.close(log)
		return nil, err
	}
	log.Info("Redis connected", nil)

	err = camunda.Retry(ctx, rc, log, "Elasticsearch connection", func(ctx context.Context) error {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch, nil)
		if err != nil {
			return err
		}
		if err := es.Ping(ctx); err != nil {
			return err
		}
		c.es = es
		return nil
	})
	if err != nil {
		c.close(log)
		return nil, err
	}
	log.Info("Elasticsearch connected", nil)

	c.zeebe, err = camunda.Connect(ctx, camunda.NewClientConfig(cfg.Camunda), log)
	if err != nil {
		c.close(log)
		return nil, err
	}
	return c, nil
}

func (c *clients) close(log logger.Logger) {
	if c.zeebe != nil {
		if err := c.zeebe.Close(); err != nil {
			log.Warn("error closing zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}
	if c.redis != nil {
		c.redis.Close()
	}
	if c.pg != nil {
		c.pg.Close()
	}
}

func registerWorkers(cfg *config.Config, registry *camunda.Registry, c *clients, scorers *rubric.Scorers, log logger.Logger) {
	timeout := func(taskType string) time.Duration {
		return config.GetDuration(config.GetWorkerConfig(cfg, taskType).Timeout)
	}

	// --- Matching ---
	registry.Register(cfs.TaskType, config.GetWorkerConfig(cfg, cfs.TaskType), cfs.NewHandler(
		&cfs.Config{
			CacheTTL: config.GetSeconds(cfg.Scoring.ProfileCacheTTL),
			Timeout:  timeout(cfs.TaskType),
		},
		scorers.Fit, c.pg.DB, c.redis.Client, log,
	))

	registry.Register(rj.TaskType, config.GetWorkerConfig(cfg, rj.TaskType), rj.NewHandler(
		&rj.Config{
			Index:       cfg.Scoring.JobsIndex,
			DefaultSize: cfg.Scoring.RankDefaultSize,
			MaxSize:     cfg.Scoring.RankMaxSize,
			Timeout:     timeout(rj.TaskType),
		},
		scorers.Fit, c.es.Client, log,
	))

	// --- Job postings ---
	registry.Register(cqs.TaskType, config.GetWorkerConfig(cfg, cqs.TaskType), cqs.NewHandler(
		&cqs.Config{Timeout: timeout(cqs.TaskType)},
		scorers.Quality, c.pg.DB, log,
	))

	// --- Assessment ---
	attempts := store.NewRedisStore(c.redis.Client, config.GetSeconds(cfg.Assessment.AttemptTTL))
	bank := assessment.DefaultBank()

	registry.Register(sta.TaskType, config.GetWorkerConfig(cfg, sta.TaskType), sta.NewHandler(
		&sta.Config{
			QuestionCount: cfg.Assessment.QuestionCount,
			Timeout:       timeout(sta.TaskType),
		},
		bank, attempts, assessment.NewRand(cfg.Assessment.RandomSeed), log,
	))

	registry.Register(rae.TaskType, config.GetWorkerConfig(cfg, rae.TaskType), rae.NewHandler(
		&rae.Config{Timeout: timeout(rae.TaskType)},
		bank, attempts, log,
	))

	registry.Register(sca.TaskType, config.GetWorkerConfig(cfg, sca.TaskType), sca.NewHandler(
		&sca.Config{Timeout: timeout(sca.TaskType)},
		bank, scorers.Scenario, attempts, c.pg.DB, log,
	))
}

func newHTTPServer(addr string, c *clients) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		checks := map[string]string{}
		ready := true
		record := func(name string, err error) {
			if err != nil {
				checks[name] = err.Error()
				ready = false
				return
			}
			checks[name] = "ok"
		}
		record("postgres", c.pg.Ping(ctx))
		record("redis", c.redis.Ping(ctx))
		record("elasticsearch", c.es.Ping(ctx))
		record("zeebe", camunda.HealthCheck(ctx, c.zeebe, 3*time.Second))

		status := http.StatusOK
		if !ready {
			status = http.StatusServiceUnavailable
		}
		writeStatus(w, status, checks)
	})
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func writeStatus(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func shutdownWithTimeout(log logger.Logger, name string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Warn("shutdown failed", map[string]interface{}{
			"component": name,
			"error":     err.Error(),
		})
	}
}
