// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
camunda:
  broker_address: localhost:26500
database:
  postgres:
    host: localhost
    database: matching
    user: matching
    password: ${TEST_PG_PASSWORD}
  elasticsearch:
    addresses: ["http://localhost:9200"]
  redis:
    address: localhost:6379
workers:
  calculate-fit-score:
    enabled: true
  rank-jobs:
    enabled: false
    max_jobs_active: 2
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	t.Setenv("TEST_PG_PASSWORD", "s3cret")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "matching-workers", cfg.App.Name)
	assert.Equal(t, "s3cret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
	assert.Equal(t, "http://localhost:9200", cfg.Database.Elasticsearch.URL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, ":9090", cfg.Observability.MetricsAddress)
	assert.Equal(t, 3600, cfg.Scoring.ProfileCacheTTL)
	assert.Equal(t, 20, cfg.Scoring.RankDefaultSize)
	assert.Equal(t, "jobs", cfg.Scoring.JobsIndex)
	assert.Equal(t, 20, cfg.Assessment.QuestionCount)
	assert.Equal(t, 86400, cfg.Assessment.AttemptTTL)
	assert.Equal(t, int64(0), cfg.Assessment.RandomSeed)

	fit := cfg.Workers["calculate-fit-score"]
	assert.Equal(t, 5, fit.MaxJobsActive)
	assert.Equal(t, 30000, fit.Timeout)
	assert.Equal(t, 3, fit.MaxRetries)
}

func TestLoadFromFile_WorkerToggles(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.True(t, IsWorkerEnabled(cfg, "calculate-fit-score"))
	assert.False(t, IsWorkerEnabled(cfg, "rank-jobs"))
	assert.True(t, IsWorkerEnabled(cfg, "score-assessment"))

	assert.Equal(t, 2, GetWorkerConfig(cfg, "rank-jobs").MaxJobsActive)
	assert.Equal(t, 5, GetWorkerConfig(cfg, "unknown").MaxJobsActive)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "missing broker",
			content: "database:\n  postgres:\n    host: h\n",
			errMsg:  "camunda.broker_address is required",
		},
		{
			name: "missing redis",
			content: `
camunda:
  broker_address: b
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch: {url: "http://es:9200"}
`,
			errMsg: "database.redis.address is required",
		},
		{
			name: "rank size",
			content: minimalConfig + `
scoring:
  rank_default_size: 50
  rank_max_size: 10
`,
			errMsg: "rank_default_size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
	assert.Equal(t, time.Hour, GetSeconds(3600))
}

func TestLoadFromFile_BundledConfig(t *testing.T) {
	t.Setenv("ZEEBE_ADDRESS", "zeebe:26500")
	t.Setenv("DB_HOST", "postgres")
	t.Setenv("DB_NAME", "matching")
	t.Setenv("DB_USER", "matching")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("ELASTICSEARCH_URL", "http://es:9200")
	t.Setenv("ELASTICSEARCH_USERNAME", "")
	t.Setenv("REDIS_ADDRESS", "redis:6379")

	cfg, err := LoadFromFile(filepath.Join("..", "..", "..", "configs", "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
	assert.Equal(t, []string{"http://es:9200"}, cfg.Database.Elasticsearch.GetAddresses())
	assert.Empty(t, cfg.Database.Postgres.Password)
	assert.Empty(t, cfg.Database.Elasticsearch.Username)
	assert.Len(t, cfg.Workers, 6)
	assert.Equal(t, 50, GetWorkerConfig(cfg, "record-attempt-event").MaxJobsActive)
}

func TestLoadFromFile_UnsetListEntriesDropped(t *testing.T) {
	content := `
camunda:
  broker_address: b
database:
  postgres: {host: h, database: d, user: u}
  elasticsearch:
    addresses: ["${TEST_ES_PRIMARY}", "${TEST_ES_UNSET}"]
  redis: {address: r}
`
	t.Setenv("TEST_ES_PRIMARY", "http://es-1:9200")
	t.Setenv("TEST_ES_UNSET", "")

	cfg, err := LoadFromFile(writeConfig(t, content))
	require.NoError(t, err)
	assert.Equal(t, []string{"http://es-1:9200"}, cfg.Database.Elasticsearch.Addresses)
}
