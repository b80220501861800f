// internal/workers/assessment/start-assessment/config.go
package startassessment

import (
	"time"

	"matching-workers/internal/assessment"
)

type Config struct {
	QuestionCount int
	Timeout       time.Duration
}

func LoadConfig() *Config {
	return &Config{
		QuestionCount: assessment.DefaultQuestions,
		Timeout:       5 * time.Second,
	}
}
