// internal/workers/jobs/calculate-quality-score/config.go
package calculatequalityscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
