// internal/workers/matching/calculate-fit-score/config.go
package calculatefitscore

import "time"

type Config struct {
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig() *Config {
	return &Config{
		CacheTTL: time.Hour,
		Timeout:  10 * time.Second,
	}
}
