// internal/workers/matching/rank-jobs/config.go
package rankjobs

import "time"

type Config struct {
	Index       string
	DefaultSize int
	MaxSize     int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:       "jobs",
		DefaultSize: 20,
		MaxSize:     100,
		Timeout:     10 * time.Second,
	}
}
