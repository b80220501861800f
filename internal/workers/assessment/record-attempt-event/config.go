// internal/workers/assessment/record-attempt-event/config.go
package recordattemptevent

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
