// Package config loads service configuration from the environment.
// A .env file is honored when present; real environment variables win.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full configuration surface of the food-planner service.
type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"8081"`

	// CronSecret is the bearer token the cron trigger endpoint requires.
	CronSecret string `env:"CRON_SECRET,required"`

	Database  DatabaseConfig
	LLM       LLMConfig
	Batch     BatchConfig
	Scheduler SchedulerConfig
	Notifier  NotifierConfig
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	return cfg, nil
}

// IsLocal reports whether the service runs in the local environment.
func (c *Config) IsLocal() bool {
	return c.AppEnv == "local"
}
