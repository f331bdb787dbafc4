package config

import "time"

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	PostgresDSN       string        `env:"POSTGRES_DSN,required"`
	MaxConnections    int32         `env:"DB_MAX_CONNECTIONS" envDefault:"25"`
	MinConnections    int32         `env:"DB_MIN_CONNECTIONS" envDefault:"5"`
	MaxConnIdleTime   time.Duration `env:"DB_MAX_CONN_IDLE_TIME" envDefault:"30m"`
	MaxConnLifetime   time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`
	HealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
}

// LLMConfig holds generation provider settings.
type LLMConfig struct {
	// Provider selects the generation backend: gemini, openai, or mock.
	Provider string `env:"LLM_PROVIDER" envDefault:"gemini"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// Timeout bounds each generation call.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`

	// MaxRetries bounds retries of transient upstream failures per call.
	MaxRetries int `env:"LLM_MAX_RETRIES" envDefault:"2"`

	// RequestsPerMinute is the upstream call budget; the batch size is
	// derived from the same quota.
	RequestsPerMinute int `env:"LLM_REQUESTS_PER_MINUTE" envDefault:"12"`

	CircuitThreshold int           `env:"LLM_CIRCUIT_THRESHOLD" envDefault:"5"`
	CircuitTimeout   time.Duration `env:"LLM_CIRCUIT_TIMEOUT" envDefault:"1m"`
}

// BatchConfig holds plan generation batch settings. Batch size and limits
// may additionally be overridden at runtime via app_settings rows.
type BatchConfig struct {
	// Size caps eligible users processed per invocation. Tied to the
	// upstream per-minute quota, so configuration rather than code.
	Size int `env:"PLAN_BATCH_SIZE" envDefault:"12"`

	// CandidateLimit caps the onboarded-user page fetched per invocation.
	CandidateLimit int `env:"PLAN_CANDIDATE_LIMIT" envDefault:"1000"`

	// HistoryLookback is how many prior plans to fetch per user.
	HistoryLookback int `env:"PLAN_HISTORY_LOOKBACK" envDefault:"5"`

	// WeekStartDay names the weekday a plan week begins on.
	WeekStartDay string `env:"PLAN_WEEK_START_DAY" envDefault:"monday"`

	// LeadDays shifts the default target week: the batch plans for the
	// week containing now+LeadDays. A Sunday cron with lead 1 targets the
	// week starting the next morning.
	LeadDays int `env:"PLAN_LEAD_DAYS" envDefault:"1"`
}

// SchedulerConfig holds the optional in-process weekly scheduler settings.
// The HTTP cron endpoint remains the primary trigger.
type SchedulerConfig struct {
	Enabled      bool          `env:"SCHEDULER_ENABLED" envDefault:"false"`
	Day          string        `env:"SCHEDULER_DAY" envDefault:"sunday"`
	Hour         int           `env:"SCHEDULER_HOUR" envDefault:"9"`
	PollInterval time.Duration `env:"SCHEDULER_POLL_INTERVAL" envDefault:"5m"`
}

// NotifierConfig holds ops notification settings. Both fields set enables
// Telegram batch-completion notifications; otherwise a noop notifier runs.
type NotifierConfig struct {
	TelegramBotToken string `env:"NOTIFY_BOT_TOKEN"`
	TelegramChatID   int64  `env:"NOTIFY_CHAT_ID"`
}
