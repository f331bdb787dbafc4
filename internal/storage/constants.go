package db

import "time"

// Database connection constants
const (
	// ConnectionRetrySleep is the sleep duration between connection retries
	ConnectionRetrySleep = 2 * time.Second
	// maxConnectionRetries is the number of retries for initial connection
	maxConnectionRetries = 10
)

// Database pool default constants
const (
	defaultMaxConns          int32         = 25
	defaultMinConns          int32         = 5
	defaultMaxConnIdleTime   time.Duration = 30 * time.Minute
	defaultMaxConnLifetime   time.Duration = time.Hour
	defaultHealthCheckPeriod time.Duration = time.Minute
)

// Setting keys understood by the planner. Values live in app_settings and
// override the corresponding environment defaults at run time.
const (
	SettingBatchSize        = "plan_batch_size"
	SettingCandidateLimit   = "plan_candidate_limit"
	SettingHistoryLookback  = "plan_history_lookback"
	SettingSchedulerLastRun = "scheduler_last_run"
)

// BatchLockID is the advisory lock guarding concurrent batch invocations.
const BatchLockID int64 = 2000
