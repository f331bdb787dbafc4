package llm

import "time"

// Circuit breaker defaults.
const (
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = 1 * time.Minute
)

// Rate limiter settings.
const (
	rateLimiterBurst  = 1
	secondsPerMinute  = 60
	minimumRequestRPM = 1
)

// Request timeout default.
const defaultTimeout = 30 * time.Second

// Retry defaults for transient upstream failures.
const (
	defaultInitialRetryDelay = 2 * time.Second
	retryDelayMultiplier     = 2
)

// Log field keys.
const (
	logKeyProvider = "provider"
	logKeyModel    = "model"
	logKeyAttempt  = "attempt"
)

// Metric status label values.
const (
	metricStatusSuccess = "success"
	metricStatusError   = "error"
)
