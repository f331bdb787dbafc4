package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BatchRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_batch_runs_total",
		Help: "The total number of plan batch invocations by outcome",
	}, []string{"status", "trigger"})

	BatchDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "planner_batch_duration_seconds",
		Help:    "Duration in seconds of one plan batch invocation",
		Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
	})

	UsersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_users_processed_total",
		Help: "The total number of users reaching a terminal batch state",
	}, []string{"status"})

	UsersSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_users_skipped_total",
		Help: "The total number of users skipped by eligibility reason",
	}, []string{"reason"})

	PlansWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "planner_plans_written_total",
		Help: "The total number of weekly meal plans persisted",
	})

	CandidatePoolSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "planner_candidate_pool_size",
		Help: "Number of onboarded candidate users fetched for the last batch",
	})

	LLMRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_llm_requests_total",
		Help: "Total number of generation requests",
	}, []string{"provider", "model", "status"})

	LLMRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planner_llm_request_duration_seconds",
		Help:    "Duration of generation requests",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider", "model"})

	LLMRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_llm_retries_total",
		Help: "Total number of generation retries after transient failures",
	}, []string{"provider"})

	LLMCircuitBreakerOpens = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_llm_circuit_breaker_opens_total",
		Help: "Total number of times the generation circuit breaker opened",
	}, []string{"provider"})

	LLMCircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planner_llm_circuit_breaker_state",
		Help: "Current state of the generation circuit breaker (0=closed, 1=open)",
	}, []string{"provider"})

	CronRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_cron_requests_total",
		Help: "Total number of cron trigger requests by HTTP status",
	}, []string{"status"})

	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "planner_notifications_total",
		Help: "Total number of ops notifications by outcome",
	}, []string{"status"})
)
