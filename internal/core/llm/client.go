// Package llm provides the plan generation client. A single configured
// provider (Gemini or OpenAI, mock when no credentials are set) is wrapped
// with a per-minute rate limiter, a per-call timeout, bounded retry of
// transient failures, and a circuit breaker.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/observability"
)

// Client is the consumer-facing generation interface.
type Client interface {
	// GeneratePlan sends a prompt and returns the raw model text.
	GeneratePlan(ctx context.Context, prompt string) (string, error)

	// Close releases the underlying provider.
	Close() error
}

type client struct {
	provider    Provider
	breaker     *CircuitBreaker
	rateLimiter *rate.Limiter
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	logger      *zerolog.Logger
}

// New creates a generation client for the configured provider.
func New(ctx context.Context, cfg *config.LLMConfig, logger *zerolog.Logger) (Client, error) {
	if logger == nil {
		nopLogger := zerolog.Nop()
		logger = &nopLogger
	}

	provider, err := newProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str(logKeyProvider, string(provider.Name())).
		Str(logKeyModel, provider.Model()).
		Msg("generation provider configured")

	rpm := cfg.RequestsPerMinute
	if rpm < minimumRequestRPM {
		rpm = minimumRequestRPM
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &client{
		provider: provider,
		breaker: NewCircuitBreaker(CircuitBreakerConfig{
			Threshold:  cfg.CircuitThreshold,
			ResetAfter: cfg.CircuitTimeout,
		}, logger),
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/secondsPerMinute), rateLimiterBurst),
		timeout:     timeout,
		maxRetries:  cfg.MaxRetries,
		retryDelay:  defaultInitialRetryDelay,
		logger:      logger,
	}, nil
}

// newProvider selects the backend from config. Unset credentials fall back
// to the mock provider so local runs work without keys.
func newProvider(ctx context.Context, cfg *config.LLMConfig, logger *zerolog.Logger) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "gemini", "google":
		if cfg.GeminiAPIKey == "" {
			logger.Warn().Msg("no gemini API key configured, using mock provider")

			return NewMockProvider(), nil
		}

		return NewGoogleProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			logger.Warn().Msg("no openai API key configured, using mock provider")

			return NewMockProvider(), nil
		}

		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", errors.ErrProviderNotConfigured, cfg.Provider)
	}
}

// GeneratePlan sends the prompt to the provider. Transient upstream
// failures (per-call timeouts, throttling, server errors) are retried with
// exponential backoff; anything else fails immediately.
func (c *client) GeneratePlan(ctx context.Context, prompt string) (string, error) {
	var lastErr error

	delay := c.retryDelay

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			observability.LLMRetries.WithLabelValues(string(c.provider.Name())).Inc()

			c.logger.Warn().
				Err(lastErr).
				Int(logKeyAttempt, attempt).
				Str(logKeyProvider, string(c.provider.Name())).
				Msg("retrying generation after transient failure")

			select {
			case <-ctx.Done():
				return "", fmt.Errorf("generation retry interrupted: %w", ctx.Err())
			case <-time.After(delay):
				delay *= retryDelayMultiplier
			}
		}

		text, err := c.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}

		lastErr = err

		if !isTransient(err) {
			return "", err
		}
	}

	return "", lastErr
}

// attempt performs one guarded provider call.
func (c *client) attempt(ctx context.Context, prompt string) (string, error) {
	if err := c.breaker.CheckCircuit(); err != nil {
		return "", err
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("generation rate limiter: %w", err)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	providerName := string(c.provider.Name())
	model := c.provider.Model()

	start := time.Now()

	text, err := c.provider.Complete(attemptCtx, prompt)

	observability.LLMRequestDuration.WithLabelValues(providerName, model).Observe(time.Since(start).Seconds())

	if err != nil {
		observability.LLMRequests.WithLabelValues(providerName, model, metricStatusError).Inc()

		wasOpen := c.breaker.IsOpen()
		c.breaker.RecordFailure(c.provider.Name())

		if !wasOpen && c.breaker.IsOpen() {
			observability.LLMCircuitBreakerOpens.WithLabelValues(providerName).Inc()
			observability.LLMCircuitBreakerState.WithLabelValues(providerName).Set(1)
		}

		return "", err
	}

	c.breaker.RecordSuccess()
	observability.LLMCircuitBreakerState.WithLabelValues(providerName).Set(0)
	observability.LLMRequests.WithLabelValues(providerName, model, metricStatusSuccess).Inc()

	return text, nil
}

// Close releases the underlying provider.
func (c *client) Close() error {
	return c.provider.Close()
}

// isTransient reports whether a failed attempt is worth retrying: per-call
// timeouts, upstream throttling, or server-side errors.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return openaiErr.HTTPStatusCode == http.StatusTooManyRequests ||
			openaiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	var googleErr *googleapi.Error
	if errors.As(err, &googleErr) {
		return googleErr.Code == http.StatusTooManyRequests ||
			googleErr.Code >= http.StatusInternalServerError
	}

	return false
}

// Ensure client implements Client interface.
var _ Client = (*client)(nil)
