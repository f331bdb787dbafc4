package llm

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/platform/config"
)

type stubResponse struct {
	text string
	err  error
}

type stubProvider struct {
	responses []stubResponse
	calls     int
}

func (p *stubProvider) Name() ProviderName { return "stub" }
func (p *stubProvider) IsAvailable() bool  { return true }
func (p *stubProvider) Model() string      { return "stub-model" }
func (p *stubProvider) Close() error       { return nil }

func (p *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	idx := p.calls
	if idx >= len(p.responses) {
		idx = len(p.responses) - 1
	}

	p.calls++

	r := p.responses[idx]

	return r.text, r.err
}

func newTestClient(p Provider, maxRetries, breakerThreshold int) *client {
	nop := zerolog.Nop()

	return &client{
		provider: p,
		breaker: NewCircuitBreaker(CircuitBreakerConfig{
			Threshold:  breakerThreshold,
			ResetAfter: time.Minute,
		}, &nop),
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		timeout:     time.Second,
		maxRetries:  maxRetries,
		retryDelay:  time.Millisecond,
		logger:      &nop,
	}
}

func TestGeneratePlanSuccess(t *testing.T) {
	stub := &stubProvider{responses: []stubResponse{{text: `{"monday":{}}`}}}
	c := newTestClient(stub, 2, 5)

	got, err := c.GeneratePlan(context.Background(), "plan please")
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if got != `{"monday":{}}` {
		t.Fatalf("GeneratePlan() = %q", got)
	}

	if stub.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", stub.calls)
	}
}

func TestGeneratePlanRetriesTransientFailures(t *testing.T) {
	transient := &openai.APIError{HTTPStatusCode: http.StatusServiceUnavailable, Message: "overloaded"}
	stub := &stubProvider{responses: []stubResponse{
		{err: transient},
		{err: transient},
		{text: "recovered"},
	}}
	c := newTestClient(stub, 2, 5)

	got, err := c.GeneratePlan(context.Background(), "plan please")
	if err != nil {
		t.Fatalf("GeneratePlan() error = %v", err)
	}

	if got != "recovered" {
		t.Fatalf("GeneratePlan() = %q, want %q", got, "recovered")
	}

	if stub.calls != 3 {
		t.Fatalf("provider calls = %d, want 3", stub.calls)
	}
}

func TestGeneratePlanStopsOnPermanentError(t *testing.T) {
	stub := &stubProvider{responses: []stubResponse{{err: fmt.Errorf("invalid api key")}}}
	c := newTestClient(stub, 2, 5)

	if _, err := c.GeneratePlan(context.Background(), "plan please"); err == nil {
		t.Fatal("GeneratePlan() error = nil, want permanent error")
	}

	if stub.calls != 1 {
		t.Fatalf("provider calls = %d, want 1 (no retries of permanent errors)", stub.calls)
	}
}

func TestGeneratePlanExhaustsRetries(t *testing.T) {
	transient := &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests, Message: "throttled"}
	stub := &stubProvider{responses: []stubResponse{{err: transient}}}
	c := newTestClient(stub, 1, 5)

	_, err := c.GeneratePlan(context.Background(), "plan please")
	if err == nil {
		t.Fatal("GeneratePlan() error = nil, want throttling error")
	}

	if !errors.As(err, new(*openai.APIError)) {
		t.Fatalf("GeneratePlan() error = %v, want last upstream error", err)
	}

	if stub.calls != 2 {
		t.Fatalf("provider calls = %d, want 2", stub.calls)
	}
}

func TestGeneratePlanCircuitOpens(t *testing.T) {
	stub := &stubProvider{responses: []stubResponse{{err: fmt.Errorf("upstream broken")}}}
	c := newTestClient(stub, 0, 2)

	for i := 0; i < 2; i++ {
		if _, err := c.GeneratePlan(context.Background(), "plan please"); err == nil {
			t.Fatalf("GeneratePlan() call %d error = nil, want failure", i)
		}
	}

	_, err := c.GeneratePlan(context.Background(), "plan please")
	if !errors.Is(err, errors.ErrCircuitBreakerOpen) {
		t.Fatalf("GeneratePlan() error = %v, want circuit breaker open", err)
	}

	if stub.calls != 2 {
		t.Fatalf("provider calls = %d, want 2 (open circuit blocks attempts)", stub.calls)
	}
}

func TestGeneratePlanEmptyResponseNotRetried(t *testing.T) {
	stub := &stubProvider{responses: []stubResponse{{err: errors.ErrEmptyResponse}}}
	c := newTestClient(stub, 2, 5)

	_, err := c.GeneratePlan(context.Background(), "plan please")
	if !errors.Is(err, errors.ErrEmptyResponse) {
		t.Fatalf("GeneratePlan() error = %v, want empty response", err)
	}

	if stub.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", stub.calls)
	}
}

type slowProvider struct{}

func (p *slowProvider) Name() ProviderName { return "slow" }
func (p *slowProvider) IsAvailable() bool  { return true }
func (p *slowProvider) Model() string      { return "slow-model" }
func (p *slowProvider) Close() error       { return nil }

func (p *slowProvider) Complete(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()

	return "", fmt.Errorf("completion aborted: %w", ctx.Err())
}

func TestGeneratePlanTimesOutPerAttempt(t *testing.T) {
	c := newTestClient(&slowProvider{}, 1, 5)
	c.timeout = 10 * time.Millisecond

	_, err := c.GeneratePlan(context.Background(), "plan please")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("GeneratePlan() error = %v, want deadline exceeded", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"deadline", context.DeadlineExceeded, true},
		{"wrapped_deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), true},
		{"openai_429", &openai.APIError{HTTPStatusCode: http.StatusTooManyRequests}, true},
		{"openai_500", &openai.APIError{HTTPStatusCode: http.StatusInternalServerError}, true},
		{"openai_400", &openai.APIError{HTTPStatusCode: http.StatusBadRequest}, false},
		{"google_503", &googleapi.Error{Code: http.StatusServiceUnavailable}, true},
		{"google_404", &googleapi.Error{Code: http.StatusNotFound}, false},
		{"plain", fmt.Errorf("boom"), false},
		{"empty_response", errors.ErrEmptyResponse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransient(tt.err); got != tt.want {
				t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestNewProviderSelection(t *testing.T) {
	nop := zerolog.Nop()
	ctx := context.Background()

	t.Run("mock", func(t *testing.T) {
		p, err := newProvider(ctx, &config.LLMConfig{Provider: "mock"}, &nop)
		if err != nil {
			t.Fatalf("newProvider() error = %v", err)
		}

		if p.Name() != ProviderMock {
			t.Fatalf("provider = %s, want mock", p.Name())
		}
	})

	t.Run("gemini_without_key_falls_back_to_mock", func(t *testing.T) {
		p, err := newProvider(ctx, &config.LLMConfig{Provider: "gemini"}, &nop)
		if err != nil {
			t.Fatalf("newProvider() error = %v", err)
		}

		if p.Name() != ProviderMock {
			t.Fatalf("provider = %s, want mock", p.Name())
		}
	})

	t.Run("openai_with_key", func(t *testing.T) {
		p, err := newProvider(ctx, &config.LLMConfig{Provider: "openai", OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini"}, &nop)
		if err != nil {
			t.Fatalf("newProvider() error = %v", err)
		}

		if p.Name() != ProviderOpenAI {
			t.Fatalf("provider = %s, want openai", p.Name())
		}
	})

	t.Run("unknown_provider", func(t *testing.T) {
		_, err := newProvider(ctx, &config.LLMConfig{Provider: "grok"}, &nop)
		if !errors.Is(err, errors.ErrProviderNotConfigured) {
			t.Fatalf("newProvider() error = %v, want provider not configured", err)
		}
	})
}
