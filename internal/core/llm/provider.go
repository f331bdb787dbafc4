package llm

import "context"

// ProviderName identifies a generation provider.
type ProviderName string

// Provider name constants.
const (
	ProviderGoogle ProviderName = "google"
	ProviderOpenAI ProviderName = "openai"
	ProviderMock   ProviderName = "mock"
)

// Provider defines the interface for plan generation backends. A provider
// performs exactly one completion call; throttling, retries, and the circuit
// breaker live in the Client wrapper.
type Provider interface {
	// Name returns the provider identifier.
	Name() ProviderName

	// IsAvailable returns true if the provider is configured and available.
	IsAvailable() bool

	// Model returns the configured model identifier, for logs and metrics.
	Model() string

	// Complete sends a prompt and returns the raw model text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Close releases any underlying connections.
	Close() error
}
