package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
)

// openaiProvider implements the Provider interface for OpenAI.
type openaiProvider struct {
	apiKey string
	model  string
	client *openai.Client
}

// NewOpenAIProvider creates a new OpenAI generation provider.
func NewOpenAIProvider(apiKey, model string) *openaiProvider {
	return &openaiProvider{
		apiKey: apiKey,
		model:  model,
		client: openai.NewClient(apiKey),
	}
}

// Name returns the provider identifier.
func (p *openaiProvider) Name() ProviderName {
	return ProviderOpenAI
}

// IsAvailable returns true if the provider is configured and available.
func (p *openaiProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Model returns the configured model identifier.
func (p *openaiProvider) Model() string {
	return p.model
}

// Complete sends a prompt and returns the raw model text. JSON response
// mode is requested; the parser still tolerates prose-wrapped output.
func (p *openaiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.ErrEmptyResponse
	}

	return text, nil
}

// Close is a no-op; the OpenAI client holds no persistent connections.
func (p *openaiProvider) Close() error {
	return nil
}

// Ensure openaiProvider implements Provider interface.
var _ Provider = (*openaiProvider)(nil)
