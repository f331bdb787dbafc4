package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/vishwanatharondekar/weekly-food-planner-sub000/internal/core/errors"
)

// googleProvider implements the Provider interface for Google Gemini.
type googleProvider struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGoogleProvider creates a new Google Gemini generation provider.
func NewGoogleProvider(ctx context.Context, apiKey, model string) (*googleProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating google genai client: %w", err)
	}

	return &googleProvider{
		apiKey: apiKey,
		model:  model,
		client: client,
	}, nil
}

// Name returns the provider identifier.
func (p *googleProvider) Name() ProviderName {
	return ProviderGoogle
}

// IsAvailable returns true if the provider is configured and available.
func (p *googleProvider) IsAvailable() bool {
	return p.apiKey != ""
}

// Model returns the configured model identifier.
func (p *googleProvider) Model() string {
	return p.model
}

// Complete sends a prompt and returns the raw model text.
func (p *googleProvider) Complete(ctx context.Context, prompt string) (string, error) {
	genModel := p.client.GenerativeModel(p.model)

	resp, err := genModel.GenerateContent(ctx, genai.Text(sanitizeUTF8(prompt)))
	if err != nil {
		return "", fmt.Errorf("google genai completion: %w", err)
	}

	text := strings.TrimSpace(extractGoogleResponseText(resp))
	if text == "" {
		return "", errors.ErrEmptyResponse
	}

	return text, nil
}

// Close closes the Google client.
func (p *googleProvider) Close() error {
	if p.client != nil {
		if err := p.client.Close(); err != nil {
			return fmt.Errorf("closing google genai client: %w", err)
		}
	}

	return nil
}

// extractGoogleResponseText extracts text content from a Gemini response.
func extractGoogleResponseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var result strings.Builder

	for _, candidate := range resp.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					result.WriteString(string(text))
				}
			}
		}
	}

	return result.String()
}

// sanitizeUTF8 removes or replaces invalid UTF-8 sequences from a string.
// Google's protobuf API requires valid UTF-8, and user-entered dish names
// may contain invalid bytes.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var builder strings.Builder
	builder.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			builder.WriteRune(utf8.RuneError)

			i++
		} else {
			builder.WriteRune(r)

			i += size
		}
	}

	return builder.String()
}

// Ensure googleProvider implements Provider interface.
var _ Provider = (*googleProvider)(nil)
