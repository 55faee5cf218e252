// Package llm provides text-generation clients for the supported providers.
//
// Providers are interchangeable: the advisor and the learning content loader
// only depend on the Client interface. There is deliberately no timeout or
// retry at this layer; callers own those policies.
package llm

import (
	"context"
	"time"
)

// Client defines the interface for text-generation providers.
type Client interface {
	// Generate sends a single-turn prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string) (string, error)
	// GenerateWithSystem sends a prompt with an explicit system instruction.
	GenerateWithSystem(ctx context.Context, systemPrompt, prompt string) (string, error)
}

// Config holds configuration for a text-generation client.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	RateLimit   int // requests per minute, 0 disables limiting
}

const defaultHTTPTimeout = 30 * time.Second
