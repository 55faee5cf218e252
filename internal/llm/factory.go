package llm

import (
	"fmt"
	"strings"
)

// NewClient creates a text-generation client based on the provided
// configuration. Supported providers: gemini, openai, anthropic.
func NewClient(cfg Config) (Client, error) {
	var client Client
	var err error

	switch strings.ToLower(cfg.Provider) {
	case "gemini":
		client, err = newGeminiClient(cfg)
	case "openai":
		client, err = newOpenAIClient(cfg)
	case "anthropic":
		client, err = newAnthropicClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		client = &limitedClient{inner: client, limiter: newRateLimiter(cfg.RateLimit)}
	}

	return client, nil
}
