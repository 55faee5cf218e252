package llm

import (
	"context"
	"sync"
)

// MockClient is a test double for the Client interface.
type MockClient struct {
	GenerateFunc func(ctx context.Context, prompt string) (string, error)
	mu           sync.Mutex
	prompts      []string
}

// Generate records the prompt and delegates to GenerateFunc.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	return "", nil
}

// GenerateWithSystem records the prompt and delegates to GenerateFunc.
func (m *MockClient) GenerateWithSystem(ctx context.Context, _, prompt string) (string, error) {
	return m.Generate(ctx, prompt)
}

// Prompts returns a copy of all prompts seen so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns the number of generate calls.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
