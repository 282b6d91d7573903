package mock

import "context"

// Generator is a test double for ai.Generator.
type Generator struct {
	// GenerateFunc, if set, replaces the default behavior.
	GenerateFunc func(ctx context.Context, prompt string) (string, error)

	// Prompts records every prompt passed to Generate.
	Prompts []string

	// Answer is returned by the default behavior. Defaults to a fixed
	// marker string when empty.
	Answer string
}

// NewGenerator creates a mock generator returning a fixed answer.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate records the prompt and returns the configured answer.
func (m *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	m.Prompts = append(m.Prompts, prompt)

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, prompt)
	}
	if m.Answer != "" {
		return m.Answer, nil
	}
	return "mock answer", nil
}
