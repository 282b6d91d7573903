package openai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator against OpenAI-compatible chat APIs.
//
// Temperature is pinned to zero so the same prompt always yields the same
// answer. Like the embedder, it builds a client per call to authenticate
// with the next credential from the rotation pool.
type Generator struct {
	config  *ai.Config
	rotator *keys.Rotator
	logger  *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(config *ai.Config, rotator *keys.Rotator) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if rotator == nil {
		return nil, keys.ErrNoKeys
	}

	return &Generator{
		config:  config,
		rotator: rotator,
		logger:  slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a generator using the provided configuration and
// credential rotator.
func NewGenerator(config *ai.Config, rotator *keys.Rotator) (ai.Generator, error) {
	return newGenerator(config, rotator)
}

// Generate issues one deterministic generation call and returns the
// model's answer verbatim.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	g.logger.Debug("generating answer", "promptLength", len(prompt))

	llm, err := openai.New(
		openai.WithBaseURL(g.config.ChatHost),
		openai.WithToken(g.rotator.Next()),
		openai.WithModel(g.config.ChatModel),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}

	answer, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt, llms.WithTemperature(0))
	if err != nil {
		g.logger.Error("generation call failed", "err", err)
		return "", fmt.Errorf("%w: %w", ai.ErrProvider, err)
	}
	return answer, nil
}
