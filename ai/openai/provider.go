// Copyright 2025 Medina Group
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"log/slog"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages embedder and generator instances sharing one credential
// rotator.
type Provider struct {
	config    *ai.Config
	embedder  *Embedder
	generator *Generator
	logger    *slog.Logger
}

// NewProvider creates an AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns the ai.Provider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config, rotator *keys.Rotator) (ai.Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	embedder, err := newEmbedder(config, rotator)
	if err != nil {
		return nil, err
	}

	generator, err := newGenerator(config, rotator)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:    config,
		embedder:  embedder,
		generator: generator,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the answer generation service.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// Close releases resources held by the provider.
// Currently a no-op as clients are built per call.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
