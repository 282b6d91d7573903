package openai

import (
	"testing"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRotator(t *testing.T) *keys.Rotator {
	t.Helper()
	r, err := keys.NewRotator([]string{"test-key-1", "test-key-2"})
	require.NoError(t, err)
	return r
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.DefaultConfig(), testRotator(t))
	require.NoError(t, err)
	require.NotNil(t, provider)

	assert.NotNil(t, provider.Embedder())
	assert.NotNil(t, provider.Generator())
	assert.NoError(t, provider.Close())
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := ai.DefaultConfig()
	cfg.EmbeddingModel = ""

	provider, err := NewProvider(cfg, testRotator(t))
	assert.Error(t, err)
	assert.Nil(t, provider)
}

func TestNewProvider_NilRotator(t *testing.T) {
	provider, err := NewProvider(ai.DefaultConfig(), nil)
	assert.ErrorIs(t, err, keys.ErrNoKeys)
	assert.Nil(t, provider)
}

func TestNewEmbedder_NilRotator(t *testing.T) {
	embedder, err := NewEmbedder(ai.DefaultConfig(), nil)
	assert.ErrorIs(t, err, keys.ErrNoKeys)
	assert.Nil(t, embedder)
}

func TestNewGenerator_NilRotator(t *testing.T) {
	generator, err := NewGenerator(ai.DefaultConfig(), nil)
	assert.ErrorIs(t, err, keys.ErrNoKeys)
	assert.Nil(t, generator)
}
