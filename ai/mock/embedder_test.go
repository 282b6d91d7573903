package mock

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedder_Deterministic(t *testing.T) {
	embedder := NewEmbedder()
	ctx := context.Background()

	a, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)
	b, err := embedder.EmbedText(ctx, "same text")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := embedder.EmbedText(ctx, "different text")
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestEmbedder_ConcurrentUse(t *testing.T) {
	embedder := NewEmbedder()
	ctx := context.Background()

	const workers = 8
	const callsPerWorker = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerWorker; j++ {
				_, err := embedder.EmbedText(ctx, "concurrent")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*callsPerWorker, embedder.CallCount())
}
