package badger

import (
	"context"
	"testing"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupIndexStore(t *testing.T) storage.IndexStore {
	t.Helper()
	store, backend, err := NewMemoryIndexStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
		backend.Close()
	})
	return store
}

func TestIndexRepository_SaveAndLoad(t *testing.T) {
	store := setupIndexStore(t)
	ctx := context.Background()

	passages := []core.Passage{
		{Text: "alpha basketball", Vector: []float32{0.9, 0.1}},
		{Text: "beta chemistry", Vector: []float32{0.1, 0.9}},
	}

	handle, err := store.SaveIndex(ctx, 42, passages)
	require.NoError(t, err)
	assert.Equal(t, "chatbot_42", handle)

	loaded, err := store.LoadIndex(ctx, 42)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "alpha basketball", loaded[0].Text)
	assert.Equal(t, []float32{0.9, 0.1}, loaded[0].Vector)
	assert.Equal(t, "beta chemistry", loaded[1].Text)
}

func TestIndexRepository_LoadMissing(t *testing.T) {
	store := setupIndexStore(t)

	_, err := store.LoadIndex(context.Background(), 7)
	assert.ErrorIs(t, err, core.ErrIndexNotFound)
}

func TestIndexRepository_SaveReplacesNotMerges(t *testing.T) {
	store := setupIndexStore(t)
	ctx := context.Background()

	_, err := store.SaveIndex(ctx, 1, []core.Passage{
		{Text: "first generation", Vector: []float32{1, 0}},
	})
	require.NoError(t, err)

	_, err = store.SaveIndex(ctx, 1, []core.Passage{
		{Text: "second generation", Vector: []float32{0, 1}},
	})
	require.NoError(t, err)

	loaded, err := store.LoadIndex(ctx, 1)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "second generation", loaded[0].Text)
}

func TestIndexRepository_TenantsAreIsolated(t *testing.T) {
	store := setupIndexStore(t)
	ctx := context.Background()

	_, err := store.SaveIndex(ctx, 1, []core.Passage{{Text: "tenant one", Vector: []float32{1}}})
	require.NoError(t, err)
	_, err = store.SaveIndex(ctx, 2, []core.Passage{{Text: "tenant two", Vector: []float32{1}}})
	require.NoError(t, err)

	one, err := store.LoadIndex(ctx, 1)
	require.NoError(t, err)
	two, err := store.LoadIndex(ctx, 2)
	require.NoError(t, err)

	assert.Equal(t, "tenant one", one[0].Text)
	assert.Equal(t, "tenant two", two[0].Text)
}

func TestIndexRepository_Delete(t *testing.T) {
	store := setupIndexStore(t)
	ctx := context.Background()

	_, err := store.SaveIndex(ctx, 5, []core.Passage{{Text: "x", Vector: []float32{1}}})
	require.NoError(t, err)

	require.NoError(t, store.DeleteIndex(ctx, 5))

	_, err = store.LoadIndex(ctx, 5)
	assert.ErrorIs(t, err, core.ErrIndexNotFound)

	err = store.DeleteIndex(ctx, 5)
	assert.ErrorIs(t, err, core.ErrIndexNotFound)
}

func TestIndexRepository_SaveEmptyIndex(t *testing.T) {
	store := setupIndexStore(t)
	ctx := context.Background()

	_, err := store.SaveIndex(ctx, 9, []core.Passage{})
	require.NoError(t, err)

	loaded, err := store.LoadIndex(ctx, 9)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
