package chatbot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/ai/mock"
	"github.com/BGiheb/SuperCHATBOT-MedinaGroup/core"
)

// keywordEmbedder maps sports text near [1,0] and lab text near [0,1] so
// retrieval outcomes are predictable.
func keywordProvider() *mock.Provider {
	embed := func(text string) []float32 {
		switch {
		case strings.Contains(text, "basketball") || strings.Contains(text, "team"):
			return []float32{0.9, 0.1}
		case strings.Contains(text, "chemistry") || strings.Contains(text, "lab"):
			return []float32{0.1, 0.9}
		default:
			return []float32{0.5, 0.5}
		}
	}

	provider := mock.NewProvider()
	provider.MockEmbedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return embed(text), nil
	}
	provider.MockEmbedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		vectors := make([][]float32, len(texts))
		for i, text := range texts {
			vectors[i] = embed(text)
		}
		return vectors, nil
	}
	return provider
}

func newTestService(t *testing.T, provider *mock.Provider) *Service {
	t.Helper()

	service, err := NewService(t.TempDir(), nil, WithProvider(provider))
	require.NoError(t, err)
	t.Cleanup(func() { _ = service.Close() })

	return service
}

func TestService_IngestAndAsk(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sports.txt":
			_, _ = w.Write([]byte("The team plays basketball on Tuesdays."))
		case "/lab.txt":
			_, _ = w.Write([]byte("The lab studies organic chemistry."))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	provider := keywordProvider()
	provider.MockGenerator.Answer = "Basketball, on Tuesdays."

	service := newTestService(t, provider)
	ctx := context.Background()

	tenant, err := service.CreateTenant(ctx, "acme", "Acme", "support bot")
	require.NoError(t, err)

	_, err = service.AddDocument(ctx, tenant.Id, "sports.txt", "txt", server.URL+"/sports.txt")
	require.NoError(t, err)
	_, err = service.AddDocument(ctx, tenant.Id, "lab.txt", "txt", server.URL+"/lab.txt")
	require.NoError(t, err)

	require.NoError(t, service.Ingest(ctx, tenant.Id))

	answer, err := service.Ask(ctx, tenant.Id, "Which sport does the team play?")
	require.NoError(t, err)
	assert.Equal(t, "Basketball, on Tuesdays.", answer)

	// The sports passage ranks ahead of the lab passage in the prompt
	require.Len(t, provider.MockGenerator.Prompts, 1)
	prompt := provider.MockGenerator.Prompts[0]
	assert.Contains(t, prompt, "basketball on Tuesdays")
	assert.Less(t, strings.Index(prompt, "basketball"), strings.Index(prompt, "chemistry"))
}

func TestService_AskBeforeIngest(t *testing.T) {
	service := newTestService(t, keywordProvider())
	ctx := context.Background()

	tenant, err := service.CreateTenant(ctx, "fresh", "", "")
	require.NoError(t, err)

	_, err = service.Ask(ctx, tenant.Id, "anything")
	assert.ErrorIs(t, err, core.ErrIndexNotFound)
}

func TestService_IngestUnknownTenant(t *testing.T) {
	service := newTestService(t, keywordProvider())

	err := service.Ingest(context.Background(), 999)
	assert.ErrorIs(t, err, core.ErrTenantNotFound)
}

func TestService_IngestWithoutDocuments(t *testing.T) {
	service := newTestService(t, keywordProvider())
	ctx := context.Background()

	tenant, err := service.CreateTenant(ctx, "empty", "", "")
	require.NoError(t, err)

	err = service.Ingest(ctx, tenant.Id)
	assert.ErrorIs(t, err, core.ErrNoDocuments)
}

func TestService_AskUnknownTenant(t *testing.T) {
	service := newTestService(t, keywordProvider())

	_, err := service.Ask(context.Background(), 999, "anything")
	assert.ErrorIs(t, err, core.ErrTenantNotFound)
}

func TestService_ReingestReplacesIndex(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("The team plays basketball."))
	}))
	t.Cleanup(server.Close)

	provider := keywordProvider()
	service := newTestService(t, provider)
	ctx := context.Background()

	tenant, err := service.CreateTenant(ctx, "replay", "", "")
	require.NoError(t, err)

	_, err = service.AddDocument(ctx, tenant.Id, "a.txt", "txt", server.URL+"/a.txt")
	require.NoError(t, err)

	require.NoError(t, service.Ingest(ctx, tenant.Id))
	require.NoError(t, service.Ingest(ctx, tenant.Id))

	_, err = service.Ask(ctx, tenant.Id, "Which sport does the team play?")
	require.NoError(t, err)
}
