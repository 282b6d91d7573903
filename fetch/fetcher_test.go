package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("document body"))
	}))
	defer srv.Close()

	f := NewFetcher()
	data, err := f.Fetch(context.Background(), srv.URL+"/doc.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("document body"), data)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher()
	data, err := f.Fetch(context.Background(), srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Nil(t, data)

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, srv.URL+"/missing.pdf", dlErr.URL)
	assert.Contains(t, dlErr.Status, "404")
}

func TestFetch_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	f := NewFetcher(WithTimeout(2 * time.Second))
	_, err := f.Fetch(context.Background(), url)
	require.Error(t, err)

	var dlErr *DownloadError
	require.True(t, errors.As(err, &dlErr))
	assert.Equal(t, url, dlErr.URL)
	assert.NotNil(t, dlErr.Err)
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher()
	_, err := f.Fetch(ctx, srv.URL)
	require.Error(t, err)

	var dlErr *DownloadError
	assert.True(t, errors.As(err, &dlErr))
}
