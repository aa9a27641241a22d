package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsplashClient_FetchCandidateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/random", r.URL.Path)
		assert.Equal(t, "Client-ID test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "v1", r.Header.Get("Accept-Version"))
		assert.Equal(t, "nature", r.URL.Query().Get("query"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"width": 1080,
			"height": 720,
			"urls": {"regular": "https://images.unsplash.com/photo-1?w=1080"}
		}`))
	}))
	defer srv.Close()

	client := NewUnsplashClient(srv.URL, "test-key", time.Second)

	img, err := client.FetchCandidateImage(context.Background(), "nature")
	require.NoError(t, err)
	assert.Equal(t, "https://images.unsplash.com/photo-1?w=1080", img.URL)
	assert.Equal(t, 1080, img.Width)
	assert.Equal(t, 720, img.Height)
}

func TestUnsplashClient_NoHint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("query"))
		_, _ = w.Write([]byte(`{"width": 100, "height": 100, "urls": {"regular": "https://img.example.com/p"}}`))
	}))
	defer srv.Close()

	client := NewUnsplashClient(srv.URL, "test-key", time.Second)

	_, err := client.FetchCandidateImage(context.Background(), "")
	require.NoError(t, err)
}

func TestUnsplashClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		errMsg  string
	}{
		{
			name: "provider returns 403",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			},
			errMsg: "status 403",
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
			errMsg: "failed to decode",
		},
		{
			name: "missing url",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"width": 100, "height": 100, "urls": {}}`))
			},
			errMsg: "incomplete image data",
		},
		{
			name: "zero bounds",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"width": 0, "height": 100, "urls": {"regular": "https://img.example.com/p"}}`))
			},
			errMsg: "incomplete image data",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			client := NewUnsplashClient(srv.URL, "test-key", time.Second)

			_, err := client.FetchCandidateImage(context.Background(), "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestUnsplashClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	client := NewUnsplashClient(srv.URL, "test-key", 10*time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.FetchCandidateImage(ctx, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewUnsplashClient_DefaultBaseURL(t *testing.T) {
	client := NewUnsplashClient("", "key", time.Second)
	assert.Equal(t, DefaultBaseURL, client.baseURL)
}
