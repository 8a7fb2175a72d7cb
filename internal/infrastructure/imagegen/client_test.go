package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shop-assistant-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "default-model", req.Model)
		assert.Equal(t, "a teapot", req.Prompt)
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"aGVsbG8="}]}`))
	}))
	defer srv.Close()

	c := NewClient(config.ImageGen{URL: srv.URL, APIKey: "k", DefaultModel: "default-model", Timeout: time.Second})
	img, err := c.Generate(context.Background(), "a teapot", "")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), img)
}

func TestGenerate_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	_, err := NewClient(config.ImageGen{URL: srv.URL}).Generate(context.Background(), "p", "m")
	assert.ErrorContains(t, err, "429")
}

func TestGenerate_NoImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	_, err := NewClient(config.ImageGen{URL: srv.URL}).Generate(context.Background(), "p", "m")
	assert.ErrorContains(t, err, "no image")
}

func TestGenerate_NotConfigured(t *testing.T) {
	_, err := NewClient(config.ImageGen{}).Generate(context.Background(), "p", "")
	assert.Error(t, err)
}
