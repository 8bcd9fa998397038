package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		// Return embeddings deliberately out of order: the index field
		// is authoritative.
		data := make([]map[string]any, 0, len(req.Input))
		for i := len(req.Input) - 1; i >= 0; i-- {
			data = append(data, map[string]any{
				"index":     i,
				"embedding": []float64{float64(i)},
			})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}))
	defer srv.Close()

	s := NewEmbeddingService(Config{APIKey: "test-key", BaseURL: srv.URL, Dimensions: 1})

	vecs, err := s.EmbedBatch(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)
	for i, v := range vecs {
		assert.Equal(t, float32(i), v[0])
	}
}

func TestEmbedBatch_CountMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
	}))
	defer srv.Close()

	s := NewEmbeddingService(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := s.EmbedBatch(context.Background(), []string{"a"})
	assert.Error(t, err)
}

func TestEmbed_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"error": "invalid_api_key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := NewEmbeddingService(Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := s.Embed(context.Background(), "query")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestDimensions_KnownModels(t *testing.T) {
	assert.Equal(t, 1536, NewEmbeddingService(Config{Model: "text-embedding-3-small"}).Dimensions())
	assert.Equal(t, 3072, NewEmbeddingService(Config{Model: "text-embedding-3-large"}).Dimensions())
	// Unknown model falls back to the default model's dimensions.
	assert.Equal(t, 1536, NewEmbeddingService(Config{Model: "mystery"}).Dimensions())
	// Explicit override wins.
	assert.Equal(t, 42, NewEmbeddingService(Config{Dimensions: 42}).Dimensions())
}
