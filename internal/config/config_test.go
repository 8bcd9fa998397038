package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexidx/lexidx/internal/core/domain"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Chunking.Size)
	assert.Equal(t, 100, cfg.Chunking.Lookahead)
	assert.Equal(t, 50, cfg.Chunking.MinLength)
	assert.Equal(t, "ollama", cfg.Embedder.Type)
	assert.Len(t, cfg.Sources, 3)
}

func TestLoad_PartialFileMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
data_dir = "/tmp/lexidx-test"

[chunking]
size = 400
lookahead = 50
min_length = 20

[[sources]]
title = "Local Notes"
url = "https://example.org/notes.txt"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/lexidx-test", cfg.DataDir)
	assert.Equal(t, 400, cfg.Chunking.Size)
	// Untouched sections keep their defaults.
	assert.Equal(t, "ollama", cfg.Embedder.Type)
	// A declared sources list replaces the default one.
	require.Len(t, cfg.Sources, 1)
	assert.Equal(t, "Local Notes", cfg.Sources[0].Title)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"zero chunk size", "[chunking]\nsize = 0\n"},
		{"negative lookahead", "[chunking]\nsize = 800\nlookahead = -1\n"},
		{"source without url", "[[sources]]\ntitle = \"broken\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := Load(path)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := Default()
	cfg.DataDir = "/var/lib/lexidx"
	cfg.Embedder.Type = "openai"
	cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDomainSources_DerivesKindFromURL(t *testing.T) {
	cfg := &Config{Sources: []SourceConfig{
		{Title: "act", URL: "https://example.gov/act.pdf"},
		{Title: "page", URL: "https://example.gov/page.aspx"},
		{Title: "notes", URL: "https://example.gov/notes.txt"},
		{Title: "forced", URL: "https://example.gov/whatever", Kind: "pdf"},
	}}

	sources := cfg.DomainSources()
	require.Len(t, sources, 4)
	assert.Equal(t, domain.KindPDF, sources[0].Kind)
	assert.Equal(t, domain.KindHTML, sources[1].Kind)
	assert.Equal(t, domain.KindPlaintext, sources[2].Kind)
	assert.Equal(t, domain.KindPDF, sources[3].Kind)
}
