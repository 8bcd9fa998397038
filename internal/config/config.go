// Package config loads and persists the lexidx configuration as a
// TOML file, by default ~/.lexidx/config.toml. Missing files yield
// the built-in defaults; partial files are merged over them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/lexidx/lexidx/internal/core/domain"
)

// SourceConfig declares one corpus document. Kind is derived from the
// URL when empty.
type SourceConfig struct {
	Title string `toml:"title"`
	URL   string `toml:"url"`
	Kind  string `toml:"kind,omitempty"`
}

// ChunkingConfig controls the passage windowing parameters.
type ChunkingConfig struct {
	Size      int `toml:"size"`
	Lookahead int `toml:"lookahead"`
	MinLength int `toml:"min_length"`
}

// EmbedderConfig selects and configures the embedding backend.
// APIKeyEnv names an environment variable; the key itself is never
// written to disk.
type EmbedderConfig struct {
	Type        string `toml:"type"`
	BaseURL     string `toml:"base_url,omitempty"`
	APIKeyEnv   string `toml:"api_key_env,omitempty"`
	Model       string `toml:"model,omitempty"`
	TimeoutSecs int    `toml:"timeout_secs,omitempty"`
	Dimensions  int    `toml:"dimensions,omitempty"`
}

// Config is the full lexidx configuration.
type Config struct {
	DataDir  string         `toml:"data_dir,omitempty"`
	Chunking ChunkingConfig `toml:"chunking"`
	Embedder EmbedderConfig `toml:"embedder"`
	Sources  []SourceConfig `toml:"sources"`
}

// Default returns the built-in configuration: the three Indian legal
// sources the tool ships with, default chunking parameters and a
// local Ollama embedder.
func Default() *Config {
	return &Config{
		Chunking: ChunkingConfig{Size: 800, Lookahead: 100, MinLength: 50},
		Embedder: EmbedderConfig{Type: "ollama"},
		Sources: []SourceConfig{
			{
				Title: "EPF Act 1952 (PDF)",
				URL:   "https://www.epfindia.gov.in/site_docs/PDFs/Downloads_PDFs/EPFAct1952.pdf",
			},
			{
				Title: "TDS Deposit (HTML)",
				URL:   "https://incometaxindia.gov.in/Pages/Deposit_TDS_TCS.aspx",
			},
			{
				Title: "Companies Act, 2013 (PDF)",
				URL:   "https://www.indiacode.nic.in/bitstream/123456789/2114/5/A2013-18.pdf",
			},
		},
	}
}

// DefaultPath returns ~/.lexidx/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lexidx", "config.toml"), nil
}

// Load reads the config at path, merging it over the defaults. A
// missing file is not an error; the defaults are returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// go-toml appends array tables to a populated slice, so a declared
	// sources list must start from empty to replace the defaults.
	defaultSources := cfg.Sources
	cfg.Sources = nil

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = defaultSources
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config as TOML, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ResolveDataDir returns the configured data directory or the default
// ~/.lexidx.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".lexidx"), nil
}

// DomainSources converts the declared sources, deriving the kind from
// the URL wherever it is not set explicitly.
func (c *Config) DomainSources() []domain.Source {
	sources := make([]domain.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		kind := domain.Kind(s.Kind)
		if s.Kind == "" {
			kind = domain.DeriveKind(s.URL)
		}
		sources = append(sources, domain.Source{Title: s.Title, URL: s.URL, Kind: kind})
	}
	return sources
}

// EmbedderTimeout returns the configured timeout or zero, letting the
// adapter apply its own default.
func (c *Config) EmbedderTimeout() time.Duration {
	return time.Duration(c.Embedder.TimeoutSecs) * time.Second
}

func (c *Config) validate() error {
	if c.Chunking.Size < 1 {
		return fmt.Errorf("%w: chunking.size must be positive", domain.ErrInvalidInput)
	}
	if c.Chunking.Lookahead < 0 {
		return fmt.Errorf("%w: chunking.lookahead must not be negative", domain.ErrInvalidInput)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("%w: at least one source is required", domain.ErrInvalidInput)
	}
	for i, s := range c.Sources {
		if s.URL == "" {
			return fmt.Errorf("%w: sources[%d] has no url", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
