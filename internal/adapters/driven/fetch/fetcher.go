// Package fetch provides the HTTP fetcher with an on-disk document cache.
package fetch

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// Default configuration values.
const (
	// DefaultTimeout bounds a single document download.
	DefaultTimeout = 30 * time.Second

	// DefaultRequestsPerSecond is the sustained politeness limit
	// against the government portals the sources live on.
	DefaultRequestsPerSecond = 2.0

	// DefaultBurst is the token bucket burst size.
	DefaultBurst = 4
)

// Config holds configuration for the fetcher.
type Config struct {
	// CacheDir is where raw documents are cached (required).
	CacheDir string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSecond is the rate limit (default: 2.0).
	RequestsPerSecond float64

	// Burst is the rate limiter burst size (default: 4).
	Burst int
}

// Fetcher downloads remote documents over HTTP and caches them on disk
// keyed by a hash of the URL. A cached file is returned unchanged on
// every later call; files are never invalidated or re-fetched.
type Fetcher struct {
	client   *http.Client
	cacheDir string
	limiter  *rate.Limiter
}

// New creates a fetcher, ensuring the cache directory exists.
func New(cfg Config) (*Fetcher, error) {
	if cfg.CacheDir == "" {
		return nil, fmt.Errorf("fetch: %w: cache directory required", domain.ErrInvalidInput)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSecond == 0 {
		cfg.RequestsPerSecond = DefaultRequestsPerSecond
	}
	if cfg.Burst == 0 {
		cfg.Burst = DefaultBurst
	}
	if err := os.MkdirAll(cfg.CacheDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	return &Fetcher{
		client:   &http.Client{Timeout: cfg.Timeout},
		cacheDir: cfg.CacheDir,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
	}, nil
}

// CacheKey returns the deterministic cache filename for a URL:
// the hex SHA-1 of the URL plus the URL's original file suffix.
func CacheKey(rawURL string) string {
	sum := sha1.Sum([]byte(rawURL))
	return hex.EncodeToString(sum[:]) + domain.URLSuffix(rawURL)
}

// CachePath returns where a source's raw document lives in the cache.
func (f *Fetcher) CachePath(source domain.Source) string {
	return filepath.Join(f.cacheDir, CacheKey(source.URL))
}

// Fetch returns the raw document for a source, downloading on cache miss.
func (f *Fetcher) Fetch(ctx context.Context, source domain.Source) (*domain.RawDocument, error) {
	path := f.CachePath(source)

	if content, err := os.ReadFile(path); err == nil {
		logger.Debug("cache hit for %s (%s)", source.Title, path)
		return &domain.RawDocument{Source: source, Path: path, Content: content}, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	logger.Info("fetching %s from %s", source.Title, source.URL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", source.URL, resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", source.URL, err)
	}

	// Stage then rename so a partial download is never mistaken for a
	// complete cache file by a later run.
	tmp := path + ".partial"
	if err := os.WriteFile(tmp, content, 0o600); err != nil {
		return nil, fmt.Errorf("write cache file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, fmt.Errorf("commit cache file: %w", err)
	}

	return &domain.RawDocument{Source: source, Path: path, Content: content}, nil
}

// ClearCache removes every cached document. The next build re-fetches
// all sources.
func (f *Fetcher) ClearCache() error {
	entries, err := os.ReadDir(f.cacheDir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := os.Remove(filepath.Join(f.cacheDir, e.Name())); err != nil {
			return fmt.Errorf("removing cached file %s: %w", e.Name(), err)
		}
	}
	return nil
}
