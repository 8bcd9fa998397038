// Package cli implements the lexidx command line interface. Commands
// hold no business logic; they wire the adapters together from the
// configuration and call the driving ports.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lexidx/lexidx/internal/adapters/driven/embedding"
	"github.com/lexidx/lexidx/internal/adapters/driven/fetch"
	"github.com/lexidx/lexidx/internal/adapters/driven/snapshot"
	"github.com/lexidx/lexidx/internal/adapters/driven/vectorindex/flat"
	"github.com/lexidx/lexidx/internal/chunking"
	"github.com/lexidx/lexidx/internal/config"
	"github.com/lexidx/lexidx/internal/core/ports/driven"
	"github.com/lexidx/lexidx/internal/core/ports/driving"
	"github.com/lexidx/lexidx/internal/core/services"
	"github.com/lexidx/lexidx/internal/extractors"
	"github.com/lexidx/lexidx/internal/extractors/html"
	"github.com/lexidx/lexidx/internal/extractors/pdf"
	"github.com/lexidx/lexidx/internal/extractors/plaintext"
	"github.com/lexidx/lexidx/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	verbose     bool
	configPath  string
	dataDirFlag string
)

// Injection points for tests. When non-nil, commands use these instead
// of wiring real adapters from the configuration.
var (
	indexerService  driving.Indexer
	embedderService driven.EmbeddingService
	snapshotService driven.SnapshotStore
)

var rootCmd = &cobra.Command{
	Use:   "lexidx",
	Short: "Semantic passage search over legal documents",
	Long: `lexidx fetches a configured set of legal documents (PDF and HTML),
splits them into passages, embeds them and answers natural language
queries with the nearest passages.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.lexidx/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "data directory (default ~/.lexidx)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app bundles the wired adapters a command needs.
type app struct {
	cfg       *config.Config
	fetcher   *fetch.Fetcher
	embedder  driven.EmbeddingService
	snapshots driven.SnapshotStore
	indexer   driving.Indexer
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataDirFlag != "" {
		cfg.DataDir = dataDirFlag
	}
	return cfg, nil
}

// wire constructs the full adapter stack from the configuration.
func wire() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return nil, err
	}

	fetcher, err := fetch.New(fetch.Config{CacheDir: filepath.Join(dataDir, "cache")})
	if err != nil {
		return nil, fmt.Errorf("initialising fetch cache: %w", err)
	}

	a := &app{cfg: cfg, fetcher: fetcher}

	a.embedder = embedderService
	if a.embedder == nil {
		a.embedder, err = embedding.New(embedding.Config{
			Type:       cfg.Embedder.Type,
			BaseURL:    cfg.Embedder.BaseURL,
			APIKey:     apiKeyFromEnv(cfg),
			Model:      cfg.Embedder.Model,
			Timeout:    cfg.EmbedderTimeout(),
			Dimensions: cfg.Embedder.Dimensions,
		})
		if err != nil {
			return nil, err
		}
	}

	a.snapshots = snapshotService
	if a.snapshots == nil {
		a.snapshots, err = snapshot.NewStore(dataDir)
		if err != nil {
			return nil, fmt.Errorf("initialising snapshot store: %w", err)
		}
	}

	// No pdftotext availability check here: serving queries from an
	// existing snapshot must work without the PDF tooling. A missing
	// binary surfaces per source during a rebuild instead.
	a.indexer = indexerService
	if a.indexer == nil {
		registry := extractors.NewRegistry(pdf.New(), html.New(), plaintext.New())
		chunker := chunking.New(
			chunking.WithSize(cfg.Chunking.Size),
			chunking.WithLookahead(cfg.Chunking.Lookahead),
			chunking.WithMinLength(cfg.Chunking.MinLength),
		)
		a.indexer = services.NewIndexOrchestrator(
			cfg.DomainSources(),
			fetcher,
			registry,
			chunker,
			a.embedder,
			flat.Builder{},
			a.snapshots,
		)
	}

	return a, nil
}

func apiKeyFromEnv(cfg *config.Config) string {
	if cfg.Embedder.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(cfg.Embedder.APIKeyEnv)
}
