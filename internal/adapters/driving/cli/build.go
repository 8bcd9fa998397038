package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	buildRefetch bool
	buildForce   bool
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the passage index",
	Long: `Fetches the configured sources, extracts and chunks their text,
embeds every passage and persists the index snapshot. When a valid
snapshot already exists it is loaded instead; use --force to rebuild.`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVar(&buildRefetch, "refetch", false, "clear the document cache before building")
	buildCmd.Flags().BoolVar(&buildForce, "force", false, "discard any existing snapshot and rebuild")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	a, err := wire()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if buildRefetch {
		if err := a.fetcher.ClearCache(); err != nil {
			return fmt.Errorf("clearing document cache: %w", err)
		}
		cmd.Println("Document cache cleared.")
	}

	if buildForce {
		if err := a.snapshots.Remove(ctx); err != nil {
			return fmt.Errorf("removing snapshot: %w", err)
		}
		s, err := a.indexer.Rebuild(ctx)
		if err != nil {
			return fmt.Errorf("build failed: %w", err)
		}
		cmd.Printf("Index rebuilt: %d passages.\n", len(s.Passages))
		return nil
	}

	s, err := a.indexer.BuildOrLoad(ctx)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}
	cmd.Printf("Index ready: %d passages.\n", len(s.Passages))
	return nil
}
