package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/core/services"
)

var (
	searchTopK int
	searchJSON bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the indexed passages",
	Long: `Embeds the query and returns the nearest passages from the corpus.
Builds the index first when no snapshot exists yet.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", domain.DefaultTopK, "number of passages to return (1-10)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	topK := searchTopK
	if topK < 1 {
		topK = 1
	}
	if topK > domain.MaxTopK {
		topK = domain.MaxTopK
	}

	a, err := wire()
	if err != nil {
		return err
	}
	ctx := context.Background()

	snap, err := a.indexer.BuildOrLoad(ctx)
	if err != nil {
		return fmt.Errorf("preparing index: %w", err)
	}

	engine := services.NewQueryEngine(a.embedder, snap)
	results, err := engine.Search(ctx, query, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i, r := range results {
		cmd.Printf("  [%d] %s (distance %.4f)\n", i+1, r.Passage.SourceTitle, r.Score)
		cmd.Printf("      %s\n", r.Passage.Text)
		cmd.Println()
	}
	return nil
}
