package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the configured document sources",
	Args:  cobra.NoArgs,
	RunE:  runSources,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}

func runSources(cmd *cobra.Command, _ []string) error {
	a, err := wire()
	if err != nil {
		return err
	}

	cmd.Println("Configured sources:")
	cmd.Println()
	for _, src := range a.cfg.DomainSources() {
		status := "not cached"
		if _, err := os.Stat(a.fetcher.CachePath(src)); err == nil {
			status = "cached"
		}
		cmd.Printf("  %-30s %-10s %s\n", src.Title, src.Kind, status)
		cmd.Printf("  %-30s %s\n", "", src.URL)
		cmd.Println()
	}
	return nil
}
