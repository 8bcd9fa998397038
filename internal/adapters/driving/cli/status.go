package cli

import (
	"context"
	"errors"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lexidx/lexidx/internal/core/domain"
	"github.com/lexidx/lexidx/internal/extractors/pdf"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Inspect the persisted index",
	Long: `Prints the passage count, vector dimensions and per-source breakdown
of the persisted snapshot without building anything.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	a, err := wire()
	if err != nil {
		return err
	}

	if err := pdf.CheckAvailable(); err != nil {
		cmd.Printf("PDF tooling:  missing (%s)\n", pdf.InstallInstructions())
	} else {
		cmd.Println("PDF tooling:  pdftotext available")
	}

	snap, err := a.snapshots.Load(context.Background())
	switch {
	case errors.Is(err, domain.ErrSnapshotMissing):
		cmd.Println("Snapshot:     none (run 'lexidx build')")
		return nil
	case errors.Is(err, domain.ErrSnapshotInvalid):
		cmd.Printf("Snapshot:     invalid, next build rebuilds it (%v)\n", err)
		return nil
	case err != nil:
		return err
	}

	cmd.Printf("Snapshot:     %d passages, %d dimensions\n",
		len(snap.Passages), snap.Index.Dimensions())

	perSource := make(map[string]int)
	for _, p := range snap.Passages {
		perSource[p.SourceTitle]++
	}
	titles := make([]string, 0, len(perSource))
	for title := range perSource {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	cmd.Println("Sources:")
	for _, title := range titles {
		cmd.Printf("  %-30s %d passages\n", title, perSource[title])
	}
	return nil
}
