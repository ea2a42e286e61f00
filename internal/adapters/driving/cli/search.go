package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	searchPreviewLimit int
	searchFindAll      bool
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Preview, save and refresh substring searches",
	Long: `Searches are case-insensitive substring queries.

A preview shows the matches in the active file without saving anything.
A saved search becomes a Search mark and is indexed across every file of
the active project using the configured expansion.`,
}

var searchPreviewCmd = &cobra.Command{
	Use:   "preview [term]",
	Short: "Show the matches of a term without saving it",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchPreview,
}

var searchSaveCmd = &cobra.Command{
	Use:   "save [term]",
	Short: "Save a term as a Search mark",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchSave,
}

var searchRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-index every saved search from current file contents",
	Args:  cobra.NoArgs,
	RunE:  runSearchRefresh,
}

func init() {
	searchPreviewCmd.Flags().IntVarP(&searchPreviewLimit, "limit", "n", 20, "Maximum number of matches to print (0 = all)")
	searchPreviewCmd.Flags().BoolVar(&searchFindAll, "all-files", false, "Scan every file of the project instead of the active file")

	searchCmd.AddCommand(searchPreviewCmd)
	searchCmd.AddCommand(searchSaveCmd)
	searchCmd.AddCommand(searchRefreshCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearchPreview(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	if searchFindAll {
		return runSearchFind(cmd, args[0])
	}

	occs, err := annotationService.Preview(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to preview: %w", err)
	}

	cmd.Printf("%d match(es)\n", len(occs))
	for i, o := range occs {
		if searchPreviewLimit > 0 && i >= searchPreviewLimit {
			cmd.Printf("  ... %d more\n", len(occs)-i)
			break
		}
		cmd.Printf("  [%d:%d] %s\n", o.Start, o.End, snippet(o.Text))
	}
	return nil
}

func runSearchFind(cmd *cobra.Command, term string) error {
	results, err := annotationService.Find(cmd.Context(), term)
	if err != nil {
		return fmt.Errorf("failed to search: %w", err)
	}

	total := 0
	for _, fm := range results {
		total += len(fm.Spans)
		cmd.Printf("%s: %d match(es)\n", fm.File, len(fm.Spans))
	}
	cmd.Printf("Total: %d\n", total)
	return nil
}

func runSearchSave(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	id, created, err := annotationService.SaveSearch(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to save search: %w", err)
	}
	if !created {
		cmd.Printf("Search %q already saved (%s)\n", args[0], id)
		return nil
	}
	cmd.Printf("Saved search %q (%s)\n", args[0], id)
	return nil
}

func runSearchRefresh(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if err := annotationService.Refresh(cmd.Context()); err != nil {
		return fmt.Errorf("failed to refresh searches: %w", err)
	}
	cmd.Println("Searches refreshed.")
	return nil
}

// snippet shortens text to one line for listings.
func snippet(text string) string {
	const maxLen = 60
	out := make([]rune, 0, maxLen)
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			r = ' '
		}
		if len(out) == maxLen {
			return string(out) + "..."
		}
		out = append(out, r)
	}
	return string(out)
}
