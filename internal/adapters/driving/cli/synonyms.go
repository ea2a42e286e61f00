package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	synonymsAccept bool
	synonymsPick   []string
)

var synonymsCmd = &cobra.Command{
	Use:   "synonyms [word]",
	Short: "Suggest alternative search terms",
	Long: `Suggest words related to a term.

Suggestions come from the configured synonym provider. When it is not
configured or fails, words of the active project sharing the term's stem
or spelled similarly are offered instead.

--accept saves every suggestion as a search; --pick saves only the listed
ones. Both save in a single step.`,
	Args: cobra.ExactArgs(1),
	RunE: runSynonyms,
}

func init() {
	synonymsCmd.Flags().BoolVar(&synonymsAccept, "accept", false, "Save all suggestions as searches")
	synonymsCmd.Flags().StringSliceVar(&synonymsPick, "pick", nil, "Save only these suggestions as searches")
	rootCmd.AddCommand(synonymsCmd)
}

func runSynonyms(cmd *cobra.Command, args []string) error {
	if synonymService == nil {
		return errors.New("synonym service not configured")
	}

	words, err := synonymService.Suggest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to suggest synonyms: %w", err)
	}
	cmd.Printf("Suggestions for %q: %s\n", args[0], strings.Join(words, ", "))

	terms := synonymsPick
	if synonymsAccept && len(terms) == 0 {
		terms = words
	}
	if len(terms) == 0 {
		return nil
	}

	ids, err := synonymService.Accept(cmd.Context(), terms)
	if err != nil {
		return fmt.Errorf("failed to save searches: %w", err)
	}
	cmd.Printf("Saved %d search(es)\n", len(ids))
	return nil
}
