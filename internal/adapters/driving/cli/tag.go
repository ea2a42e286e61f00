package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
)

var (
	tagFile  string
	tagStart int
	tagEnd   int
	tagMatch string
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Tag selections of a file",
}

var tagAddCmd = &cobra.Command{
	Use:   "add [label]",
	Short: "Tag a span of a file",
	Long: `Label a span of a file with a Tag.

The span is given as byte offsets with --start and --end, or as the first
case-insensitive match of --match. The tag is created when no Tag of that
name exists yet, otherwise the existing Tag is reused.`,
	Args: cobra.ExactArgs(1),
	RunE: runTagAdd,
}

var tagRemoveCmd = &cobra.Command{
	Use:   "remove [mark]",
	Short: "Remove the occurrence of a mark at a span",
	Args:  cobra.ExactArgs(1),
	RunE:  runTagRemove,
}

func init() {
	for _, c := range []*cobra.Command{tagAddCmd, tagRemoveCmd} {
		c.Flags().StringVarP(&tagFile, "file", "f", "", "File name (default: the active file)")
		c.Flags().IntVar(&tagStart, "start", -1, "Start byte offset")
		c.Flags().IntVar(&tagEnd, "end", -1, "End byte offset (exclusive)")
		c.Flags().StringVar(&tagMatch, "match", "", "Use the first match of this text as the span")
	}

	tagCmd.AddCommand(tagAddCmd)
	tagCmd.AddCommand(tagRemoveCmd)
	rootCmd.AddCommand(tagCmd)
}

func runTagAdd(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	span, err := selectedSpan()
	if err != nil {
		return err
	}
	id, err := annotationService.AddTag(cmd.Context(), tagFile, span, args[0])
	if err != nil {
		return fmt.Errorf("failed to tag: %w", err)
	}
	if id == "" {
		cmd.Println("Nothing tagged: the label or selection is empty.")
		return nil
	}
	cmd.Printf("Tagged [%d:%d] as %q (%s)\n", span.Start, span.End, strings.TrimSpace(args[0]), id)
	return nil
}

func runTagRemove(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	span, err := selectedSpan()
	if err != nil {
		return err
	}
	n, err := annotationService.RemoveOccurrence(cmd.Context(), tagFile, args[0], span)
	if err != nil {
		return fmt.Errorf("failed to remove occurrence: %w", err)
	}
	cmd.Printf("Removed %d occurrence(s)\n", n)
	return nil
}

// selectedSpan resolves the span flags against the target file.
func selectedSpan() (domain.Span, error) {
	if tagMatch == "" {
		if tagStart < 0 || tagEnd < 0 {
			return domain.Span{}, fmt.Errorf("either --match or both --start and --end are required: %w", domain.ErrInvalidInput)
		}
		return domain.Span{Start: tagStart, End: tagEnd}, nil
	}

	if fileService == nil {
		return domain.Span{}, errors.New("file service not configured")
	}
	f, err := fileService.Get(tagFile)
	if err != nil {
		return domain.Span{}, fmt.Errorf("failed to get file: %w", err)
	}
	spans := indexer.Matches(tagMatch, f.Content, 1)
	if len(spans) == 0 {
		return domain.Span{}, fmt.Errorf("%q in %s: %w", tagMatch, f.Name, domain.ErrNotFound)
	}
	return spans[0], nil
}
