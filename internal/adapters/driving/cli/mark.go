package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

var markFilter string

var markCmd = &cobra.Command{
	Use:   "mark",
	Short: "Manage tags and saved searches",
	RunE:  runMarkList,
}

var markListCmd = &cobra.Command{
	Use:   "list",
	Short: "List marks with their occurrence counts",
	RunE:  runMarkList,
}

var markRemoveCmd = &cobra.Command{
	Use:   "remove [mark]",
	Short: "Delete a mark, its occurrences and its group memberships",
	Args:  cobra.ExactArgs(1),
	RunE:  runMarkRemove,
}

var markRenameCmd = &cobra.Command{
	Use:   "rename [mark] [name]",
	Short: "Rename a mark (renaming a search re-indexes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarkRename,
}

var markColorCmd = &cobra.Command{
	Use:   "color [mark] [#rrggbb]",
	Short: "Set a mark's colour",
	Args:  cobra.ExactArgs(2),
	RunE:  runMarkColor,
}

func init() {
	markCmd.PersistentFlags().StringVar(&markFilter, "filter", "all", "Which marks to list: all, tags, searches or a mark id")

	markCmd.AddCommand(markListCmd)
	markCmd.AddCommand(markRemoveCmd)
	markCmd.AddCommand(markRenameCmd)
	markCmd.AddCommand(markColorCmd)
	rootCmd.AddCommand(markCmd)
}

func runMarkList(cmd *cobra.Command, _ []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	marks, err := annotationService.Marks(domain.ParseFilter(markFilter))
	if err != nil {
		return fmt.Errorf("failed to list marks: %w", err)
	}
	if len(marks) == 0 {
		cmd.Println("No marks.")
		return nil
	}

	for _, m := range marks {
		cmd.Printf("%-36s %-6s %-8s %5d  %s\n", m.ID, m.Type, m.Color, m.Count, m.Name)
	}
	return nil
}

func runMarkRemove(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if err := annotationService.RemoveMark(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove mark: %w", err)
	}
	cmd.Printf("Removed mark %q\n", args[0])
	return nil
}

func runMarkRename(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if err := annotationService.RenameMark(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename mark: %w", err)
	}
	cmd.Printf("Renamed mark %q to %q\n", args[0], args[1])
	return nil
}

func runMarkColor(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}
	if err := annotationService.RecolorMark(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set colour: %w", err)
	}
	cmd.Printf("Mark %q is now %s\n", args[0], args[1])
	return nil
}
