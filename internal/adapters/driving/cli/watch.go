package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/watch"
)

var (
	watchPattern  string
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Keep the active project in step with a directory",
	Long: `Watch a directory and mirror it into the active project.

New files matching --pattern are imported. Files that change are
re-normalised and every saved search is re-indexed against the new text.
Deleted files are left in the project. Stop with Ctrl+C.

Examples:
  quala watch ./transcripts
  quala watch . --pattern "interviews/**/*.{txt,md,docx}" --existing`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchPattern, "pattern", watch.DefaultPattern, "Include pattern relative to the directory")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "Import matching files already present")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	w, err := watch.New(fileService, watch.Config{
		Dir:            dir,
		Pattern:        watchPattern,
		ImportExisting: watchExisting,
	})
	if err != nil {
		return err
	}
	if err := w.Start(cmd.Context()); err != nil {
		return err
	}
	cmd.Printf("Watching %s (%s). Press Ctrl+C to stop.\n", dir, watchPattern)

	for {
		select {
		case <-cmd.Context().Done():
			if err := w.Stop(); err != nil {
				return fmt.Errorf("failed to stop watcher: %w", err)
			}
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			printWatchEvent(cmd, ev)
		}
	}
}

func printWatchEvent(cmd *cobra.Command, ev watch.Event) {
	switch ev.Kind {
	case watch.EventImported:
		cmd.Printf("Imported %s as %s\n", ev.Path, ev.File)
	case watch.EventReloaded:
		cmd.Printf("Reloaded %s\n", ev.File)
	case watch.EventFailed:
		cmd.Printf("Failed %s: %v\n", ev.Path, ev.Err)
	}
}
