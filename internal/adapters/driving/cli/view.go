package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Browse the active project interactively",
	Long: `Open the interactive viewer on the active project.

Files are listed on the left and the active file is shown with its marks
highlighted. Press / to preview a live search, s to save it, f to cycle
the mark filter and h to highlight one mark at a time. Press ? for all keys.`,
	Args: cobra.NoArgs,
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return errors.New("view needs an interactive terminal; use 'quala render' instead")
	}

	ports := tui.NewPorts(fileService, annotationService, renderService)
	ports.Project = projectService

	app, err := tui.NewApp(ports)
	if err != nil {
		return err
	}
	return app.WithContext(cmd.Context()).Run()
}
