package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var projectExportOutput string

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long:  `List, create, rename, delete and select projects, and move them in and out as JSON snapshots.`,
	RunE:  runProjectList,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE:  runProjectList,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a project and make it active",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectCreate,
}

var projectRenameCmd = &cobra.Command{
	Use:   "rename [from] [to]",
	Short: "Rename a project",
	Args:  cobra.ExactArgs(2),
	RunE:  runProjectRename,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a project with all its files and marks",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

var projectUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Make a project active",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectUse,
}

var projectExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all projects as a JSON snapshot",
	Long: `Write every project to a pretty-printed JSON snapshot.

The file is named after the active project unless --output is given.
Use --output - to write to stdout.`,
	Args: cobra.NoArgs,
	RunE: runProjectExport,
}

var projectImportCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Replace all projects with a JSON snapshot",
	Long: `Replace the whole workspace with the projects of a snapshot file.

The first project of the snapshot and its first file become active.
Nothing changes when the file cannot be parsed.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectImport,
}

var projectLoadURLCmd = &cobra.Command{
	Use:   "load-url [url]",
	Short: "Replace all projects with a snapshot fetched over HTTP",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectLoadURL,
}

func init() {
	projectExportCmd.Flags().StringVarP(&projectExportOutput, "output", "o", "", "Output path (default <project>.json)")

	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectRenameCmd)
	projectCmd.AddCommand(projectDeleteCmd)
	projectCmd.AddCommand(projectUseCmd)
	projectCmd.AddCommand(projectExportCmd)
	projectCmd.AddCommand(projectImportCmd)
	projectCmd.AddCommand(projectLoadURLCmd)
	rootCmd.AddCommand(projectCmd)
}

func runProjectList(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}

	names := projectService.List()
	if len(names) == 0 {
		cmd.Println("No projects. Create one with 'quala project create <name>'.")
		return nil
	}

	active := projectService.Selection().Project
	for _, name := range names {
		marker := " "
		if name == active {
			marker = "*"
		}
		cmd.Printf("%s %s\n", marker, name)
	}
	return nil
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Create(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	cmd.Printf("Created project %q\n", projectService.Selection().Project)
	return nil
}

func runProjectRename(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Rename(cmd.Context(), args[0], args[1]); err != nil {
		return fmt.Errorf("failed to rename project: %w", err)
	}
	cmd.Printf("Renamed project %q to %q\n", args[0], args[1])
	return nil
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	cmd.Printf("Deleted project %q\n", args[0])
	return nil
}

func runProjectUse(cmd *cobra.Command, args []string) error {
	if projectService == nil {
		return errors.New("project service not configured")
	}
	if err := projectService.Use(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to select project: %w", err)
	}
	printSelection(cmd)
	return nil
}

func runProjectExport(cmd *cobra.Command, _ []string) error {
	if transferService == nil {
		return errors.New("transfer service not configured")
	}

	data, name, err := transferService.Export(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	if projectExportOutput == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if projectExportOutput != "" {
		name = projectExportOutput
	}
	if err := os.WriteFile(name, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	cmd.Printf("Exported to %s\n", name)
	return nil
}

func runProjectImport(cmd *cobra.Command, args []string) error {
	if transferService == nil {
		return errors.New("transfer service not configured")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	if err := transferService.Import(cmd.Context(), data); err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}
	cmd.Printf("Imported %s\n", args[0])
	printSelection(cmd)
	return nil
}

func runProjectLoadURL(cmd *cobra.Command, args []string) error {
	if transferService == nil {
		return errors.New("transfer service not configured")
	}
	if err := transferService.LoadURL(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}
	cmd.Printf("Loaded %s\n", args[0])
	printSelection(cmd)
	return nil
}

// printSelection reports the active project and file.
func printSelection(cmd *cobra.Command) {
	if projectService == nil {
		return
	}
	sel := projectService.Selection()
	switch {
	case sel.Project == "":
		cmd.Println("No active project.")
	case sel.File == "":
		cmd.Printf("Active: %s (no files)\n", sel.Project)
	default:
		cmd.Printf("Active: %s / %s\n", sel.Project, sel.File)
	}
}
