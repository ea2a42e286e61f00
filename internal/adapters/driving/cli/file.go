package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

var (
	fileAddName     string
	fileEditFrom    string
	fileEditNoFresh bool
)

var fileCmd = &cobra.Command{
	Use:   "file",
	Short: "Manage the files of the active project",
	RunE:  runFileList,
}

var fileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List files of the active project",
	RunE:  runFileList,
}

var fileAddCmd = &cobra.Command{
	Use:   "add [path|pattern]...",
	Short: "Import files into the active project",
	Long: `Import one or more files into the active project.

Arguments may be paths or doublestar patterns such as "interviews/**/*.md".
Markdown, HTML and Word documents are converted to plain text; anything
else must be UTF-8 text. Use - to read stdin (requires --name).

Files without an extension get ".txt". The last imported file becomes active.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFileAdd,
}

var fileRemoveCmd = &cobra.Command{
	Use:   "remove [name]",
	Short: "Remove a file and its occurrences",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileRemove,
}

var fileRenameCmd = &cobra.Command{
	Use:   "rename [from] [to]",
	Short: "Rename a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runFileRename,
}

var fileShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a file's content (default: the active file)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFileShow,
}

var fileUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Make a file active",
	Args:  cobra.ExactArgs(1),
	RunE:  runFileUse,
}

var fileEditCmd = &cobra.Command{
	Use:   "edit [name]",
	Short: "Replace a file's content",
	Long: `Replace a file's content with the contents of --from (or stdin).

Saved searches are re-indexed afterwards unless --no-refresh is given.
Tag offsets are kept as they are.`,
	Args: cobra.ExactArgs(1),
	RunE: runFileEdit,
}

func init() {
	fileAddCmd.Flags().StringVar(&fileAddName, "name", "", "Stored file name (single input only)")
	fileEditCmd.Flags().StringVar(&fileEditFrom, "from", "-", "Path of the new content (- for stdin)")
	fileEditCmd.Flags().BoolVar(&fileEditNoFresh, "no-refresh", false, "Do not re-index saved searches")

	fileCmd.AddCommand(fileListCmd)
	fileCmd.AddCommand(fileAddCmd)
	fileCmd.AddCommand(fileRemoveCmd)
	fileCmd.AddCommand(fileRenameCmd)
	fileCmd.AddCommand(fileShowCmd)
	fileCmd.AddCommand(fileUseCmd)
	fileCmd.AddCommand(fileEditCmd)
	rootCmd.AddCommand(fileCmd)
}

func runFileList(cmd *cobra.Command, _ []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}

	files, err := fileService.List()
	if err != nil {
		return fmt.Errorf("failed to list files: %w", err)
	}
	if len(files) == 0 {
		cmd.Println("No files. Import one with 'quala file add <path>'.")
		return nil
	}

	active := ""
	if projectService != nil {
		active = projectService.Selection().File
	}
	for _, f := range files {
		marker := " "
		if f.Name == active {
			marker = "*"
		}
		edited := ""
		if f.Dirty {
			edited = " (edited)"
		}
		cmd.Printf("%s %-30s %8d bytes %5d occurrences%s\n", marker, f.Name, len(f.Content), len(f.Occurrences), edited)
	}
	return nil
}

func runFileAdd(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}

	paths, err := expandPaths(args)
	if err != nil {
		return err
	}
	if fileAddName != "" && len(paths) != 1 {
		return fmt.Errorf("--name needs exactly one input, got %d", len(paths))
	}

	for _, path := range paths {
		name := fileAddName
		if name == "" {
			if path == "-" {
				return errors.New("--name is required when reading stdin")
			}
			name = filepath.Base(path)
		}

		raw, err := readInput(cmd, path)
		if err != nil {
			return err
		}
		stored, err := fileService.Import(cmd.Context(), name, raw)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", path, err)
		}
		cmd.Printf("Added %s\n", stored)
	}
	return nil
}

// expandPaths resolves doublestar patterns. Plain paths and "-" pass through.
func expandPaths(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if arg == "-" || !hasMeta(arg) {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("pattern %q: %w", arg, domain.ErrNotFound)
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func hasMeta(path string) bool {
	for _, r := range path {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

// readInput reads a file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func runFileRemove(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	if err := fileService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runFileRename(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	stored, err := fileService.Rename(cmd.Context(), args[0], args[1])
	if err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}
	cmd.Printf("Renamed %s to %s\n", args[0], stored)
	return nil
}

func runFileShow(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	f, err := fileService.Get(name)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}
	cmd.Print(f.Content)
	if len(f.Content) > 0 && f.Content[len(f.Content)-1] != '\n' {
		cmd.Println()
	}
	return nil
}

func runFileUse(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	if err := fileService.Use(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to select file: %w", err)
	}
	printSelection(cmd)
	return nil
}

func runFileEdit(cmd *cobra.Command, args []string) error {
	if fileService == nil {
		return errors.New("file service not configured")
	}
	content, err := readInput(cmd, fileEditFrom)
	if err != nil {
		return err
	}
	if err := fileService.Edit(cmd.Context(), args[0], string(content), !fileEditNoFresh); err != nil {
		return fmt.Errorf("failed to edit file: %w", err)
	}
	cmd.Printf("Updated %s\n", args[0])
	return nil
}
