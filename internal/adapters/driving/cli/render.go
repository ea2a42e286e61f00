package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

var (
	renderVisible   string
	renderHighlight string
	renderPlain     bool
)

// isTerminal reports whether stdout is a terminal.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var renderCmd = &cobra.Command{
	Use:   "render [file]",
	Short: "Print a file with its marks highlighted",
	Long: `Print a file (default: the active file) with its occurrences highlighted.

--show chooses which marks are drawn and --highlight which of those are
drawn at full strength; the others are dimmed. Both accept all, tags,
searches or a single mark id.

When stdout is not a terminal, or with --plain, full-strength highlights
are wrapped in [brackets] instead of being coloured.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderVisible, "show", "all", "Marks to draw")
	renderCmd.Flags().StringVar(&renderHighlight, "highlight", "all", "Marks to draw at full strength")
	renderCmd.Flags().BoolVar(&renderPlain, "plain", false, "Never use colour")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderService == nil {
		return errors.New("render service not configured")
	}

	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	visible, err := resolveFilter(renderVisible)
	if err != nil {
		return err
	}
	highlight, err := resolveFilter(renderHighlight)
	if err != nil {
		return err
	}

	r, err := renderService.Render(name, visible, highlight)
	if err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}

	h := styles.NewPlainHighlighter()
	if !renderPlain && isTerminal() {
		h = styles.NewHighlighter(nil)
	}
	out := h.Render(r)
	cmd.Print(out)
	if out != "" && out[len(out)-1] != '\n' {
		cmd.Println()
	}
	return nil
}

// resolveFilter parses a filter and resolves a mark name to its id.
func resolveFilter(s string) (domain.Filter, error) {
	f := domain.ParseFilter(s)
	if f.Kind != domain.FilterMark || annotationService == nil {
		return f, nil
	}
	m, err := annotationService.ResolveMark(f.Mark.ID())
	if err != nil {
		return domain.Filter{}, fmt.Errorf("failed to resolve filter: %w", err)
	}
	return domain.MarkFilter(m.Ref()), nil
}
