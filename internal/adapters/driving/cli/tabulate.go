package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/tabulate"
)

// DefaultTabulationFile is where the CSV goes unless --output is given.
const DefaultTabulationFile = "tabulation.csv"

var (
	tabulateRows   []string
	tabulateCols   []string
	tabulateOutput string
	tabulateQuiet  bool
)

var tabulateCmd = &cobra.Command{
	Use:   "tabulate",
	Short: "Cross-tabulate marks, groups or terms",
	Long: `Count how often rows and columns co-occur across the active project.

Each row and column is a mark name or id, a group name or id, or else a
literal term scanned on the fly. With the "none" expansion two spans match
when they overlap; with "sentence" or "paragraph" they match when both
fall in the same unit.

The counts are printed and written as CSV (default tabulation.csv).
Use --output - to write the CSV to stdout instead.`,
	Args: cobra.NoArgs,
	RunE: runTabulate,
}

func init() {
	tabulateCmd.Flags().StringSliceVarP(&tabulateRows, "rows", "r", nil, "Row names (comma separated or repeated)")
	tabulateCmd.Flags().StringSliceVarP(&tabulateCols, "cols", "c", nil, "Column names (comma separated or repeated)")
	tabulateCmd.Flags().StringVarP(&tabulateOutput, "output", "o", DefaultTabulationFile, "CSV output path")
	tabulateCmd.Flags().BoolVarP(&tabulateQuiet, "quiet", "q", false, "Do not print the table")
	rootCmd.AddCommand(tabulateCmd)
}

func runTabulate(cmd *cobra.Command, _ []string) error {
	if tabulationService == nil {
		return errors.New("tabulation service not configured")
	}

	m, err := tabulationService.Tabulate(cmd.Context(), tabulateRows, tabulateCols)
	if errors.Is(err, domain.ErrNothingToTabulate) {
		cmd.Println("Nothing to tabulate: give at least one row and one column.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to tabulate: %w", err)
	}

	csv := m.CSV()
	if tabulateOutput == "-" {
		cmd.Print(csv)
		return nil
	}

	if !tabulateQuiet {
		printMatrix(cmd, m)
	}
	if err := os.WriteFile(tabulateOutput, []byte(csv), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", tabulateOutput, err)
	}
	cmd.Printf("Wrote %s (expansion: %s)\n", tabulateOutput, m.Expansion)
	return nil
}

func printMatrix(cmd *cobra.Command, m *tabulate.Matrix) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\t")
	for _, c := range m.Cols {
		fmt.Fprintf(w, "%s\t", c)
	}
	fmt.Fprintf(w, "%s\t\n", tabulate.TotalLabel)

	for _, r := range append(append([]string(nil), m.Rows...), tabulate.TotalLabel) {
		fmt.Fprintf(w, "%s\t", r)
		for _, c := range m.Cols {
			fmt.Fprintf(w, "%d\t", m.Count(r, c))
		}
		fmt.Fprintf(w, "%d\t\n", m.Count(r, tabulate.TotalLabel))
	}
	w.Flush() //nolint:errcheck // writes to the command output
}
