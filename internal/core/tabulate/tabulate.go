// Package tabulate builds co-occurrence matrices between marks.
//
// Every row and column name is resolved to a list of spans per file. A pair
// (row span, column span) in the same file counts as a match when the spans
// overlap (no expansion) or are identical (sentence or paragraph expansion,
// where both sides were widened to the same unit).
package tabulate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
)

// TotalLabel names the totals row and column.
const TotalLabel = "Total"

// Match is one intersecting pair of spans.
type Match struct {
	File string
	Row  domain.Span
	Col  domain.Span
}

// Cell accumulates the matches of one row/column intersection.
type Cell struct {
	Count   int
	Matches []Match
}

func (c *Cell) add(m Match) {
	c.Count++
	c.Matches = append(c.Matches, m)
}

// Matrix is the result of a tabulation.
type Matrix struct {
	Rows      []string
	Cols      []string
	Expansion domain.Expansion

	cells     map[string]map[string]*Cell
	rowTotals map[string]*Cell
	colTotals map[string]*Cell
	grand     Cell
}

// Cell returns the intersection of row and col. Either may be TotalLabel.
// Unknown names yield an empty cell.
func (m *Matrix) Cell(row, col string) Cell {
	switch {
	case row == TotalLabel && col == TotalLabel:
		return m.grand
	case col == TotalLabel:
		return m.RowTotal(row)
	case row == TotalLabel:
		return m.ColTotal(col)
	}
	if c, ok := m.cells[row][col]; ok {
		return *c
	}
	return Cell{}
}

// Count is a shorthand for Cell(row, col).Count.
func (m *Matrix) Count(row, col string) int {
	return m.Cell(row, col).Count
}

// RowTotal sums a row across all columns.
func (m *Matrix) RowTotal(row string) Cell {
	if c, ok := m.rowTotals[row]; ok {
		return *c
	}
	return Cell{}
}

// ColTotal sums a column across all rows.
func (m *Matrix) ColTotal(col string) Cell {
	if c, ok := m.colTotals[col]; ok {
		return *c
	}
	return Cell{}
}

// Grand is the sum over every cell.
func (m *Matrix) Grand() Cell {
	return m.grand
}

// CSV renders the counts as comma separated lines: a header, one line per
// row and a trailing totals line. Fields are not quoted.
func (m *Matrix) CSV() string {
	var b strings.Builder
	header := append([]string{"Intersection"}, m.Cols...)
	header = append(header, TotalLabel)
	b.WriteString(strings.Join(header, ","))
	b.WriteByte('\n')
	for _, row := range append(append([]string(nil), m.Rows...), TotalLabel) {
		fields := make([]string, 0, len(m.Cols)+2)
		fields = append(fields, row)
		for _, col := range m.Cols {
			fields = append(fields, strconv.Itoa(m.Count(row, col)))
		}
		fields = append(fields, strconv.Itoa(m.Count(row, TotalLabel)))
		b.WriteString(strings.Join(fields, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// ScanFunc finds the spans of term in content.
type ScanFunc func(term, content string, opts indexer.Options) ([]domain.Span, error)

// Options tune the scans behind a tabulation.
type Options struct {
	Expansion  domain.Expansion
	MaxMatches int

	// Scan replaces indexer.Index, typically with a cached variant.
	Scan ScanFunc
}

func (o Options) indexer() indexer.Options {
	return indexer.Options{Expansion: o.Expansion, MaxMatches: o.MaxMatches}
}

func (o Options) scan(term, content string) ([]domain.Span, error) {
	if o.Scan != nil {
		return o.Scan(term, content, o.indexer())
	}
	return indexer.Index(term, content, o.indexer())
}

// Run tabulates rows against cols over every file of p.
func Run(p *domain.Project, rows, cols []string, opts Options) (*Matrix, error) {
	rows, cols = uniqueNames(rows), uniqueNames(cols)
	if len(rows) == 0 || len(cols) == 0 {
		return nil, domain.ErrNothingToTabulate
	}
	if opts.Expansion == "" {
		opts.Expansion = domain.ExpansionNone
	}
	if !opts.Expansion.IsValid() {
		return nil, fmt.Errorf("expansion %q: %w", opts.Expansion, domain.ErrInvalidInput)
	}

	r := resolver{project: p, opts: opts, memo: make(map[string]spansByFile)}
	m := &Matrix{
		Rows:      rows,
		Cols:      cols,
		Expansion: opts.Expansion,
		cells:     make(map[string]map[string]*Cell, len(rows)),
		rowTotals: make(map[string]*Cell, len(rows)),
		colTotals: make(map[string]*Cell, len(cols)),
	}
	for _, col := range cols {
		m.colTotals[col] = &Cell{}
	}

	match := overlaps
	if opts.Expansion != domain.ExpansionNone {
		match = identical
	}

	for _, row := range rows {
		rowSpans, err := r.resolve(row)
		if err != nil {
			return nil, err
		}
		m.cells[row] = make(map[string]*Cell, len(cols))
		m.rowTotals[row] = &Cell{}
		for _, col := range cols {
			colSpans, err := r.resolve(col)
			if err != nil {
				return nil, err
			}
			cell := &Cell{}
			m.cells[row][col] = cell
			for _, file := range p.Files.Keys() {
				for _, a := range rowSpans[file] {
					for _, b := range colSpans[file] {
						if !match(a, b) {
							continue
						}
						hit := Match{File: file, Row: a, Col: b}
						cell.add(hit)
						m.rowTotals[row].add(hit)
						m.colTotals[col].add(hit)
						m.grand.add(hit)
					}
				}
			}
		}
	}
	return m, nil
}

func overlaps(a, b domain.Span) bool {
	return max(a.Start, b.Start) < min(a.End, b.End)
}

func identical(a, b domain.Span) bool {
	return a == b
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
