package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/tabulate"
)

// ListMarksInput is the input schema for the list_marks tool.
type ListMarksInput struct {
	Filter string `json:"filter,omitempty" jsonschema:"all, tags or searches (default all)"`
}

// ListMarksOutput is the output schema for the list_marks tool.
type ListMarksOutput struct {
	Marks []MarkOutput `json:"marks"`
	Count int          `json:"count"`
}

// MarkOutput describes one mark.
type MarkOutput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Occurrences int    `json:"occurrences"`
}

// FindInput is the input schema for the find_occurrences tool.
type FindInput struct {
	Term string `json:"term" jsonschema:"the term to look for in every file of the active project"`
}

// FindOutput is the output schema for the find_occurrences tool.
type FindOutput struct {
	Files []FileMatchOutput `json:"files"`
	Total int               `json:"total"`
}

// FileMatchOutput lists the matches in one file.
type FileMatchOutput struct {
	File    string        `json:"file"`
	Matches []MatchOutput `json:"matches"`
}

// MatchOutput is one matched span. Offsets are byte offsets into the file.
type MatchOutput struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

// TabulateInput is the input schema for the tabulate tool.
type TabulateInput struct {
	Rows []string `json:"rows" jsonschema:"mark names, group names or literal terms"`
	Cols []string `json:"cols" jsonschema:"mark names, group names or literal terms"`
}

// TabulateOutput is the output schema for the tabulate tool.
type TabulateOutput struct {
	Rows      []string `json:"rows"`
	Cols      []string `json:"cols"`
	Counts    [][]int  `json:"counts"`
	Expansion string   `json:"expansion"`
	CSV       string   `json:"csv"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_marks",
		Description: "List the tags and saved searches of the active project with occurrence counts",
	}, s.handleListMarks)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_occurrences",
		Description: "Find a term in every file of the active project without saving it",
	}, s.handleFind)

	if s.ports.Tabulation != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "tabulate",
			Description: "Count co-occurrences of marks, groups or terms across the active project",
		}, s.handleTabulate)
	}
}

func (s *Server) handleListMarks(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input ListMarksInput,
) (*mcp.CallToolResult, ListMarksOutput, error) {
	marks, err := s.ports.Annotation.Marks(domain.ParseFilter(input.Filter))
	if err != nil {
		return nil, ListMarksOutput{}, err
	}

	output := ListMarksOutput{Marks: make([]MarkOutput, len(marks)), Count: len(marks)}
	for i, m := range marks {
		output.Marks[i] = MarkOutput{
			ID:          m.ID,
			Type:        m.Type.String(),
			Name:        m.Name,
			Color:       m.Color,
			Occurrences: m.Count,
		}
	}
	return nil, output, nil
}

func (s *Server) handleFind(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindInput,
) (*mcp.CallToolResult, FindOutput, error) {
	found, err := s.ports.Annotation.Find(ctx, input.Term)
	if err != nil {
		return nil, FindOutput{}, err
	}

	output := FindOutput{Files: make([]FileMatchOutput, 0, len(found))}
	for _, fm := range found {
		content := s.fileContent(fm.File)
		matches := make([]MatchOutput, len(fm.Spans))
		for i, sp := range fm.Spans {
			matches[i] = MatchOutput{Start: sp.Start, End: sp.End}
			if c := sp.Clamp(len(content)); !c.IsEmpty() {
				matches[i].Text = content[c.Start:c.End]
			}
		}
		output.Files = append(output.Files, FileMatchOutput{File: fm.File, Matches: matches})
		output.Total += len(matches)
	}
	return nil, output, nil
}

func (s *Server) handleTabulate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TabulateInput,
) (*mcp.CallToolResult, TabulateOutput, error) {
	m, err := s.ports.Tabulation.Tabulate(ctx, input.Rows, input.Cols)
	if err != nil {
		return nil, TabulateOutput{}, err
	}
	return nil, tabulateOutput(m), nil
}

func tabulateOutput(m *tabulate.Matrix) TabulateOutput {
	out := TabulateOutput{
		Rows:      m.Rows,
		Cols:      m.Cols,
		Counts:    make([][]int, len(m.Rows)),
		Expansion: m.Expansion.String(),
		CSV:       m.CSV(),
	}
	for i, r := range m.Rows {
		out.Counts[i] = make([]int, len(m.Cols))
		for j, c := range m.Cols {
			out.Counts[i][j] = m.Count(r, c)
		}
	}
	return out
}

// fileContent returns the text of a file, or "" when it is unavailable.
func (s *Server) fileContent(name string) string {
	if s.ports.File == nil {
		return ""
	}
	f, err := s.ports.File.Get(name)
	if err != nil {
		return ""
	}
	return f.Content
}
