package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/quala-cli/internal/adapters/driving/tui/views/viewer"
	"github.com/custodia-labs/quala-cli/internal/core/domain"
)

// maxListWidth caps the file pane.
const maxListWidth = 28

// highlightOption is one step of the highlight cycle.
type highlightOption struct {
	label  string
	filter domain.Filter
}

// visibleFilters is the order of the filter cycle.
var visibleFilters = []domain.Filter{
	{Kind: domain.FilterAll},
	{Kind: domain.FilterTags},
	{Kind: domain.FilterSearches},
}

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	files  *list.FileList
	viewer *viewer.View
	input  *input.TermInput
	status *status.Bar

	mode         messages.Mode
	filterIdx    int
	highlights   []highlightOption
	highlightIdx int
	previewTerm  string

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	return &App{
		ports:      ports,
		ctx:        context.Background(),
		styles:     s,
		keymap:     km,
		files:      list.NewFileList(s),
		viewer:     viewer.NewView(s, nil),
		input:      input.NewTermInput(s),
		status:     status.NewBar(s, km),
		mode:       messages.ModeBrowse,
		highlights: []highlightOption{{label: "all", filter: domain.Filter{Kind: domain.FilterAll}}},
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("quala"),
		a.loadFiles(),
		a.loadMarks(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.layout(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		return a, a.handleKey(msg)

	case messages.FilesLoaded:
		if msg.Err != nil {
			a.status.SetError(msg.Err)
			return a, nil
		}
		a.files.SetFiles(msg.Files, msg.Selected)
		return a, a.render()

	case messages.FileSelected:
		if msg.Err != nil {
			a.status.SetError(msg.Err)
			return a, nil
		}
		a.files.Select(msg.Name)
		if a.previewTerm != "" {
			return a, a.preview(a.previewTerm)
		}
		return a, a.render()

	case messages.RenderLoaded:
		if msg.Err != nil {
			a.viewer.SetError(msg.Err)
			return a, nil
		}
		a.viewer.SetRendering(msg.Rendering)
		return a, nil

	case messages.MarksLoaded:
		if msg.Err != nil {
			a.status.SetError(msg.Err)
			return a, nil
		}
		a.setMarks(msg)
		return a, nil

	case messages.PreviewCompleted:
		return a, a.previewCompleted(msg)

	case messages.SearchSaved:
		if msg.Err != nil {
			a.status.SetError(msg.Err)
			return a, nil
		}
		a.previewTerm = ""
		a.setMode(messages.ModeBrowse)
		if msg.Created {
			a.status.SetMessage(fmt.Sprintf("Saved search %q", msg.Term))
		} else {
			a.status.SetMessage(fmt.Sprintf("Search %q already saved", msg.Term))
		}
		return a, tea.Batch(a.loadFiles(), a.loadMarks())

	case messages.ErrorOccurred:
		a.status.SetError(msg.Err)
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	if a.mode == messages.ModeInput {
		a.input, cmd = a.input.Update(msg)
	} else {
		a.viewer, cmd = a.viewer.Update(msg)
	}
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch a.mode {
	case messages.ModeInput:
		return a.handleInputKey(msg)

	case messages.ModeHelp:
		switch {
		case key.Matches(msg, a.keymap.Quit):
			return tea.Quit
		case key.Matches(msg, a.keymap.Help, a.keymap.Cancel):
			a.setMode(a.restingMode())
		}
		return nil

	case messages.ModeBrowse, messages.ModePreview:
	}

	a.status.Clear()
	switch {
	case key.Matches(msg, a.keymap.Quit):
		return tea.Quit
	case key.Matches(msg, a.keymap.Help):
		a.setMode(messages.ModeHelp)
		return nil
	case key.Matches(msg, a.keymap.Search):
		a.setMode(messages.ModeInput)
		a.input.SetValue(a.previewTerm)
		return a.input.Focus()
	case key.Matches(msg, a.keymap.NextFile):
		return a.selectFile(a.files.Next())
	case key.Matches(msg, a.keymap.PrevFile):
		return a.selectFile(a.files.Prev())
	case key.Matches(msg, a.keymap.CycleFilter):
		a.filterIdx = (a.filterIdx + 1) % len(visibleFilters)
		a.syncFilters()
		return a.render()
	case key.Matches(msg, a.keymap.CycleHighlight):
		a.highlightIdx = (a.highlightIdx + 1) % len(a.highlights)
		a.syncFilters()
		return a.render()
	case a.mode == messages.ModePreview && key.Matches(msg, a.keymap.Save):
		return a.save(a.previewTerm)
	case a.mode == messages.ModePreview && key.Matches(msg, a.keymap.Cancel):
		return a.preview("")
	}

	var cmd tea.Cmd
	a.viewer, cmd = a.viewer.Update(msg)
	return cmd
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keymap.Cancel):
		a.input.Blur()
		a.input.Reset()
		a.setMode(a.restingMode())
		return nil
	case key.Matches(msg, a.keymap.Submit):
		term := strings.TrimSpace(a.input.Value())
		a.input.Blur()
		a.input.Reset()
		a.setMode(a.restingMode())
		return a.preview(term)
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return cmd
}

func (a *App) previewCompleted(msg messages.PreviewCompleted) tea.Cmd {
	if msg.Err != nil {
		a.status.SetError(msg.Err)
		return nil
	}
	a.previewTerm = msg.Term
	if msg.Term == "" {
		a.setMode(messages.ModeBrowse)
		a.status.Clear()
	} else {
		a.setMode(messages.ModePreview)
		a.status.SetMessage(fmt.Sprintf("%q: %d match(es) in %s", msg.Term, msg.Count, a.files.Selected()))
	}
	return a.render()
}

// restingMode is the mode to return to when the input or help closes.
func (a *App) restingMode() messages.Mode {
	if a.previewTerm != "" {
		return messages.ModePreview
	}
	return messages.ModeBrowse
}

func (a *App) setMode(mode messages.Mode) {
	a.mode = mode
	a.status.SetMode(mode)
}

func (a *App) setMarks(msg messages.MarksLoaded) {
	current := a.highlights[a.highlightIdx].label
	a.highlights = a.highlights[:1]
	a.highlightIdx = 0
	for _, m := range msg.Marks {
		a.highlights = append(a.highlights, highlightOption{label: m.Name, filter: domain.MarkFilter(m.Ref())})
		if m.Name == current {
			a.highlightIdx = len(a.highlights) - 1
		}
	}
	a.syncFilters()
}

func (a *App) syncFilters() {
	a.status.SetFilters(visibleFilters[a.filterIdx].String(), a.highlights[a.highlightIdx].label)
}

func (a *App) layout(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	listWidth := min(maxListWidth, width/4)
	paneHeight := max(height-3, 1)
	// The list pane adds a border and padding of two cells per side.
	a.files.SetDimensions(listWidth, max(paneHeight-2, 1))
	a.viewer.SetDimensions(max(width-listWidth-5, 1), paneHeight)
	a.input.SetWidth(width)
	a.status.SetWidth(width)
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	if a.mode == messages.ModeHelp {
		return a.viewHelp()
	}

	title := "quala"
	if a.ports.Project != nil {
		if p := a.ports.Project.Selection().Project; p != "" {
			title += " · " + p
		}
	}

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		a.styles.Pane.Width(a.files.Width()+2).Render(a.files.View()),
		" ",
		a.viewer.View(),
	)

	footer := a.status.View()
	if a.mode == messages.ModeInput {
		footer = a.input.View() + "\n" + footer
	}
	return lipgloss.JoinVertical(lipgloss.Left, a.styles.Title.Render(title), panes, footer)
}

func (a *App) viewHelp() string {
	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Keys"))
	b.WriteString("\n\n")
	for _, group := range a.keymap.FullHelp() {
		for _, binding := range group {
			h := binding.Help()
			fmt.Fprintf(&b, "  %-12s %s\n", h.Key, h.Desc)
		}
		b.WriteString("\n")
	}
	b.WriteString(a.styles.Help.Render("[?/esc] close"))
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

func (a *App) loadFiles() tea.Cmd {
	return func() tea.Msg {
		files, err := a.ports.File.List()
		if err != nil {
			return messages.FilesLoaded{Err: err}
		}
		selected := ""
		if a.ports.Project != nil {
			selected = a.ports.Project.Selection().File
		}
		if selected == "" && len(files) > 0 {
			selected = files[0].Name
		}
		return messages.FilesLoaded{Files: files, Selected: selected}
	}
}

func (a *App) loadMarks() tea.Cmd {
	return func() tea.Msg {
		marks, err := a.ports.Annotation.Marks(domain.Filter{Kind: domain.FilterAll})
		return messages.MarksLoaded{Marks: marks, Err: err}
	}
}

func (a *App) selectFile(name string) tea.Cmd {
	if name == "" {
		return nil
	}
	return func() tea.Msg {
		return messages.FileSelected{Name: name, Err: a.ports.File.Use(a.ctx, name)}
	}
}

func (a *App) render() tea.Cmd {
	file := a.files.Selected()
	if file == "" {
		return nil
	}
	visible := visibleFilters[a.filterIdx]
	highlight := a.highlights[a.highlightIdx].filter
	return func() tea.Msg {
		r, err := a.ports.Render.Render(file, visible, highlight)
		return messages.RenderLoaded{Rendering: r, Err: err}
	}
}

func (a *App) preview(term string) tea.Cmd {
	return func() tea.Msg {
		found, err := a.ports.Annotation.Preview(a.ctx, term)
		return messages.PreviewCompleted{Term: term, Count: len(found), Err: err}
	}
}

func (a *App) save(term string) tea.Cmd {
	return func() tea.Msg {
		id, created, err := a.ports.Annotation.SaveSearch(a.ctx, term)
		return messages.SearchSaved{Term: term, ID: id, Created: created, Err: err}
	}
}

// Mode returns what the keyboard currently drives.
func (a *App) Mode() messages.Mode {
	return a.mode
}

// CurrentFile returns the file shown in the viewer.
func (a *App) CurrentFile() string {
	return a.viewer.File()
}

// PreviewTerm returns the unsaved live search, or "".
func (a *App) PreviewTerm() string {
	return a.previewTerm
}

// FilterLabel returns the visibility filter in effect.
func (a *App) FilterLabel() string {
	return visibleFilters[a.filterIdx].String()
}

// HighlightLabel returns the highlight filter in effect.
func (a *App) HighlightLabel() string {
	return a.highlights[a.highlightIdx].label
}

// Err returns the error shown in the status bar.
func (a *App) Err() error {
	return a.status.Err()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}
