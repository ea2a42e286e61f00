package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/indexer"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/core/segment"
	"github.com/custodia-labs/quala-cli/internal/logger"
	"github.com/custodia-labs/quala-cli/internal/snapshot"
)

// Config keys remembering the active selection.
const (
	keyWorkspaceProject = "workspace.project"
	keyWorkspaceFile    = "workspace.file"
)

var errNoProject = fmt.Errorf("no active project: %w", domain.ErrNotFound)

// Workspace owns the annotation state shared by all services.
//
// The state is copy-on-write: a committed *domain.AppState is never mutated
// again, so readers may keep the pointer they got. Every transition runs
// under one mutex, is persisted before it becomes visible, and resets the
// scan and segment caches.
type Workspace struct {
	mu       sync.Mutex
	store    driven.BlobStore
	config   driven.ConfigStore
	state    *domain.AppState
	sel      driving.Selection
	live     liveSearch
	analysis domain.AnalysisSettings

	cacheMu  sync.Mutex
	scans    map[uint64][]domain.Span
	segments map[uint64][]segment.Segment
}

type liveSearch struct {
	term string
	file string
}

// NewWorkspace creates a workspace over store. The config store is optional;
// when set, the active selection survives between invocations.
func NewWorkspace(store driven.BlobStore, config driven.ConfigStore) *Workspace {
	defaults := domain.DefaultAppSettings()
	return &Workspace{
		store:    store,
		config:   config,
		state:    domain.NewAppState(),
		analysis: defaults.Analysis,
		scans:    make(map[uint64][]domain.Span),
		segments: make(map[uint64][]segment.Segment),
	}
}

// Load reads the persisted snapshot. A missing snapshot is an empty state.
func (w *Workspace) Load(ctx context.Context) error {
	data, err := w.store.Get(ctx, snapshot.Key)
	st := domain.NewAppState()
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Debug("No snapshot under %q, starting empty", snapshot.Key)
	case err != nil:
		return fmt.Errorf("load snapshot: %w", err)
	default:
		st, err = snapshot.Decode(data)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
	}

	var sel driving.Selection
	if w.config != nil {
		sel.Project = w.config.GetString(keyWorkspaceProject)
		sel.File = w.config.GetString(keyWorkspaceFile)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.state = st
	w.sel = fixSelection(st, sel)
	w.live = liveSearch{}
	w.resetCaches()
	logger.Debug("Loaded %d projects, selection %s/%s", st.Projects.Len(), w.sel.Project, w.sel.File)
	return nil
}

// SetAnalysis updates the expansion and match cap used by scans.
func (w *Workspace) SetAnalysis(a domain.AnalysisSettings) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if a.MaxMatches <= 0 {
		a.MaxMatches = domain.DefaultMaxMatches
	}
	if !a.Expansion.IsValid() {
		a.Expansion = domain.ExpansionNone
	}
	w.analysis = a
}

// Analysis returns the current analysis settings.
func (w *Workspace) Analysis() domain.AnalysisSettings {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.analysis
}

// State returns the current state. It must not be modified.
func (w *Workspace) State() *domain.AppState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Selection returns the active project and file.
func (w *Workspace) Selection() driving.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sel
}

// Current returns the active project.
func (w *Workspace) Current() (*domain.Project, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return currentProject(w.state, w.sel)
}

// Tx is the locked view of the workspace handed to Update callbacks.
// Mutations applied through it become visible together, or not at all.
type Tx struct {
	state    *domain.AppState
	sel      driving.Selection
	live     liveSearch
	analysis domain.AnalysisSettings
	changed  bool
}

// State returns the staged state.
func (tx *Tx) State() *domain.AppState { return tx.state }

// Selection returns the staged selection.
func (tx *Tx) Selection() driving.Selection { return tx.sel }

// Project returns the staged active project.
func (tx *Tx) Project() (*domain.Project, error) { return currentProject(tx.state, tx.sel) }

// Select stages a new selection. It is corrected against the final state on commit.
func (tx *Tx) Select(project, file string) {
	tx.sel = driving.Selection{Project: project, File: file}
}

// Options returns the indexer options of the workspace.
func (tx *Tx) Options() indexer.Options {
	return indexerOptions(tx.analysis)
}

// Apply commits m to the staged state.
func (tx *Tx) Apply(m mutations.Mutation) error {
	next, err := mutations.Commit(tx.state, m)
	if err != nil {
		return err
	}
	logger.Debug("Applied %s", m.Name())
	tx.state = next
	tx.changed = true
	return nil
}

// Update runs fn against a staged copy of the workspace. When fn succeeds
// and changed the state, the new snapshot is persisted and then published.
// Any error leaves the workspace as it was.
func (w *Workspace) Update(ctx context.Context, fn func(tx *Tx) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	tx := &Tx{state: w.state, sel: w.sel, live: w.live, analysis: w.analysis}
	if err := fn(tx); err != nil {
		return err
	}
	sel := fixSelection(tx.state, tx.sel)

	if tx.changed {
		data, err := snapshot.Encode(tx.state)
		if err != nil {
			return err
		}
		if err := w.store.Put(ctx, snapshot.Key, data); err != nil {
			return fmt.Errorf("persist snapshot: %w", err)
		}
		w.state = tx.state
		w.resetCaches()
	}
	w.live = tx.live
	if sel != w.sel {
		w.sel = sel
		w.saveSelection()
	}
	return nil
}

// Commit applies a single mutation.
func (w *Workspace) Commit(ctx context.Context, m mutations.Mutation) error {
	return w.Update(ctx, func(tx *Tx) error { return tx.Apply(m) })
}

func (w *Workspace) saveSelection() {
	if w.config == nil {
		return
	}
	if err := w.config.Set(keyWorkspaceProject, w.sel.Project); err != nil {
		logger.Warn("Failed to remember project selection: %v", err)
		return
	}
	if err := w.config.Set(keyWorkspaceFile, w.sel.File); err != nil {
		logger.Warn("Failed to remember file selection: %v", err)
	}
}

// Scan runs the indexer through the content-addressed scan cache.
func (w *Workspace) Scan(term, content string, opts indexer.Options) ([]domain.Span, error) {
	d := xxhash.New()
	_, _ = d.WriteString(content)
	_, _ = d.WriteString("\x00" + term + "\x00" + opts.Expansion.String() + "\x00" + strconv.Itoa(opts.MaxMatches))
	key := d.Sum64()

	w.cacheMu.Lock()
	spans, ok := w.scans[key]
	w.cacheMu.Unlock()
	if ok {
		return spans, nil
	}

	spans, err := indexer.Index(term, content, opts)
	if err != nil {
		return nil, err
	}
	w.cacheMu.Lock()
	w.scans[key] = spans
	w.cacheMu.Unlock()
	return spans, nil
}

// Segments builds segments through the segment cache.
func (w *Workspace) Segments(content string, occs []domain.Occurrence) []segment.Segment {
	d := xxhash.New()
	_, _ = d.WriteString(content)
	for _, o := range occs {
		_, _ = d.WriteString("\x00" + o.Mark.String() + ":" + strconv.Itoa(o.Start) + ":" + strconv.Itoa(o.End))
	}
	key := d.Sum64()

	w.cacheMu.Lock()
	defer w.cacheMu.Unlock()
	if segs, ok := w.segments[key]; ok {
		return segs
	}
	segs := segment.Build(content, occs)
	w.segments[key] = segs
	return segs
}

func (w *Workspace) resetCaches() {
	w.cacheMu.Lock()
	defer w.cacheMu.Unlock()
	clear(w.scans)
	clear(w.segments)
}

func currentProject(st *domain.AppState, sel driving.Selection) (*domain.Project, error) {
	if sel.Project == "" {
		return nil, errNoProject
	}
	return st.Project(sel.Project)
}

// fixSelection points sel at existing entries, falling back to the first
// project and its first file.
func fixSelection(st *domain.AppState, sel driving.Selection) driving.Selection {
	p, err := st.Project(sel.Project)
	if err != nil {
		sel = driving.Selection{Project: st.Projects.First()}
		if p, err = st.Project(sel.Project); err != nil {
			return driving.Selection{}
		}
	}
	if !p.Files.Has(sel.File) {
		sel.File = p.Files.First()
	}
	return sel
}

func indexerOptions(a domain.AnalysisSettings) indexer.Options {
	return indexer.Options{Expansion: a.Expansion, MaxMatches: a.MaxMatches}
}
