// Package watch keeps the active project in step with a directory.
//
// New files matching the include pattern are imported; files that change
// are re-normalised and their saved searches re-indexed. Removals are
// ignored so annotations are never lost because a source file moved.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// DefaultPattern matches every file below the watched directory.
const DefaultPattern = "**/*"

// DefaultDebounce coalesces the bursts of events editors produce on save.
const DefaultDebounce = 200 * time.Millisecond

// EventKind says what the watcher did with a file.
type EventKind int

const (
	// EventImported means a new file was added to the project.
	EventImported EventKind = iota
	// EventReloaded means an existing file's content was replaced.
	EventReloaded
	// EventFailed means the file could not be read or stored.
	EventFailed
)

// Event reports the handling of one path.
type Event struct {
	Kind EventKind
	Path string
	File string
	Err  error
}

// Config configures a Watcher.
type Config struct {
	// Dir is the watched directory.
	Dir string

	// Pattern is a doublestar pattern matched against paths relative to Dir.
	// Empty means DefaultPattern.
	Pattern string

	// Debounce is the quiet period before a path is handled. Zero means DefaultDebounce.
	Debounce time.Duration

	// ImportExisting imports matching files already present at start.
	ImportExisting bool
}

// Watcher mirrors a directory into the active project.
type Watcher struct {
	files    driving.FileService
	cfg      Config
	watcher  *fsnotify.Watcher
	events   chan Event
	wg       sync.WaitGroup
	mu       sync.Mutex
	pending  map[string]*time.Timer
	stored   map[string]string
	closed   bool
	stopOnce sync.Once
	cancel   context.CancelFunc
}

// New creates a watcher. Call Start to begin and Stop to release it.
func New(files driving.FileService, cfg Config) (*Watcher, error) {
	if files == nil {
		return nil, errors.New("watch: file service is required")
	}
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(cfg.Pattern) {
		return nil, fmt.Errorf("watch: pattern %q: %w", cfg.Pattern, domain.ErrInvalidInput)
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("watch: %s is not a directory: %w", cfg.Dir, domain.ErrInvalidInput)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}

	return &Watcher{
		files:   files,
		cfg:     cfg,
		watcher: fw,
		events:  make(chan Event, 64),
		pending: make(map[string]*time.Timer),
		stored:  make(map[string]string),
	}, nil
}

// Events delivers one Event per handled path. It is closed by Stop.
// Events are dropped when nobody reads them.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Start adds watches below Dir and begins processing in the background.
func (w *Watcher) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	var existing []string
	err := filepath.WalkDir(w.cfg.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped
		}
		if d.IsDir() {
			if path != w.cfg.Dir && isHidden(d.Name()) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				logger.Warn("failed to watch %s: %v", path, err)
			}
			return nil
		}
		if w.cfg.ImportExisting && w.matches(path) {
			existing = append(existing, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	for _, path := range existing {
		w.handle(ctx, path)
	}

	w.wg.Add(1)
	go w.loop(ctx)
	logger.Info("Watching %s for %s", w.cfg.Dir, w.cfg.Pattern)
	return nil
}

// Stop ends processing and waits for in-flight handlers.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		if w.cancel != nil {
			w.cancel()
		}
		err = w.watcher.Close()

		w.mu.Lock()
		w.closed = true
		for path, t := range w.pending {
			if t.Stop() {
				w.wg.Done()
			}
			delete(w.pending, path)
		}
		w.mu.Unlock()

		w.wg.Wait()
		close(w.events)
	})
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.route(ctx, ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error: %v", err)
		}
	}
}

func (w *Watcher) route(ctx context.Context, ev fsnotify.Event) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return
	}
	info, err := os.Stat(ev.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if ev.Has(fsnotify.Create) && !isHidden(info.Name()) {
			if err := w.watcher.Add(ev.Name); err != nil {
				logger.Warn("failed to watch %s: %v", ev.Name, err)
			}
		}
		return
	}
	if !w.matches(ev.Name) {
		logger.Debug("watch: ignoring %s", ev.Name)
		return
	}
	w.schedule(ctx, ev.Name)
}

// schedule handles path once no event arrived for it within the debounce period.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok && t.Stop() {
		w.wg.Done()
	}

	w.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(w.cfg.Debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.pending[path] == t {
			delete(w.pending, path)
		}
		w.mu.Unlock()
		if ctx.Err() == nil {
			w.handle(ctx, path)
		}
	})
	w.pending[path] = t
}

func (w *Watcher) handle(ctx context.Context, path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		w.emit(Event{Kind: EventFailed, Path: path, Err: err})
		return
	}

	w.mu.Lock()
	name, known := w.stored[path]
	w.mu.Unlock()
	if !known {
		if name, err = domain.NormalizeFileName(filepath.Base(path)); err != nil {
			w.emit(Event{Kind: EventFailed, Path: path, Err: err})
			return
		}
	}

	err = w.files.Reload(ctx, name, raw)
	if err == nil {
		w.emit(Event{Kind: EventReloaded, Path: path, File: name})
		return
	}
	if !errors.Is(err, domain.ErrNotFound) {
		w.emit(Event{Kind: EventFailed, Path: path, File: name, Err: err})
		return
	}

	stored, err := w.files.Import(ctx, filepath.Base(path), raw)
	if err != nil {
		w.emit(Event{Kind: EventFailed, Path: path, Err: err})
		return
	}
	w.mu.Lock()
	w.stored[path] = stored
	w.mu.Unlock()
	w.emit(Event{Kind: EventImported, Path: path, File: stored})
}

func (w *Watcher) emit(ev Event) {
	if ev.Err != nil {
		logger.Warn("watch: %s: %v", ev.Path, ev.Err)
	}
	select {
	case w.events <- ev:
	default:
	}
}

func (w *Watcher) matches(path string) bool {
	rel, err := filepath.Rel(w.cfg.Dir, path)
	if err != nil {
		return false
	}
	if isHidden(filepath.Base(rel)) {
		return false
	}
	ok, err := doublestar.Match(w.cfg.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

func isHidden(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
