package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry dispatches on file extension.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a normaliser, keeping the list ordered by priority.
func (r *Registry) Register(n driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.normalisers = append(r.normalisers, n)
	sort.SliceStable(r.normalisers, func(i, j int) bool {
		return r.normalisers[i].Priority() > r.normalisers[j].Priority()
	})
}

// Normalise converts raw with the best normaliser for name's extension.
func (r *Registry) Normalise(ctx context.Context, name string, raw []byte) (string, error) {
	n := r.lookup(strings.ToLower(filepath.Ext(name)))
	if n == nil {
		return "", fmt.Errorf("%w: no normaliser for %s", domain.ErrInvalidInput, name)
	}
	return n.Normalise(ctx, name, raw)
}

// SupportedExtensions returns the extensions with a specific normaliser, sorted.
func (r *Registry) SupportedExtensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]bool)
	var exts []string
	for _, n := range r.normalisers {
		for _, ext := range n.Extensions() {
			if !seen[ext] {
				seen[ext] = true
				exts = append(exts, ext)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

func (r *Registry) lookup(ext string) driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, n := range r.normalisers {
		for _, e := range n.Extensions() {
			if e == ext {
				return n
			}
		}
	}
	for _, n := range r.normalisers {
		if len(n.Extensions()) == 0 {
			return n
		}
	}
	return nil
}
