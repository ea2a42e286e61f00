// Package plaintext provides the fallback Normaliser: UTF-8 text passes
// through unchanged.
package plaintext

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles plain text files.
type Normaliser struct{}

// New creates a new plain text normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Extensions returns nil: this is the fallback for every extension.
func (n *Normaliser) Extensions() []string {
	return nil
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 5
}

// Normalise returns raw as text. Non UTF-8 input is rejected.
func (n *Normaliser) Normalise(_ context.Context, name string, raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", domain.ErrInvalidInput, name)
	}
	return string(raw), nil
}
