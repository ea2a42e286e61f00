package postprocessors

import (
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/postprocessors/cleanup"
)

// DefaultNames is the pipeline used when import.postprocessors is unset.
var DefaultNames = []string{cleanup.NameBOM, cleanup.NameNewlines, cleanup.NameTrailingSpace}

// RegisterDefaults registers all built-in processors with the registry.
// Call this during application initialisation to enable standard processors.
func RegisterDefaults(r *Registry) {
	r.Register(cleanup.NameBOM, func(map[string]any) (driven.PostProcessor, error) {
		return cleanup.NewBOM(), nil
	})
	r.Register(cleanup.NameNewlines, buildNewlines)
	r.Register(cleanup.NameTrailingSpace, func(map[string]any) (driven.PostProcessor, error) {
		return cleanup.NewTrailingSpace(), nil
	})
}

// buildNewlines creates a newline folding processor from generic config.
// Supported config keys:
//   - max_blank_lines (int): Longest run of empty lines kept (default: unlimited)
func buildNewlines(cfg map[string]any) (driven.PostProcessor, error) {
	var opts []cleanup.Option
	if n := getIntFromConfig(cfg, "max_blank_lines"); n > 0 {
		opts = append(opts, cleanup.WithMaxBlankLines(n))
	}
	return cleanup.NewNewlines(opts...), nil
}

// getIntFromConfig safely extracts an int from generic config map.
// Handles int, int64, and float64 types that may come from TOML/JSON parsing.
func getIntFromConfig(cfg map[string]any, key string) int {
	val, ok := cfg[key]
	if !ok {
		return 0
	}

	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}
