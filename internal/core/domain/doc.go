// Package domain defines the core entities of the Quala annotation model.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Mark: A named, coloured Tag or Search definition
//   - MarkRef: A reference to a saved mark or to the live (pending) search
//   - Occurrence: A span of one file bound to a mark
//   - TextFile: Raw content plus the occurrences recorded against it
//   - Group: A curated set of marks
//   - Project / AppState: The persisted snapshot envelope
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
