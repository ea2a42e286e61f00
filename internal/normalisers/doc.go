// Package normalisers turns imported files into the plain text that
// annotations index. Each normaliser handles a set of file extensions; the
// Registry picks the highest-priority match and falls back to plain text.
//
// Normalisers are registered with RegisterDefaults at startup.
package normalisers
