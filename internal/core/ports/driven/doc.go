// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - BlobStore: persistence of the annotation snapshot
//   - ConfigStore: application configuration
//   - NormaliserRegistry: turns imported files into plain text
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - SynonymProvider: remote synonym lookup. Without it, suggestions come
//     from the project vocabulary and a built-in list.
//   - SnapshotFetcher: remote snapshot loading. Without it, load-url is disabled.
//   - PostProcessorPipeline: text cleanup after normalisation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
