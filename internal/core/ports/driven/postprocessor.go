package driven

import "context"

// PostProcessor cleans normalised text before it becomes a file.
// PostProcessors are chained in a pipeline (e.g. BOM removal, newline folding).
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process returns the cleaned text.
	Process(ctx context.Context, text string) (string, error)
}

// PostProcessorPipeline chains multiple PostProcessors.
type PostProcessorPipeline interface {
	// Process runs text through all processors in order.
	Process(ctx context.Context, text string) (string, error)
}
