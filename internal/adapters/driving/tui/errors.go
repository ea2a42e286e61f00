package tui

import "errors"

// ErrMissingFileService is returned when the file service is not provided.
var ErrMissingFileService = errors.New("tui: file service is required")

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrMissingRenderService is returned when the render service is not provided.
var ErrMissingRenderService = errors.New("tui: render service is required")
