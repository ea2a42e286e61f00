package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Validation Errors.

	// ErrInvalidFileName indicates a file name failed validation.
	ErrInvalidFileName = errors.New("invalid file name")

	// ErrDuplicateName indicates a mark, file or project name is already taken.
	ErrDuplicateName = errors.New("name already in use")

	// ErrEmptyTerm indicates a search was requested with an empty term.
	ErrEmptyTerm = errors.New("empty search term")

	// ErrEmptyName indicates a required name was blank.
	ErrEmptyName = errors.New("name is required")

	// Snapshot Errors.

	// ErrParse indicates an imported or fetched snapshot could not be parsed.
	// The in-memory state is left untouched when this is returned.
	ErrParse = errors.New("snapshot parse failed")

	// ErrDanglingReference indicates a transition would store an occurrence
	// or group membership pointing at a mark that does not exist.
	ErrDanglingReference = errors.New("dangling mark reference")

	// Analysis Errors.

	// ErrNothingToTabulate indicates rows or columns were empty.
	// Callers treat this as "nothing to show", not as a failure.
	ErrNothingToTabulate = errors.New("nothing to tabulate")

	// ErrSynonymsUnavailable indicates the remote synonym provider is not configured.
	ErrSynonymsUnavailable = errors.New("synonym service unavailable")
)
