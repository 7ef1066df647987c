package richtext

import "errors"

var (
	// ErrEmptyPath is returned when saving or loading without a file name.
	ErrEmptyPath = errors.New("empty document path")

	// ErrInvalidDocument is returned when a stored document's order and
	// contents disagree.
	ErrInvalidDocument = errors.New("invalid document")
)
