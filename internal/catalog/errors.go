package catalog

import "errors"

var (
	// ErrInvalidIdentifier is returned when an ISBN fails checksum validation.
	ErrInvalidIdentifier = errors.New("invalid ISBN")
	// ErrInvalidInput is returned when a field fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned by repositories when the target does not exist.
	// The service reports it as a nil result, never as an error.
	ErrNotFound = errors.New("not found")
	// ErrPersistence wraps every other repository failure.
	ErrPersistence = errors.New("persistence failure")

	// ErrDuplicateAuthor is returned when an author with the same canonical
	// name already exists.
	ErrDuplicateAuthor = errors.New("author already exists")
	// ErrUnknownAuthor is returned when a book references a missing author.
	ErrUnknownAuthor = errors.New("author does not exist")
)
