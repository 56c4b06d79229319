package documents

import "errors"

var (
	// ErrMissingName is returned when the file name is missing
	ErrMissingName = errors.New("file name is required")

	// ErrEmptyFile is returned when the upload carries no bytes
	ErrEmptyFile = errors.New("file is empty")

	// ErrTooLarge is returned when the upload exceeds the size limit
	ErrTooLarge = errors.New("file exceeds the upload size limit")

	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")
)
