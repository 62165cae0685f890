package documents

import "errors"

var (
	// ErrInvalidInput marks a request rejected by validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound marks a lookup for an unknown document id.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicateID marks an insert that collided on the primary key.
	ErrDuplicateID = errors.New("duplicate document id")
	// ErrExtraction marks a failure of the external PDF parser.
	ErrExtraction = errors.New("text extraction failed")
)
