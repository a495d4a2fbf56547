package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingIndex signals a search without an index name.
	ErrMissingIndex = errors.New("the 'index' field is required")
	// ErrMissingSource signals a document without a usable source field.
	ErrMissingSource = errors.New("the 'source' field is missing or empty")
	// ErrInvalidSchema signals an incomplete index schema.
	ErrInvalidSchema = errors.New("invalid schema")
	// ErrMalformedTimestamp signals a time bound that does not match the local layout.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrIndexCreationFailed signals a non-OK reply to FT.CREATE.
	ErrIndexCreationFailed = errors.New("index creation failed")
	// ErrInvalidLimit signals a non-positive page size.
	ErrInvalidLimit = errors.New("limit must be greater than zero")
	// ErrInvalidQuery signals out-of-range search parameters.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrTransport signals a failed round trip to the remote store.
	ErrTransport = errors.New("store transport error")
)

// IndexCreationError carries the literal reply the store returned to FT.CREATE.
type IndexCreationError struct {
	Index string
	Reply string
}

func (e *IndexCreationError) Error() string {
	return fmt.Sprintf("Failed to create index '%s': %s", e.Index, e.Reply)
}

func (e *IndexCreationError) Unwrap() error { return ErrIndexCreationFailed }

// NewIndexCreationFailed creates an index creation error.
func NewIndexCreationFailed(index, reply string) error {
	return &IndexCreationError{Index: index, Reply: reply}
}
