package datanode

import "github.com/katoyeung/data-node/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrMissingIndex        = domain.ErrMissingIndex
	ErrMissingSource       = domain.ErrMissingSource
	ErrInvalidSchema       = domain.ErrInvalidSchema
	ErrMalformedTimestamp  = domain.ErrMalformedTimestamp
	ErrIndexCreationFailed = domain.ErrIndexCreationFailed
	ErrInvalidLimit        = domain.ErrInvalidLimit
	ErrInvalidQuery        = domain.ErrInvalidQuery
	ErrTransport           = domain.ErrTransport
)
