package db

import (
	"errors"
	"strings"

	"github.com/katoyeung/data-node/internal/domain"
)

// Sentinel errors for database operations.
var (
	ErrIndexNotFound = errors.New("db: index not found")
)

// Op constants map to store command names for error context.
const (
	OpPing      = "PING"
	OpInfo      = "INFO"
	OpCreateIdx = "FT.CREATE"
	OpDropIndex = "FT.DROPINDEX"
	OpIndexInfo = "FT.INFO"
	OpSearch    = "FT.SEARCH"
	OpJSONSet   = "JSON.SET"
	OpDel       = "DEL"
	OpScan      = "SCAN"
)

// Error wraps an underlying error with the operation name for diagnostics.
// Every Error is a transport error.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Is reports true for domain.ErrTransport.
func (e *Error) Is(target error) bool { return target == domain.ErrTransport }

// IsIndexNotFound reports whether err is ErrIndexNotFound or a raw store
// reply naming a missing index.
func IsIndexNotFound(err error) bool {
	return errors.Is(err, ErrIndexNotFound) ||
		isServerErr(err, "unknown index name") ||
		isServerErr(err, "no such index")
}

// isServerErr reports whether err carries a store error message containing substr (case-insensitive).
func isServerErr(err error, substr string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), substr)
}
