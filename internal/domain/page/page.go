// Package page derives page metadata from offset/limit pagination.
package page

import (
	"fmt"

	"github.com/katoyeung/data-node/internal/domain"
)

// Paginate returns the 1-based page that offset falls on and the number of
// pages needed to cover totalHits.
func Paginate(offset, limit int, totalHits uint64) (page, totalPages int, err error) {
	if limit <= 0 {
		return 0, 0, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, limit)
	}
	if offset < 0 {
		offset = 0
	}
	l := uint64(limit)
	return offset/limit + 1, int((totalHits + l - 1) / l), nil
}
