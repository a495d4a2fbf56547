package document

import (
	"context"

	"github.com/katoyeung/data-node/internal/db"
)

// Store is the storage contract for documents.
type Store interface {
	JSONSet(ctx context.Context, key string, data []byte) error
	JSONSetMulti(ctx context.Context, items []db.JSONSetItem) error
	Del(ctx context.Context, keys ...string) (int64, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
