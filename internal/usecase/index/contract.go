package index

import (
	"context"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/reply"
)

// Store sends index management commands.
type Store interface {
	Do(ctx context.Context, cmd db.Command) (reply.Value, error)
	IndexInfo(ctx context.Context, index string) ([]any, error)
}
