package search

import (
	"context"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/db/reply"
)

// Store sends a single command to the search engine.
type Store interface {
	Do(ctx context.Context, cmd db.Command) (reply.Value, error)
}
