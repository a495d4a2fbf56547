package status

import "context"

// InfoReader reads the store's INFO block.
type InfoReader interface {
	Info(ctx context.Context) (map[string]string, error)
}
