package status

import (
	"context"
	"fmt"
	"maps"

	"golang.org/x/sync/singleflight"
)

// Service reports server status. Concurrent callers share one in-flight INFO.
type Service struct {
	store InfoReader
	group singleflight.Group
}

// New creates a status service.
func New(store InfoReader) *Service {
	return &Service{store: store}
}

// Server returns the parsed INFO mapping. Each caller receives its own copy.
// The shared INFO runs detached from any single caller's cancellation; a
// caller whose ctx ends stops waiting without failing the others.
func (s *Service) Server(ctx context.Context) (map[string]string, error) {
	ch := s.group.DoChan("info", func() (any, error) {
		return s.store.Info(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("server info: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, fmt.Errorf("server info: %w", res.Err)
		}
		return maps.Clone(res.Val.(map[string]string)), nil
	}
}
