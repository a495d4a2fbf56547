package index

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/domain"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/logger"
)

// Outcome is the result of a successful Define.
type Outcome struct {
	Status  string
	Message string
}

// Service manages index definitions.
type Service struct {
	store Store
}

// New creates an index service.
func New(store Store) *Service {
	return &Service{store: store}
}

// Define drops any existing index with the same name and creates it from s.
// A failed drop is logged and ignored.
func (svc *Service) Define(ctx context.Context, s *schema.Schema) (Outcome, error) {
	def, err := db.BuildIndex(s)
	if err != nil {
		return Outcome{}, err
	}
	drop, create := def.Commands()
	log := logger.FromContext(ctx)
	log.Debug("Defining index", zap.Stringer("definition", def))

	if _, err := svc.store.Do(ctx, drop); err != nil {
		log.Debug("Drop before create failed", zap.String("index", s.Name), zap.Error(err))
	}

	v, err := svc.store.Do(ctx, create)
	if err != nil {
		return Outcome{}, fmt.Errorf("create index %q: %w", s.Name, err)
	}
	if status, _ := v.Str(); status != "OK" {
		return Outcome{}, domain.NewIndexCreationFailed(s.Name, v.String())
	}

	log.Info("Index created", zap.String("index", s.Name), zap.Int("fields", len(s.Fields)))
	return Outcome{
		Status:  "success",
		Message: fmt.Sprintf("Index '%s' created successfully.", s.Name),
	}, nil
}

// Info returns the normalized FT.INFO reply of name.
func (svc *Service) Info(ctx context.Context, name string) ([]any, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrMissingIndex
	}
	info, err := svc.store.IndexInfo(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("index info %q: %w", name, err)
	}
	return info, nil
}
