package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/domain"
	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/logger"
)

// Batch defaults.
const (
	DefaultMaxBatchSize = 100
	DefaultConcurrency  = 4
)

// Service ingests and deletes documents.
type Service struct {
	store        Store
	enc          *domdoc.Encoder
	maxBatchSize int
	concurrency  int
	onIngest     func(n int)
}

// New creates a document service.
func New(store Store, enc *domdoc.Encoder) *Service {
	if enc == nil {
		enc = domdoc.NewEncoder()
	}
	return &Service{
		store:        store,
		enc:          enc,
		maxBatchSize: DefaultMaxBatchSize,
		concurrency:  DefaultConcurrency,
		onIngest:     func(int) {},
	}
}

// WithBatching configures pipeline chunk size and the number of chunks in flight.
func (s *Service) WithBatching(maxBatchSize, concurrency int) *Service {
	if maxBatchSize > 0 {
		s.maxBatchSize = maxBatchSize
	}
	if concurrency > 0 {
		s.concurrency = concurrency
	}
	return s
}

// WithIngestObserver installs a callback receiving the number of stored documents.
func (s *Service) WithIngestObserver(fn func(n int)) *Service {
	if fn != nil {
		s.onIngest = fn
	}
	return s
}

// Ingest encodes doc and stores it under a fresh key.
func (s *Service) Ingest(ctx context.Context, doc domdoc.Document) (string, error) {
	key, enriched, err := s.enc.Encode(doc)
	if err != nil {
		return "", err
	}

	data, err := sonic.Marshal(enriched)
	if err != nil {
		return "", fmt.Errorf("encode document: %w", err)
	}

	if err := s.store.JSONSet(ctx, key, data); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	s.onIngest(1)
	logger.FromContext(ctx).Debug("Document stored", zap.String("key", key))
	return key, nil
}

// IngestBatch encodes every document up front, then writes them in pipelined
// chunks. Keys are returned in input order.
func (s *Service) IngestBatch(ctx context.Context, docs []domdoc.Document) ([]string, error) {
	keys := make([]string, len(docs))
	items := make([]db.JSONSetItem, len(docs))

	for i, doc := range docs {
		key, enriched, err := s.enc.Encode(doc)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		data, err := sonic.Marshal(enriched)
		if err != nil {
			return nil, fmt.Errorf("document %d: encode: %w", i, err)
		}
		keys[i] = key
		items[i] = db.JSONSetItem{Key: key, Data: data}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for start := 0; start < len(items); start += s.maxBatchSize {
		chunk := items[start:min(start+s.maxBatchSize, len(items))]
		g.Go(func() error {
			return s.store.JSONSetMulti(gctx, chunk)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("store documents: %w", err)
	}

	s.onIngest(len(items))
	logger.FromContext(ctx).Debug("Documents stored", zap.Int("count", len(items)))
	return keys, nil
}

// Delete removes the given keys, or every key of source when keys is empty.
func (s *Service) Delete(ctx context.Context, keys []string, source string) (int64, error) {
	targets := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			targets = append(targets, k)
		}
	}

	if len(targets) == 0 {
		source = strings.TrimSpace(source)
		if source == "" {
			return 0, domain.ErrMissingSource
		}
		found, err := s.store.Scan(ctx, escapeGlob(domdoc.KeyPrefix(source))+":*")
		if err != nil {
			return 0, fmt.Errorf("scan source %q: %w", source, err)
		}
		targets = found
	}

	var deleted int64
	for start := 0; start < len(targets); start += s.maxBatchSize {
		n, err := s.store.Del(ctx, targets[start:min(start+s.maxBatchSize, len(targets))]...)
		if err != nil {
			return deleted, fmt.Errorf("delete documents: %w", err)
		}
		deleted += n
	}

	logger.FromContext(ctx).Debug("Documents deleted", zap.Int64("count", deleted))
	return deleted, nil
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
