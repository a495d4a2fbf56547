package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/katoyeung/data-node/internal/db"
	"github.com/katoyeung/data-node/internal/domain/page"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
	"github.com/katoyeung/data-node/internal/domain/timerange"
	"github.com/katoyeung/data-node/internal/logger"
)

// Service runs full-text searches.
type Service struct {
	store     Store
	utcOffset int
	now       func() time.Time
}

// New creates a search service resolving time ranges at the default offset.
func New(store Store) *Service {
	return &Service{store: store, utcOffset: timerange.DefaultUTCOffsetHours, now: time.Now}
}

// WithUTCOffset sets the fixed offset, in hours, applied to start/end times.
func (s *Service) WithUTCOffset(hours int) *Service {
	s.utcOffset = hours
	return s
}

// Search builds the FT.SEARCH command for q, sends it once and decodes the reply.
func (s *Service) Search(ctx context.Context, q *query.Query) (result.Result, error) {
	start := s.now()
	log := logger.FromContext(ctx)

	if q.HasPartialTimeRange() {
		log.Debug("Ignoring incomplete time range",
			zap.String("start_time", q.StartTime()),
			zap.String("end_time", q.EndTime()),
		)
	}

	cmd, err := db.BuildSearch(q, s.utcOffset)
	if err != nil {
		return result.Result{}, err
	}

	raw, err := s.store.Do(ctx, cmd.Command)
	if err != nil {
		return result.Result{}, fmt.Errorf("search %q: %w", q.Index(), err)
	}

	docs, total := db.DecodeSearchReply(raw, cmd.PayloadIndex)
	pageNum, totalPages, err := page.Paginate(q.Offset(), q.Limit(), total)
	if err != nil {
		return result.Result{}, err
	}

	elapsed := s.now().Sub(start).Milliseconds()
	log.Debug("Search completed",
		zap.String("index", q.Index()),
		zap.Uint64("total", total),
		zap.Int("returned", len(docs)),
		zap.Int64("took_ms", elapsed),
	)

	return result.New(docs, q.Text(), total, result.Page{
		Offset:     q.Offset(),
		Limit:      q.Limit(),
		Page:       pageNum,
		TotalPages: totalPages,
	}, elapsed), nil
}
