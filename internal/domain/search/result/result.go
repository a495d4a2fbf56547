package result

import "github.com/katoyeung/data-node/internal/domain/document"

// Result is one page of search hits plus pagination metadata.
type Result struct {
	documents        []document.Document
	query            string
	totalHits        uint64
	offset           int
	limit            int
	page             int
	totalPages       int
	processingTimeMs int64
}

// Page is the pagination part of a Result.
type Page struct {
	Offset     int
	Limit      int
	Page       int
	TotalPages int
}

// New creates a search result. Nil documents become an empty slice.
func New(docs []document.Document, query string, totalHits uint64, p Page, processingTimeMs int64) Result {
	if docs == nil {
		docs = []document.Document{}
	}
	return Result{
		documents:        docs,
		query:            query,
		totalHits:        totalHits,
		offset:           p.Offset,
		limit:            p.Limit,
		page:             p.Page,
		totalPages:       p.TotalPages,
		processingTimeMs: processingTimeMs,
	}
}

// Documents returns the decoded hits in reply order.
func (r *Result) Documents() []document.Document { return r.documents }

// Query returns the free-text query that produced the result.
func (r *Result) Query() string { return r.query }

// TotalHits returns the total number of matches reported by the store.
func (r *Result) TotalHits() uint64 { return r.totalHits }

// Offset returns the number of skipped hits.
func (r *Result) Offset() int { return r.offset }

// Limit returns the page size.
func (r *Result) Limit() int { return r.limit }

// Page returns the 1-based page number.
func (r *Result) Page() int { return r.page }

// TotalPages returns the number of pages covering TotalHits.
func (r *Result) TotalPages() int { return r.totalPages }

// ProcessingTimeMs returns the wall time spent building, sending and decoding.
func (r *Result) ProcessingTimeMs() int64 { return r.processingTimeMs }
