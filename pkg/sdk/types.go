package datanode

import (
	domdoc "github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
)

// Document is a free-form JSON object. It must carry a non-empty "source".
type Document = domdoc.Document

// Schema describes an index definition.
type Schema = schema.Schema

// Field is one schema entry.
type Field = schema.Field

// SearchParams are the raw search parameters; empty values fall back to defaults.
type SearchParams = query.Params

// SearchDefaults are the fallbacks for omitted search parameters.
type SearchDefaults = query.Defaults

// SearchResult is one page of hits with pagination metadata.
type SearchResult struct {
	Documents        []Document
	Query            string
	TotalHits        uint64
	Offset           int
	Limit            int
	Page             int
	TotalPages       int
	ProcessingTimeMs int64
}

func searchResultFrom(r *result.Result) SearchResult {
	return SearchResult{
		Documents:        r.Documents(),
		Query:            r.Query(),
		TotalHits:        r.TotalHits(),
		Offset:           r.Offset(),
		Limit:            r.Limit(),
		Page:             r.Page(),
		TotalPages:       r.TotalPages(),
		ProcessingTimeMs: r.ProcessingTimeMs(),
	}
}

// IntPtr returns a pointer to v, for the optional Offset and Limit of SearchParams.
func IntPtr(v int) *int { return &v }
