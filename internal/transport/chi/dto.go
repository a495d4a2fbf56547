package chi

import (
	"github.com/katoyeung/data-node/internal/domain/document"
	"github.com/katoyeung/data-node/internal/domain/schema"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/search/result"
)

type searchRequest struct {
	Index        string `json:"index"`
	Q            string `json:"q"`
	Offset       *int   `json:"offset,omitempty"`
	Limit        *int   `json:"limit,omitempty"`
	Language     string `json:"language,omitempty"`
	StartTime    string `json:"start_time,omitempty"`
	EndTime      string `json:"end_time,omitempty"`
	FilterDateBy string `json:"filter_date_by,omitempty"`
	SortBy       string `json:"sort_by,omitempty"`
	SortOrder    string `json:"sort_order,omitempty"`
}

func (r *searchRequest) params() query.Params {
	return query.Params{
		Index:       r.Index,
		Text:        r.Q,
		Offset:      r.Offset,
		Limit:       r.Limit,
		Language:    r.Language,
		SortField:   r.SortBy,
		SortOrder:   r.SortOrder,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		FilterField: r.FilterDateBy,
	}
}

type searchResponse struct {
	Data             []document.Document `json:"data"`
	Query            string              `json:"query"`
	Totals           uint64              `json:"totals"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
	Limit            int                 `json:"limit"`
	Offset           int                 `json:"offset"`
	Page             int                 `json:"page"`
	TotalPages       int                 `json:"totalPages"`
}

func searchResponseFrom(r *result.Result) searchResponse {
	return searchResponse{
		Data:             r.Documents(),
		Query:            r.Query(),
		Totals:           r.TotalHits(),
		ProcessingTimeMs: r.ProcessingTimeMs(),
		Limit:            r.Limit(),
		Offset:           r.Offset(),
		Page:             r.Page(),
		TotalPages:       r.TotalPages(),
	}
}

type schemaField struct {
	FieldName string `json:"field_name"`
	FieldType string `json:"field_type"`
	Sortable  bool   `json:"sortable"`
	As        string `json:"as,omitempty"`
}

type indexRequest struct {
	IndexName string        `json:"index_name"`
	Type      string        `json:"type"`
	Language  string        `json:"language,omitempty"`
	Prefixes  []string      `json:"prefixes"`
	Schema    []schemaField `json:"schema"`
}

func (r *indexRequest) schema() *schema.Schema {
	fields := make([]schema.Field, len(r.Schema))
	for i, f := range r.Schema {
		fields[i] = schema.Field{Name: f.FieldName, Alias: f.As, Type: f.FieldType, Sortable: f.Sortable}
	}
	return &schema.Schema{
		Name:        r.IndexName,
		StorageType: r.Type,
		Prefixes:    r.Prefixes,
		Language:    r.Language,
		Fields:      fields,
	}
}

type deleteRequest struct {
	Source string   `json:"source"`
	Keys   []string `json:"keys"`
}

type statusResponse struct {
	Status  string   `json:"status"`
	Key     string   `json:"key,omitempty"`
	Keys    []string `json:"keys,omitempty"`
	Message string   `json:"message,omitempty"`
	Deleted *int64   `json:"deleted,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
