package query

import (
	"fmt"
	"strings"

	"github.com/katoyeung/data-node/internal/domain"
)

// Search parameter defaults.
const (
	MatchAll           = "*"
	DefaultLimit       = 20
	DefaultSortField   = "post_timestamp"
	DefaultFilterField = "post_timestamp"
)

// Order is the sort direction of FT.SEARCH SORTBY.
type Order string

const (
	// Asc sorts ascending.
	Asc Order = "ASC"
	// Desc sorts descending.
	Desc Order = "DESC"
)

// Params holds raw, partially optional search parameters. Nil pointers and
// empty strings fall back to defaults.
type Params struct {
	Index       string
	Text        string
	Offset      *int
	Limit       *int
	Language    string
	SortField   string
	SortOrder   string
	StartTime   string
	EndTime     string
	FilterField string
}

// Defaults are the fallbacks applied by New. Zero fields use the package constants.
type Defaults struct {
	Limit       int
	Language    string
	SortField   string
	FilterField string
}

// Query is a validated search request.
type Query struct {
	index       string
	text        string
	offset      int
	limit       int
	language    string
	sortField   string
	sortOrder   Order
	startTime   string
	endTime     string
	filterField string
}

// New validates p and fills defaults.
func New(p Params, d Defaults) (Query, error) {
	index := strings.TrimSpace(p.Index)
	if index == "" {
		return Query{}, domain.ErrMissingIndex
	}

	q := Query{
		index:       index,
		text:        p.Text,
		limit:       firstPositive(d.Limit, DefaultLimit),
		language:    firstNonEmpty(p.Language, d.Language),
		sortField:   firstNonEmpty(p.SortField, d.SortField, DefaultSortField),
		sortOrder:   Desc,
		startTime:   strings.TrimSpace(p.StartTime),
		endTime:     strings.TrimSpace(p.EndTime),
		filterField: firstNonEmpty(p.FilterField, d.FilterField, DefaultFilterField),
	}
	if q.text == "" {
		q.text = MatchAll
	}

	if p.Offset != nil {
		if *p.Offset < 0 {
			return Query{}, fmt.Errorf("%w: offset must not be negative, got %d", domain.ErrInvalidQuery, *p.Offset)
		}
		q.offset = *p.Offset
	}
	if p.Limit != nil {
		if *p.Limit <= 0 {
			return Query{}, fmt.Errorf("%w: got %d", domain.ErrInvalidLimit, *p.Limit)
		}
		q.limit = *p.Limit
	}

	if p.SortOrder != "" {
		switch o := Order(strings.ToUpper(p.SortOrder)); o {
		case Asc, Desc:
			q.sortOrder = o
		default:
			return Query{}, fmt.Errorf("%w: sort_order must be ASC or DESC, got %q", domain.ErrInvalidQuery, p.SortOrder)
		}
	}

	return q, nil
}

// Index returns the target index name.
func (q *Query) Index() string { return q.index }

// Text returns the free-text clause as supplied (MatchAll when absent).
func (q *Query) Text() string { return q.text }

// Offset returns the number of hits to skip.
func (q *Query) Offset() int { return q.offset }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// Language returns the stemming language, empty when unset.
func (q *Query) Language() string { return q.language }

// SortField returns the SORTBY field.
func (q *Query) SortField() string { return q.sortField }

// SortOrder returns the SORTBY direction.
func (q *Query) SortOrder() Order { return q.sortOrder }

// StartTime returns the lower local time bound, empty when unset.
func (q *Query) StartTime() string { return q.startTime }

// EndTime returns the upper local time bound, empty when unset.
func (q *Query) EndTime() string { return q.endTime }

// FilterField returns the numeric field the time range applies to.
func (q *Query) FilterField() string { return q.filterField }

// HasTimeRange reports whether both time bounds are present.
func (q *Query) HasTimeRange() bool { return q.startTime != "" && q.endTime != "" }

// HasPartialTimeRange reports whether exactly one time bound is present.
func (q *Query) HasPartialTimeRange() bool {
	return (q.startTime == "") != (q.endTime == "")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
