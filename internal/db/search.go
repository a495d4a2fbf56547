package db

import (
	"strconv"

	"github.com/katoyeung/data-node/internal/domain"
	"github.com/katoyeung/data-node/internal/domain/search/query"
	"github.com/katoyeung/data-node/internal/domain/timerange"
)

// SortedPayloadIndex is the JSON payload position inside each hit's field
// array when SORTBY is present: [<sort key>, <sort value>, "$", <json>].
const SortedPayloadIndex = 3

// SearchCommand is an FT.SEARCH invocation plus the decoding offset its
// reply layout requires.
type SearchCommand struct {
	Command
	PayloadIndex int
}

// BuildSearch assembles the FT.SEARCH arguments for q:
//
//	<index> <query> LIMIT <offset> <limit> [LANGUAGE <lang>] SORTBY <field> <order> [FILTER <field> <start> <end>]
//
// The range filter is emitted only when both bounds are set; bounds are
// resolved at utcOffsetHours.
func BuildSearch(q *query.Query, utcOffsetHours int) (SearchCommand, error) {
	if q == nil || q.Index() == "" {
		return SearchCommand{}, domain.ErrMissingIndex
	}

	text := q.Text()
	if text == "" {
		text = query.MatchAll
	}

	args := make([]string, 0, 14)
	args = append(args, q.Index(), text,
		"LIMIT", strconv.Itoa(q.Offset()), strconv.Itoa(q.Limit()))

	if lang := q.Language(); lang != "" {
		args = append(args, "LANGUAGE", lang)
	}

	args = append(args, "SORTBY", q.SortField(), string(q.SortOrder()))

	from, to, ok, err := timerange.Bounds(q.StartTime(), q.EndTime(), utcOffsetHours)
	if err != nil {
		return SearchCommand{}, err
	}
	if ok {
		args = append(args, "FILTER", q.FilterField(),
			strconv.FormatInt(from.Unix(), 10), strconv.FormatInt(to.Unix(), 10))
	}

	return SearchCommand{
		Command:      NewCommand(OpSearch, args...),
		PayloadIndex: SortedPayloadIndex,
	}, nil
}
