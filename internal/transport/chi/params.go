package chi

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// bindSearchQuery fills req from the query string of GET /search.
func bindSearchQuery(r *http.Request, req *searchRequest) error {
	q := r.URL.Query()

	textParams := []struct {
		name     string
		required bool
		dest     *string
	}{
		{"index", true, &req.Index},
		{"q", false, &req.Q},
		{"language", false, &req.Language},
		{"start_time", false, &req.StartTime},
		{"end_time", false, &req.EndTime},
		{"filter_date_by", false, &req.FilterDateBy},
		{"sort_by", false, &req.SortBy},
		{"sort_order", false, &req.SortOrder},
	}
	for _, p := range textParams {
		if err := runtime.BindQueryParameter("form", true, p.required, p.name, q, p.dest); err != nil {
			return fmt.Errorf("invalid format for parameter %s: %w", p.name, err)
		}
	}

	if err := runtime.BindQueryParameter("form", true, false, "offset", q, &req.Offset); err != nil {
		return fmt.Errorf("invalid format for parameter offset: %w", err)
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &req.Limit); err != nil {
		return fmt.Errorf("invalid format for parameter limit: %w", err)
	}
	return nil
}
