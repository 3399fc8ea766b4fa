package handlers

import (
	"strconv"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	maxPerPage     = 100
)

// listParams holds the generic list contract every catalog endpoint
// accepts: page, per_page and a free-text contains-match search.
type listParams struct {
	Page    int
	PerPage int
	Search  string
}

// parseListParams extracts and validates query parameters from the request.
func parseListParams(e *core.RequestEvent) listParams {
	params := listParams{
		Page:    defaultPage,
		PerPage: defaultPerPage,
	}

	q := e.Request.URL.Query()

	if p := q.Get("page"); p != "" {
		if n, err := strconv.Atoi(p); err == nil && n > 0 {
			params.Page = n
		}
	}

	if pp := q.Get("per_page"); pp != "" {
		if n, err := strconv.Atoi(pp); err == nil && n > 0 {
			params.PerPage = n
			if params.PerPage > maxPerPage {
				params.PerPage = maxPerPage
			}
		}
	}

	params.Search = strings.TrimSpace(q.Get("search"))

	return params
}

func (p listParams) offset() int {
	return (p.Page - 1) * p.PerPage
}

// paginate slices a full result set down to the requested page.
func paginate[T any](items []T, p listParams) []T {
	start := p.offset()
	if start >= len(items) {
		return nil
	}
	end := start + p.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// findAllWithSearch queries a collection sorted by sort, applying the given
// contains-match filter when search is non-empty. The filter must bind a
// single {:search} placeholder. The always-true id filter stands in for "no
// filter", which FindRecordsByFilter rejects.
func findAllWithSearch(app *pocketbase.PocketBase, collection, searchFilter, sort, search string) ([]*core.Record, error) {
	if search != "" {
		return app.FindRecordsByFilter(collection, searchFilter, sort, 0, 0, map[string]any{"search": search})
	}
	return app.FindRecordsByFilter(collection, "id != ''", sort, 0, 0)
}
