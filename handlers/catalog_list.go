package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleLabourActivityList returns a handler serving the labour activity
// catalog.
func HandleLabourActivityList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		records, err := findAllWithSearch(app, "labour_activities", "name ~ {:search}", "name", params.Search)
		if err != nil {
			log.Printf("labour_activity_list: could not query: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load labour activities")
		}

		total := len(records)
		records = paginate(records, params)

		items := make([]services.Option, 0, len(records))
		for _, r := range records {
			items = append(items, services.Option{ID: r.Id, Name: r.GetString("name")})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":    items,
			"page":     params.Page,
			"per_page": params.PerPage,
			"total":    total,
		})
	}
}

// HandleDescriptionList returns a handler serving activity descriptions.
// With labour_activity_id present only the descriptions scoped to that
// activity are returned, the filter the ledger applies when an activity is
// picked.
func HandleDescriptionList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		records, err := findAllWithSearch(app, "activity_descriptions", "name ~ {:search}", "name", params.Search)
		if err != nil {
			log.Printf("description_list: could not query: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load descriptions")
		}

		all := make([]services.DescriptionOption, 0, len(records))
		for _, r := range records {
			all = append(all, services.DescriptionOption{
				ID:           r.Id,
				Name:         r.GetString("name"),
				ResourceType: r.GetString("resource_type"),
				ResourceID:   r.GetString("resource"),
			})
		}

		if activityID := e.Request.URL.Query().Get("labour_activity_id"); activityID != "" {
			all = services.FilterDescriptions(all, activityID)
		}

		total := len(all)
		all = paginate(all, params)

		return e.JSON(http.StatusOK, map[string]any{
			"items":    all,
			"page":     params.Page,
			"per_page": params.PerPage,
			"total":    total,
		})
	}
}

// HandleUOMList returns a handler serving the unit-of-measure catalog.
func HandleUOMList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		records, err := findAllWithSearch(app, "unit_of_measures", "name ~ {:search}", "name", params.Search)
		if err != nil {
			log.Printf("uom_list: could not query: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load units of measure")
		}

		total := len(records)
		records = paginate(records, params)

		items := make([]services.Option, 0, len(records))
		for _, r := range records {
			items = append(items, services.Option{ID: r.Id, Name: r.GetString("name")})
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":    items,
			"page":     params.Page,
			"per_page": params.PerPage,
			"total":    total,
		})
	}
}
