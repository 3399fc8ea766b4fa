package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

type serviceBOQListItem struct {
	ID              string `json:"id"`
	ReferenceNumber string `json:"reference_number"`
	ProjectID       string `json:"project_id"`
	ProjectName     string `json:"project_name"`
	SiteName        string `json:"site_name"`
	WingName        string `json:"wing_name"`
	ActivityCount   int    `json:"activity_count"`
	Created         string `json:"created"`
}

// HandleServiceBOQList returns a handler serving the paged Service BOQ
// register, newest first, searchable by reference number.
func HandleServiceBOQList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		records, err := findAllWithSearch(app, "service_boqs", "reference_number ~ {:search}", "-created", params.Search)
		if err != nil {
			log.Printf("serviceboq_list: could not query: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load Service BOQs")
		}

		total := len(records)
		records = paginate(records, params)

		items := make([]serviceBOQListItem, 0, len(records))
		for _, r := range records {
			item := serviceBOQListItem{
				ID:              r.Id,
				ReferenceNumber: r.GetString("reference_number"),
				ProjectID:       r.GetString("project"),
				Created:         r.GetDateTime("created").Time().Format("2006-01-02"),
			}

			if project, err := app.FindRecordById("projects", item.ProjectID); err == nil {
				item.ProjectName = project.GetString("name")
			}
			if site, err := app.FindRecordById("sites", r.GetString("site")); err == nil {
				item.SiteName = site.GetString("name")
			}
			if wing, err := app.FindRecordById("wings", r.GetString("wing")); err == nil {
				item.WingName = wing.GetString("name")
			}

			activities, err := app.FindRecordsByFilter("boq_activities", "service_boq = {:boqId}", "", 0, 0, map[string]any{"boqId": r.Id})
			if err != nil {
				log.Printf("serviceboq_list: could not count activities for %s: %v", r.Id, err)
			}
			item.ActivityCount = len(activities)

			items = append(items, item)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":    items,
			"page":     params.Page,
			"per_page": params.PerPage,
			"total":    total,
		})
	}
}
