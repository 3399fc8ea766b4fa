package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleProjectTree returns a handler that serves the project list with
// nested sites and wings, the source of the form's location cascade.
func HandleProjectTree(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		projectRecords, err := findAllWithSearch(app, "projects", "name ~ {:search} || reference_number ~ {:search}", "name", params.Search)
		if err != nil {
			log.Printf("project_tree: could not query projects: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load projects")
		}

		total := len(projectRecords)
		projectRecords = paginate(projectRecords, params)

		items := make([]services.ProjectNode, 0, len(projectRecords))
		for _, p := range projectRecords {
			node := services.ProjectNode{ID: p.Id, Name: p.GetString("name")}

			siteRecords, err := app.FindRecordsByFilter("sites", "project = {:projectId}", "name", 0, 0, map[string]any{"projectId": p.Id})
			if err != nil {
				log.Printf("project_tree: could not query sites for project %s: %v", p.Id, err)
				siteRecords = nil
			}

			for _, s := range siteRecords {
				siteNode := services.SiteNode{ID: s.Id, Name: s.GetString("name")}

				wingRecords, err := app.FindRecordsByFilter("wings", "site = {:siteId}", "name", 0, 0, map[string]any{"siteId": s.Id})
				if err != nil {
					log.Printf("project_tree: could not query wings for site %s: %v", s.Id, err)
					wingRecords = nil
				}
				for _, w := range wingRecords {
					siteNode.Wings = append(siteNode.Wings, services.WingNode{ID: w.Id, Name: w.GetString("name")})
				}

				node.Sites = append(node.Sites, siteNode)
			}

			items = append(items, node)
		}

		return e.JSON(http.StatusOK, map[string]any{
			"items":    items,
			"page":     params.Page,
			"per_page": params.PerPage,
			"total":    total,
		})
	}
}
