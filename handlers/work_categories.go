package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleWorkCategories returns a handler serving the top two category
// levels: level-1 roots with their level-2 children preloaded. Deeper
// levels go through HandleWorkSubCategories on demand.
func HandleWorkCategories(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		params := parseListParams(e)

		roots, err := findAllWithSearch(app, "work_categories", "name ~ {:search} && level = 1", "name", params.Search)
		if err != nil {
			log.Printf("work_categories: could not query roots: %v", err)
			return apiError(e, http.StatusInternalServerError, "Could not load work categories")
		}
		if params.Search == "" {
			// The no-filter path returns every level; narrow to roots.
			roots = filterByLevel(roots, 1)
		}

		total := len(roots)
		roots = paginate(roots, params)

		items := make([]services.CategoryNode, 0, len(roots))
		for _, root := range roots {
			node := services.CategoryNode{ID: root.Id, Name: root.GetString("name")}

			children, err := app.FindRecordsByFilter("work_categories", "parent = {:parentId}", "name", 0, 0, map[string]any{"parentId": root.Id})
			if err != nil {
				log.Printf("work_categories: could not query children of %s: %v", root.Id, err)
				children = nil
			}
			for _, c := range children {
				node.Children = append(node.Children, services.Option{ID: c.Id, Name: c.GetString("name")})
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

// HandleWorkSubCategories returns a handler serving the direct children of
// a category node, used to populate levels 3-5 of the cascade lazily.
func HandleWorkSubCategories(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		parentID := e.Request.PathValue("id")
		if parentID == "" {
			return apiError(e, http.StatusBadRequest, "Missing category ID")
		}

		if _, err := app.FindRecordById("work_categories", parentID); err != nil {
			log.Printf("work_sub_categories: category %s not found: %v", parentID, err)
			return apiError(e, http.StatusNotFound, "Work category not found")
		}

		children, err := app.FindRecordsByFilter("work_categories", "parent = {:parentId}", "name", 0, 0, map[string]any{"parentId": parentID})
		if err != nil {
			log.Printf("work_sub_categories: could not query children of %s: %v", parentID, err)
			return apiError(e, http.StatusInternalServerError, "Could not load sub-categories")
		}

		items := make([]services.Option, 0, len(children))
		for _, c := range children {
			items = append(items, services.Option{ID: c.Id, Name: c.GetString("name")})
		}

		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

func filterByLevel(records []*core.Record, level int) []*core.Record {
	var out []*core.Record
	for _, r := range records {
		if int(r.GetFloat("level")) == level {
			out = append(out, r)
		}
	}
	return out
}
