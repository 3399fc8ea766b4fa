package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleFloorList returns a handler serving the floor list of a wing,
// zero-quantity allocations ready for the distribution dialog. A wing
// without floors is reported explicitly rather than papered over with
// fabricated floor names.
func HandleFloorList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		wingID := e.Request.URL.Query().Get("wing_id")
		if wingID == "" {
			return apiError(e, http.StatusBadRequest, "Missing wing_id")
		}

		if _, err := app.FindRecordById("wings", wingID); err != nil {
			log.Printf("floor_list: wing %s not found: %v", wingID, err)
			return apiError(e, http.StatusNotFound, "Wing not found")
		}

		floorRecords, err := app.FindRecordsByFilter("floors", "wing = {:wingId}", "sort_order", 0, 0, map[string]any{"wingId": wingID})
		if err != nil {
			log.Printf("floor_list: could not query floors for wing %s: %v", wingID, err)
			return apiError(e, http.StatusInternalServerError, "Could not load floors")
		}

		floors := make([]services.FloorAllocation, 0, len(floorRecords))
		for _, f := range floorRecords {
			floors = append(floors, services.FloorAllocation{
				FloorID: f.Id,
				Name:    f.GetString("name"),
			})
		}

		resp := map[string]any{
			"floors":    floors,
			"no_floors": len(floors) == 0,
		}
		if len(floors) == 0 {
			resp["notice"] = Notice{Kind: "info", Message: "No floors available for this wing"}
		}
		return e.JSON(http.StatusOK, resp)
	}
}
