package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// buildServiceBOQPayload reconstructs the nested wire payload for a stored
// Service BOQ: activities in sort order, each with its services and their
// per-floor sub-rows.
func buildServiceBOQPayload(app *pocketbase.PocketBase, boqID string) (services.ServiceBOQPayload, error) {
	boqRecord, err := app.FindRecordById("service_boqs", boqID)
	if err != nil {
		return services.ServiceBOQPayload{}, fmt.Errorf("service BOQ not found: %w", err)
	}

	payload := services.ServiceBOQPayload{
		ID:              boqRecord.Id,
		ReferenceNumber: boqRecord.GetString("reference_number"),
		ProjectID:       boqRecord.GetString("project"),
		SiteID:          boqRecord.GetString("site"),
		WingID:          boqRecord.GetString("wing"),
		CategoryPath: services.CategoryPath{
			LevelOneID:   boqRecord.GetString("level_one"),
			LevelTwoID:   boqRecord.GetString("level_two"),
			LevelThreeID: boqRecord.GetString("level_three"),
			LevelFourID:  boqRecord.GetString("level_four"),
			LevelFiveID:  boqRecord.GetString("level_five"),
		},
	}

	activityRecords, err := app.FindRecordsByFilter("boq_activities", "service_boq = {:boqId}", "sort_order", 0, 0, map[string]any{"boqId": boqID})
	if err != nil {
		log.Printf("serviceboq_view: could not query activities for %s: %v", boqID, err)
		activityRecords = nil
	}

	for _, ar := range activityRecords {
		aw := services.ActivityWire{
			LabourActivityID: ar.GetString("labour_activity"),
			DescriptionID:    ar.GetString("description"),
		}

		serviceRecords, err := app.FindRecordsByFilter("boq_activity_services", "boq_activity = {:activityId}", "sort_order", 0, 0, map[string]any{"activityId": ar.Id})
		if err != nil {
			log.Printf("serviceboq_view: could not query services for activity %s: %v", ar.Id, err)
			serviceRecords = nil
		}

		for _, sr := range serviceRecords {
			sw := services.ServiceWire{
				ID:       sr.GetString("row_id"),
				Name:     sr.GetString("name"),
				UOMID:    sr.GetString("uom"),
				Quantity: int64(sr.GetFloat("quantity")),
				Wastage:  int64(sr.GetFloat("wastage")),
			}

			floorRecords, err := app.FindRecordsByFilter("boq_activity_service_floors", "boq_activity_service = {:serviceId}", "sort_order", 0, 0, map[string]any{"serviceId": sr.Id})
			if err != nil {
				log.Printf("serviceboq_view: could not query floors for service %s: %v", sr.Id, err)
				floorRecords = nil
			}

			for _, fr := range floorRecords {
				sw.Floors = append(sw.Floors, services.FloorWire{
					FloorID:   fr.GetString("floor"),
					FloorName: fr.GetString("floor_name"),
					Quantity:  int64(fr.GetFloat("quantity")),
					Wastage:   int64(fr.GetFloat("wastage")),
				})
			}

			aw.Services = append(aw.Services, sw)
		}

		payload.Activities = append(payload.Activities, aw)
	}

	return payload, nil
}

// HandleServiceBOQView returns a handler serving one Service BOQ as the
// nested payload the edit form reconstructs its draft from.
func HandleServiceBOQView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if boqID == "" {
			return apiError(e, http.StatusBadRequest, "Missing Service BOQ ID")
		}

		payload, err := buildServiceBOQPayload(app, boqID)
		if err != nil {
			log.Printf("serviceboq_view: %v", err)
			return apiError(e, http.StatusNotFound, "Service BOQ not found")
		}

		return e.JSON(http.StatusOK, payload)
	}
}
