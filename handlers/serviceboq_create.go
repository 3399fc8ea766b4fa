package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleServiceBOQSave returns a handler that creates a Service BOQ from a
// submitted draft payload. The draft is validated, invalid blocks and
// unnamed rows are filtered by payload assembly, a reference number is
// generated and the aggregate is persisted as nested activity, service and
// floor records.
func HandleServiceBOQSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var body services.ServiceBOQPayload
		if err := e.BindBody(&body); err != nil {
			log.Printf("serviceboq_create: could not parse body: %v", err)
			return apiError(e, http.StatusBadRequest, "Invalid request body")
		}

		draft := services.DraftFromPayload(body)
		payload, err := services.AssemblePayload(draft)
		if err != nil {
			return validationError(e, err)
		}

		if err := checkLocationContext(app, payload); err != nil {
			return validationError(e, err)
		}

		boqCol, err := app.FindCollectionByNameOrId("service_boqs")
		if err != nil {
			log.Printf("serviceboq_create: could not find service_boqs collection: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		refNumber, err := services.GenerateServiceBOQNumber(app, payload.ProjectID, time.Now())
		if err != nil {
			log.Printf("serviceboq_create: could not generate reference number: %v", err)
			return validationError(e, err)
		}

		boqRecord := core.NewRecord(boqCol)
		boqRecord.Set("project", payload.ProjectID)
		boqRecord.Set("site", payload.SiteID)
		boqRecord.Set("wing", payload.WingID)
		boqRecord.Set("reference_number", refNumber)
		setCategoryPath(boqRecord, payload.CategoryPath)

		if err := app.Save(boqRecord); err != nil {
			log.Printf("serviceboq_create: could not save record: %v", err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		if err := persistActivities(app, boqRecord.Id, payload.Activities); err != nil {
			log.Printf("serviceboq_create: could not save activities for %s: %v", boqRecord.Id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		saved, err := buildServiceBOQPayload(app, boqRecord.Id)
		if err != nil {
			log.Printf("serviceboq_create: could not reload %s: %v", boqRecord.Id, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusCreated, saved)
	}
}

// checkLocationContext verifies the relational integrity of the selection
// chain: the site belongs to the project and the wing to the site.
func checkLocationContext(app *pocketbase.PocketBase, p services.ServiceBOQPayload) error {
	site, err := app.FindRecordById("sites", p.SiteID)
	if err != nil {
		return fmt.Errorf("site not found")
	}
	if site.GetString("project") != p.ProjectID {
		return fmt.Errorf("site does not belong to the selected project")
	}

	wing, err := app.FindRecordById("wings", p.WingID)
	if err != nil {
		return fmt.Errorf("wing not found")
	}
	if wing.GetString("site") != p.SiteID {
		return fmt.Errorf("wing does not belong to the selected site")
	}
	return nil
}

func setCategoryPath(record *core.Record, path services.CategoryPath) {
	record.Set("level_one", path.LevelOneID)
	record.Set("level_two", path.LevelTwoID)
	record.Set("level_three", path.LevelThreeID)
	record.Set("level_four", path.LevelFourID)
	record.Set("level_five", path.LevelFiveID)
}

// persistActivities writes the nested activity/service/floor records for a
// Service BOQ, preserving submission order via sort_order.
func persistActivities(app *pocketbase.PocketBase, boqID string, activities []services.ActivityWire) error {
	activitiesCol, err := app.FindCollectionByNameOrId("boq_activities")
	if err != nil {
		return fmt.Errorf("could not find boq_activities collection: %w", err)
	}
	servicesCol, err := app.FindCollectionByNameOrId("boq_activity_services")
	if err != nil {
		return fmt.Errorf("could not find boq_activity_services collection: %w", err)
	}
	floorsCol, err := app.FindCollectionByNameOrId("boq_activity_service_floors")
	if err != nil {
		return fmt.Errorf("could not find boq_activity_service_floors collection: %w", err)
	}

	for i, aw := range activities {
		activityRecord := core.NewRecord(activitiesCol)
		activityRecord.Set("service_boq", boqID)
		activityRecord.Set("sort_order", i+1)
		activityRecord.Set("labour_activity", aw.LabourActivityID)
		activityRecord.Set("description", aw.DescriptionID)
		if err := app.Save(activityRecord); err != nil {
			return fmt.Errorf("could not save activity %d: %w", i+1, err)
		}

		for j, sw := range aw.Services {
			serviceRecord := core.NewRecord(servicesCol)
			serviceRecord.Set("boq_activity", activityRecord.Id)
			serviceRecord.Set("sort_order", j+1)
			serviceRecord.Set("row_id", sw.ID)
			serviceRecord.Set("name", sw.Name)
			serviceRecord.Set("uom", sw.UOMID)
			serviceRecord.Set("quantity", sw.Quantity)
			serviceRecord.Set("wastage", sw.Wastage)
			if err := app.Save(serviceRecord); err != nil {
				return fmt.Errorf("could not save service %d.%d: %w", i+1, j+1, err)
			}

			for k, fw := range sw.Floors {
				floorRecord := core.NewRecord(floorsCol)
				floorRecord.Set("boq_activity_service", serviceRecord.Id)
				floorRecord.Set("sort_order", k+1)
				floorRecord.Set("floor", fw.FloorID)
				floorRecord.Set("floor_name", fw.FloorName)
				floorRecord.Set("quantity", fw.Quantity)
				floorRecord.Set("wastage", fw.Wastage)
				if err := app.Save(floorRecord); err != nil {
					return fmt.Errorf("could not save floor %d.%d.%d: %w", i+1, j+1, k+1, err)
				}
			}
		}
	}

	return nil
}
