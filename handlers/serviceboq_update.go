package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// HandleServiceBOQUpdate returns a handler that replaces a Service BOQ with
// a re-submitted draft. The reference number is kept; the nested activity
// rows are rewritten wholesale so the stored order always matches the
// submitted order.
func HandleServiceBOQUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if boqID == "" {
			return apiError(e, http.StatusBadRequest, "Missing Service BOQ ID")
		}

		boqRecord, err := app.FindRecordById("service_boqs", boqID)
		if err != nil {
			log.Printf("serviceboq_update: record %s not found: %v", boqID, err)
			return apiError(e, http.StatusNotFound, "Service BOQ not found")
		}

		var body services.ServiceBOQPayload
		if err := e.BindBody(&body); err != nil {
			log.Printf("serviceboq_update: could not parse body: %v", err)
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

		boqRecord.Set("project", payload.ProjectID)
		boqRecord.Set("site", payload.SiteID)
		boqRecord.Set("wing", payload.WingID)
		setCategoryPath(boqRecord, payload.CategoryPath)

		if err := app.Save(boqRecord); err != nil {
			log.Printf("serviceboq_update: could not save record %s: %v", boqID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		if err := deleteActivities(app, boqID); err != nil {
			log.Printf("serviceboq_update: could not clear activities for %s: %v", boqID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}
		if err := persistActivities(app, boqID, payload.Activities); err != nil {
			log.Printf("serviceboq_update: could not save activities for %s: %v", boqID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		saved, err := buildServiceBOQPayload(app, boqID)
		if err != nil {
			log.Printf("serviceboq_update: could not reload %s: %v", boqID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, saved)
	}
}

// deleteActivities removes every activity of a Service BOQ. Services and
// floor rows follow through the cascade delete on their relations.
func deleteActivities(app *pocketbase.PocketBase, boqID string) error {
	activityRecords, err := app.FindRecordsByFilter("boq_activities", "service_boq = {:boqId}", "", 0, 0, map[string]any{"boqId": boqID})
	if err != nil {
		return err
	}
	for _, ar := range activityRecords {
		if err := app.Delete(ar); err != nil {
			return err
		}
	}
	return nil
}
