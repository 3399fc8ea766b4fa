package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleServiceBOQDelete returns a handler that removes a Service BOQ. The
// nested activity, service and floor records go with it through cascade
// deletes.
func HandleServiceBOQDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if boqID == "" {
			return apiError(e, http.StatusBadRequest, "Missing Service BOQ ID")
		}

		boqRecord, err := app.FindRecordById("service_boqs", boqID)
		if err != nil {
			log.Printf("serviceboq_delete: record %s not found: %v", boqID, err)
			return apiError(e, http.StatusNotFound, "Service BOQ not found")
		}

		if err := app.Delete(boqRecord); err != nil {
			log.Printf("serviceboq_delete: could not delete %s: %v", boqID, err)
			return apiError(e, http.StatusInternalServerError, "Internal error")
		}

		return e.JSON(http.StatusOK, map[string]any{"deleted": boqID})
	}
}
