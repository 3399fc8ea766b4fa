package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// buildExportData fetches a Service BOQ and its nested rows, resolving
// every stored id to a display name for the export sheet.
func buildExportData(app *pocketbase.PocketBase, boqID string) (services.ExportData, error) {
	boqRecord, err := app.FindRecordById("service_boqs", boqID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("service BOQ not found: %w", err)
	}

	data := services.ExportData{
		Title:           "Service BOQ",
		ReferenceNumber: boqRecord.GetString("reference_number"),
		ProjectName:     lookupName(app, "projects", boqRecord.GetString("project")),
		SiteName:        lookupName(app, "sites", boqRecord.GetString("site")),
		WingName:        lookupName(app, "wings", boqRecord.GetString("wing")),
	}

	for _, levelField := range []string{"level_one", "level_two", "level_three", "level_four", "level_five"} {
		categoryID := boqRecord.GetString(levelField)
		if categoryID == "" {
			break
		}
		data.CategoryNames = append(data.CategoryNames, lookupName(app, "work_categories", categoryID))
	}

	data.CreatedDate = "-"
	if dt := boqRecord.GetDateTime("created"); !dt.IsZero() {
		data.CreatedDate = dt.Time().Format("02 Jan 2006")
	}

	activityRecords, err := app.FindRecordsByFilter("boq_activities", "service_boq = {:boqId}", "sort_order", 0, 0, map[string]any{"boqId": boqID})
	if err != nil {
		activityRecords = nil
	}

	uomNames := uomNameIndex(app)

	for i, ar := range activityRecords {
		activityName := lookupName(app, "labour_activities", ar.GetString("labour_activity"))
		descriptionName := lookupName(app, "activity_descriptions", ar.GetString("description"))
		blockLabel := activityName
		if descriptionName != "" {
			blockLabel = activityName + " - " + descriptionName
		}

		data.Rows = append(data.Rows, services.ExportRow{
			Level:       0,
			Index:       fmt.Sprintf("%d", i+1),
			Description: blockLabel,
		})

		serviceRecords, err := app.FindRecordsByFilter("boq_activity_services", "boq_activity = {:activityId}", "sort_order", 0, 0, map[string]any{"activityId": ar.Id})
		if err != nil {
			serviceRecords = nil
		}

		for j, sr := range serviceRecords {
			qty := int64(sr.GetFloat("quantity"))
			wastage := int64(sr.GetFloat("wastage"))
			data.TotalQuantity += qty
			data.TotalWastage += wastage

			data.Rows = append(data.Rows, services.ExportRow{
				Level:       1,
				Index:       fmt.Sprintf("%d.%d", i+1, j+1),
				Description: sr.GetString("name"),
				Quantity:    qty,
				Wastage:     wastage,
				UOM:         uomNames[sr.GetString("uom")],
			})

			floorRecords, err := app.FindRecordsByFilter("boq_activity_service_floors", "boq_activity_service = {:serviceId}", "sort_order", 0, 0, map[string]any{"serviceId": sr.Id})
			if err != nil {
				floorRecords = nil
			}

			for k, fr := range floorRecords {
				data.Rows = append(data.Rows, services.ExportRow{
					Level:       2,
					Index:       fmt.Sprintf("%d.%d.%d", i+1, j+1, k+1),
					Description: fr.GetString("floor_name"),
					Quantity:    int64(fr.GetFloat("quantity")),
					Wastage:     int64(fr.GetFloat("wastage")),
					UOM:         uomNames[sr.GetString("uom")],
				})
			}
		}
	}

	return data, nil
}

func lookupName(app *pocketbase.PocketBase, collection, id string) string {
	if id == "" {
		return ""
	}
	record, err := app.FindRecordById(collection, id)
	if err != nil {
		return ""
	}
	return record.GetString("name")
}

func uomNameIndex(app *pocketbase.PocketBase) map[string]string {
	index := make(map[string]string)
	records, err := app.FindAllRecords("unit_of_measures")
	if err != nil {
		return index
	}
	for _, r := range records {
		index[r.Id] = r.GetString("name")
	}
	return index
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleServiceBOQExportExcel returns a handler that generates and downloads
// an Excel file for a Service BOQ.
func HandleServiceBOQExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if boqID == "" {
			return e.String(http.StatusBadRequest, "Missing Service BOQ ID")
		}

		data, err := buildExportData(app, boqID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Service BOQ not found")
		}

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("ServiceBOQ_%s_%d.xlsx", sanitizeFilename(data.ReferenceNumber), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleServiceBOQExportPDF returns a handler that generates and downloads a
// PDF file for a Service BOQ.
func HandleServiceBOQExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		boqID := e.Request.PathValue("id")
		if boqID == "" {
			return e.String(http.StatusBadRequest, "Missing Service BOQ ID")
		}

		data, err := buildExportData(app, boqID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Service BOQ not found")
		}

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("ServiceBOQ_%s_%d.pdf", sanitizeFilename(data.ReferenceNumber), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
