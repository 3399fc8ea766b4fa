package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// GetFiscalYear returns the Indian fiscal year string for a given date.
// Indian fiscal year runs April to March.
// Jan 2026 → "25-26", May 2026 → "26-27"
func GetFiscalYear(t time.Time) string {
	year := t.Year()
	month := t.Month()

	var startYear int
	if month >= time.April {
		startYear = year
	} else {
		startYear = year - 1
	}
	endYear := startYear + 1

	return fmt.Sprintf("%02d-%02d", startYear%100, endYear%100)
}

// formatServiceBOQNumber constructs the reference number from components.
// Uses "-" as separator to avoid conflicts with project references containing "/".
func formatServiceBOQNumber(projectRef, fiscalYear string, sequence int) string {
	return fmt.Sprintf("SB-%s-%s-%03d", projectRef, fiscalYear, sequence)
}

// GenerateServiceBOQNumber creates the next reference number for a Service
// BOQ under a project. Format: SB-{project_ref}-{fiscal_year}-{sequence}
// - project_ref: project's reference_number (falls back to project ID if empty)
// - fiscal_year: Indian fiscal year (Apr-Mar), e.g., "25-26"
// - sequence: 3-digit zero-padded, per project per fiscal year
func GenerateServiceBOQNumber(app *pocketbase.PocketBase, projectID string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}

	fiscalYear := GetFiscalYear(now)

	prefix := fmt.Sprintf("SB-%s-%s-", projectRef, fiscalYear)

	existing, err := app.FindRecordsByFilter(
		"service_boqs",
		"project = {:projectId} && reference_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		existing = nil
	}

	nextSeq := len(existing) + 1

	return formatServiceBOQNumber(projectRef, fiscalYear, nextSeq), nil
}
