// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

func create(t *testing.T, app *pocketbase.PocketBase, collection string, fields map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", collection, err)
	}

	record := core.NewRecord(col)
	for k, v := range fields {
		record.Set(k, v)
	}

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s record: %v", collection, err)
	}

	return record
}

// CreateTestProject creates a project record with the given name and reference number.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name, referenceNumber string) *core.Record {
	return create(t, app, "projects", map[string]any{
		"name":             name,
		"reference_number": referenceNumber,
	})
}

// CreateTestSite creates a site record linked to a project.
func CreateTestSite(t *testing.T, app *pocketbase.PocketBase, projectID, name string) *core.Record {
	return create(t, app, "sites", map[string]any{
		"project": projectID,
		"name":    name,
	})
}

// CreateTestWing creates a wing record linked to a site.
func CreateTestWing(t *testing.T, app *pocketbase.PocketBase, siteID, name string) *core.Record {
	return create(t, app, "wings", map[string]any{
		"site": siteID,
		"name": name,
	})
}

// CreateTestFloor creates a floor record linked to a wing.
func CreateTestFloor(t *testing.T, app *pocketbase.PocketBase, wingID, name string, sortOrder int) *core.Record {
	return create(t, app, "floors", map[string]any{
		"wing":       wingID,
		"name":       name,
		"sort_order": sortOrder,
	})
}

// CreateTestWorkCategory creates a work category at the given level. Pass an
// empty parent for level-1 roots.
func CreateTestWorkCategory(t *testing.T, app *pocketbase.PocketBase, name string, level int, parentID string) *core.Record {
	return create(t, app, "work_categories", map[string]any{
		"name":   name,
		"level":  level,
		"parent": parentID,
	})
}

// CreateTestLabourActivity creates a labour activity record.
func CreateTestLabourActivity(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	return create(t, app, "labour_activities", map[string]any{
		"name": name,
	})
}

// CreateTestDescription creates an activity description scoped to a labour activity.
func CreateTestDescription(t *testing.T, app *pocketbase.PocketBase, labourActivityID, name string) *core.Record {
	return create(t, app, "activity_descriptions", map[string]any{
		"name":          name,
		"resource_type": "labour_activity",
		"resource":      labourActivityID,
	})
}

// CreateTestUOM creates a unit-of-measure record.
func CreateTestUOM(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	return create(t, app, "unit_of_measures", map[string]any{
		"name": name,
	})
}
