package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// Setup programmatically creates/ensures all master-data and Service BOQ
// collections exist: the project/site/wing/floor location hierarchy, the
// 5-level work-category tree, the labour activity catalog and the
// service_boqs aggregate with its nested activity/service/floor records.
func Setup(app *pocketbase.PocketBase) {
	projects := ensureCollection(app, "projects", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	sites := ensureCollection(app, "sites", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	wings := ensureCollection(app, "wings", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "site",
			Required:      true,
			CollectionId:  sites.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	floors := ensureCollection(app, "floors", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "wing",
			Required:      true,
			CollectionId:  wings.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	// Self-referencing tree: level 1 roots have no parent, levels 2-5 hang
	// off their parent node. Parent is a plain id field because the
	// collection cannot reference itself before it is saved.
	ensureCollection(app, "work_categories", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.NumberField{Name: "level", Required: true})
		c.Fields.Add(&core.TextField{Name: "parent", Required: false})
	})

	labourActivities := ensureCollection(app, "labour_activities", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	activityDescriptions := ensureCollection(app, "activity_descriptions", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "resource_type", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:          "resource",
			Required:      true,
			CollectionId:  labourActivities.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
	})

	ensureCollection(app, "unit_of_measures", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
	})

	serviceBOQs := ensureCollection(app, "service_boqs", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "site",
			Required:     true,
			CollectionId: sites.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "wing",
			Required:     true,
			CollectionId: wings.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "reference_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "level_one", Required: true})
		c.Fields.Add(&core.TextField{Name: "level_two", Required: false})
		c.Fields.Add(&core.TextField{Name: "level_three", Required: false})
		c.Fields.Add(&core.TextField{Name: "level_four", Required: false})
		c.Fields.Add(&core.TextField{Name: "level_five", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	boqActivities := ensureCollection(app, "boq_activities", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "service_boq",
			Required:      true,
			CollectionId:  serviceBOQs.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "labour_activity",
			Required:     true,
			CollectionId: labourActivities.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.RelationField{
			Name:         "description",
			Required:     true,
			CollectionId: activityDescriptions.Id,
			MaxSelect:    1,
		})
	})

	boqActivityServices := ensureCollection(app, "boq_activity_services", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "boq_activity",
			Required:      true,
			CollectionId:  boqActivities.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.TextField{Name: "row_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "uom", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "wastage", Required: false})
	})

	ensureCollection(app, "boq_activity_service_floors", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "boq_activity_service",
			Required:      true,
			CollectionId:  boqActivityServices.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: true})
		c.Fields.Add(&core.RelationField{
			Name:         "floor",
			Required:     true,
			CollectionId: floors.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.TextField{Name: "floor_name", Required: false})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.NumberField{Name: "wastage", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
