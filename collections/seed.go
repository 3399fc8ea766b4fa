package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type wingDef struct {
	name   string
	floors []string
}

type siteDef struct {
	name  string
	wings []wingDef
}

type projectDef struct {
	name            string
	referenceNumber string
	sites           []siteDef
}

type categoryDef struct {
	name     string
	children []categoryDef
}

type activityDef struct {
	name         string
	descriptions []string
}

// Seed populates the master-data collections with realistic residential
// construction data. It is safe to call on every startup because it returns
// early if any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	sitesCol, err := app.FindCollectionByNameOrId("sites")
	if err != nil {
		return fmt.Errorf("seed: could not find sites collection: %w", err)
	}
	wingsCol, err := app.FindCollectionByNameOrId("wings")
	if err != nil {
		return fmt.Errorf("seed: could not find wings collection: %w", err)
	}
	floorsCol, err := app.FindCollectionByNameOrId("floors")
	if err != nil {
		return fmt.Errorf("seed: could not find floors collection: %w", err)
	}
	categoriesCol, err := app.FindCollectionByNameOrId("work_categories")
	if err != nil {
		return fmt.Errorf("seed: could not find work_categories collection: %w", err)
	}
	activitiesCol, err := app.FindCollectionByNameOrId("labour_activities")
	if err != nil {
		return fmt.Errorf("seed: could not find labour_activities collection: %w", err)
	}
	descriptionsCol, err := app.FindCollectionByNameOrId("activity_descriptions")
	if err != nil {
		return fmt.Errorf("seed: could not find activity_descriptions collection: %w", err)
	}
	uomCol, err := app.FindCollectionByNameOrId("unit_of_measures")
	if err != nil {
		return fmt.Errorf("seed: could not find unit_of_measures collection: %w", err)
	}

	// ── project / site / wing / floor hierarchy ──────────────────────
	projects := []projectDef{
		{
			name:            "Emerald Heights Township",
			referenceNumber: "EHT-2025",
			sites: []siteDef{
				{
					name: "Phase 1 - Sector A",
					wings: []wingDef{
						{name: "Wing A", floors: []string{"Ground Floor", "First Floor", "Second Floor", "Third Floor", "Fourth Floor"}},
						{name: "Wing B", floors: []string{"Ground Floor", "First Floor", "Second Floor"}},
					},
				},
				{
					name: "Phase 1 - Sector B",
					wings: []wingDef{
						{name: "Tower 1", floors: []string{"Basement", "Ground Floor", "First Floor", "Second Floor", "Third Floor", "Fourth Floor", "Fifth Floor"}},
					},
				},
			},
		},
		{
			name:            "Lakeview Residency",
			referenceNumber: "LVR-2025",
			sites: []siteDef{
				{
					name: "Main Site",
					wings: []wingDef{
						{name: "North Wing", floors: []string{"Ground Floor", "First Floor"}},
						{name: "South Wing", floors: nil},
					},
				},
			},
		},
	}

	for _, p := range projects {
		projectRecord := core.NewRecord(projectsCol)
		projectRecord.Set("name", p.name)
		projectRecord.Set("reference_number", p.referenceNumber)
		if err := app.Save(projectRecord); err != nil {
			return fmt.Errorf("seed: could not save project %q: %w", p.name, err)
		}

		for _, s := range p.sites {
			siteRecord := core.NewRecord(sitesCol)
			siteRecord.Set("project", projectRecord.Id)
			siteRecord.Set("name", s.name)
			if err := app.Save(siteRecord); err != nil {
				return fmt.Errorf("seed: could not save site %q: %w", s.name, err)
			}

			for _, w := range s.wings {
				wingRecord := core.NewRecord(wingsCol)
				wingRecord.Set("site", siteRecord.Id)
				wingRecord.Set("name", w.name)
				if err := app.Save(wingRecord); err != nil {
					return fmt.Errorf("seed: could not save wing %q: %w", w.name, err)
				}

				for i, floorName := range w.floors {
					floorRecord := core.NewRecord(floorsCol)
					floorRecord.Set("wing", wingRecord.Id)
					floorRecord.Set("sort_order", i+1)
					floorRecord.Set("name", floorName)
					if err := app.Save(floorRecord); err != nil {
						return fmt.Errorf("seed: could not save floor %q: %w", floorName, err)
					}
				}
			}
		}
	}

	// ── work category tree (levels 1-2 preloaded, 3+ fetched lazily) ─
	categories := []categoryDef{
		{
			name: "Civil Works",
			children: []categoryDef{
				{
					name: "RCC Works",
					children: []categoryDef{
						{name: "Footings", children: []categoryDef{
							{name: "Isolated Footings"},
							{name: "Raft Foundation"},
						}},
						{name: "Columns"},
						{name: "Slabs", children: []categoryDef{
							{name: "Flat Slab", children: []categoryDef{
								{name: "Post-Tensioned"},
							}},
						}},
					},
				},
				{name: "Masonry", children: []categoryDef{
					{name: "Brickwork"},
					{name: "Blockwork"},
				}},
				{name: "Plastering"},
			},
		},
		{
			name: "Finishing Works",
			children: []categoryDef{
				{name: "Flooring", children: []categoryDef{
					{name: "Vitrified Tiles"},
					{name: "Granite"},
				}},
				{name: "Painting"},
				{name: "Waterproofing"},
			},
		},
		{
			name: "MEP Works",
			children: []categoryDef{
				{name: "Electrical"},
				{name: "Plumbing"},
				{name: "Fire Fighting"},
			},
		},
	}

	var insertCategory func(d categoryDef, level int, parentID string) error
	insertCategory = func(d categoryDef, level int, parentID string) error {
		r := core.NewRecord(categoriesCol)
		r.Set("name", d.name)
		r.Set("level", level)
		r.Set("parent", parentID)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save category %q: %w", d.name, err)
		}
		for _, child := range d.children {
			if err := insertCategory(child, level+1, r.Id); err != nil {
				return err
			}
		}
		return nil
	}
	for _, c := range categories {
		if err := insertCategory(c, 1, ""); err != nil {
			return err
		}
	}

	// ── labour activities and their descriptions ─────────────────────
	activities := []activityDef{
		{name: "Shuttering", descriptions: []string{
			"Providing and fixing formwork for RCC members",
			"De-shuttering and cleaning of formwork",
		}},
		{name: "Bar Bending", descriptions: []string{
			"Cutting, bending and placing of reinforcement steel",
		}},
		{name: "Concreting", descriptions: []string{
			"Pouring and compacting M25 grade concrete",
			"Curing of concrete surfaces for 14 days",
		}},
		{name: "Tile Laying", descriptions: []string{
			"Laying vitrified tiles with spacers and grouting",
		}},
		{name: "Painting", descriptions: []string{
			"Two coats of emulsion over one coat of primer",
			"Exterior texture coating",
		}},
	}

	for _, a := range activities {
		activityRecord := core.NewRecord(activitiesCol)
		activityRecord.Set("name", a.name)
		if err := app.Save(activityRecord); err != nil {
			return fmt.Errorf("seed: could not save labour activity %q: %w", a.name, err)
		}

		for _, desc := range a.descriptions {
			descRecord := core.NewRecord(descriptionsCol)
			descRecord.Set("name", desc)
			descRecord.Set("resource_type", services.DescriptionResourceType)
			descRecord.Set("resource", activityRecord.Id)
			if err := app.Save(descRecord); err != nil {
				return fmt.Errorf("seed: could not save description %q: %w", desc, err)
			}
		}
	}

	// ── units of measure ─────────────────────────────────────────────
	for _, name := range services.UOMOptions {
		r := core.NewRecord(uomCol)
		r.Set("name", name)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: could not save unit of measure %q: %w", name, err)
		}
	}

	log.Println("seed: done")
	return nil
}
