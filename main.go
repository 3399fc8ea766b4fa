package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"serviceboq/collections"
	"serviceboq/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Hierarchy lookups ────────────────────────────────────
		se.Router.GET("/api/boq/projects", handlers.HandleProjectTree(app))
		se.Router.GET("/api/boq/work-categories", handlers.HandleWorkCategories(app))
		se.Router.GET("/api/boq/work-sub-categories/{id}", handlers.HandleWorkSubCategories(app))
		se.Router.GET("/api/boq/floors", handlers.HandleFloorList(app))

		// ── Catalogs ─────────────────────────────────────────────
		se.Router.GET("/api/boq/labour-activities", handlers.HandleLabourActivityList(app))
		se.Router.GET("/api/boq/descriptions", handlers.HandleDescriptionList(app))
		se.Router.GET("/api/boq/unit-of-measures", handlers.HandleUOMList(app))

		// ── Service BOQ CRUD ─────────────────────────────────────
		se.Router.GET("/api/boq/service-boqs", handlers.HandleServiceBOQList(app))
		se.Router.POST("/api/boq/service-boqs", handlers.HandleServiceBOQSave(app))

		// Export routes before the bare {id} routes
		se.Router.GET("/api/boq/service-boqs/{id}/export/excel", handlers.HandleServiceBOQExportExcel(app))
		se.Router.GET("/api/boq/service-boqs/{id}/export/pdf", handlers.HandleServiceBOQExportPDF(app))

		se.Router.GET("/api/boq/service-boqs/{id}", handlers.HandleServiceBOQView(app))
		se.Router.PUT("/api/boq/service-boqs/{id}", handlers.HandleServiceBOQUpdate(app))
		se.Router.DELETE("/api/boq/service-boqs/{id}", handlers.HandleServiceBOQDelete(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
