package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/collections"
	"ohmnibid/handlers"
	"ohmnibid/services"
)

func main() {
	app := pocketbase.New()

	// Create collections, seed catalogs and heal stored derived fields on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := services.NormalizeStoredLineItems(app); err != nil {
			log.Printf("Warning: line item normalization failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Estimates ────────────────────────────────────────────
		se.Router.POST("/api/estimates", handlers.HandleEstimateCreate(app))
		se.Router.GET("/api/estimates", handlers.HandleEstimateList(app))
		se.Router.GET("/api/estimates/{id}", handlers.HandleEstimateView(app))
		se.Router.PATCH("/api/estimates/{id}", handlers.HandleEstimateUpdate(app))
		se.Router.DELETE("/api/estimates/{id}", handlers.HandleEstimateDelete(app))

		// ── Line items ───────────────────────────────────────────
		se.Router.POST("/api/estimates/{id}/items", handlers.HandleLineItemAdd(app))
		se.Router.PATCH("/api/estimates/{id}/items/{itemId}", handlers.HandleLineItemUpdate(app))
		se.Router.DELETE("/api/estimates/{id}/items/{itemId}", handlers.HandleLineItemDelete(app))
		se.Router.POST("/api/estimates/{id}/items/paste", handlers.HandlePasteImport(app))

		// ── Exports ──────────────────────────────────────────────
		se.Router.GET("/api/estimates/{id}/export/excel", handlers.HandleEstimateExportExcel(app))
		se.Router.GET("/api/estimates/{id}/export/pdf", handlers.HandleEstimateExportPDF(app))

		// ── Pricing catalog ──────────────────────────────────────
		se.Router.GET("/api/catalog", handlers.HandleCatalogSearch(app))
		se.Router.POST("/api/catalog/import", handlers.HandleCatalogImport(app))
		se.Router.POST("/api/catalog/import/errors", handlers.HandleCatalogImportErrorReport(app))

		// ── Calculators ──────────────────────────────────────────
		se.Router.POST("/api/feeder/quote", handlers.HandleFeederQuote(app))
		se.Router.POST("/api/conduit-fill", handlers.HandleConduitFill(app))

		// ── Assistant tool dispatch ──────────────────────────────
		se.Router.POST("/api/tools/{name}", handlers.HandleToolCall(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
