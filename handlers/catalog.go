package handlers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// HandleCatalogSearch lists pricing catalog items, optionally filtered by a
// case-insensitive name substring (?q=) and/or category (?category=).
func HandleCatalogSearch(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		query := e.Request.URL.Query().Get("q")
		category := e.Request.URL.Query().Get("category")

		filter := "id != ''"
		bind := map[string]any{}
		if query != "" {
			filter += " && name ~ {:q}"
			bind["q"] = query
		}
		if category != "" {
			normalized, wasDefaulted := services.NormalizeCategory(category)
			if wasDefaulted && !services.IsValidCategory(category) {
				return apiError(e, http.StatusBadRequest, "Unknown category "+category)
			}
			filter += " && category = {:category}"
			bind["category"] = string(normalized)
		}

		records, err := app.FindRecordsByFilter("pricing_items", filter, "category,name", 0, 0, bind)
		if err != nil {
			log.Printf("catalog_search: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to search catalog")
		}

		items := make([]services.LineItemTemplate, len(records))
		for i, record := range records {
			items[i] = services.TemplateFromRecord(record)
		}
		return e.JSON(http.StatusOK, map[string]any{"items": items})
	}
}

// HandleCatalogImport ingests an uploaded .csv/.xlsx pricing catalog.
// Valid rows save, bad rows come back as per-row errors; partial success is
// the normal outcome for a messy sheet.
func HandleCatalogImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return apiError(e, http.StatusBadRequest, "Missing file upload")
		}
		defer file.Close()

		result, err := services.ParseCatalogFile(file, header.Filename)
		if err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		col, err := app.FindCollectionByNameOrId("pricing_items")
		if err != nil {
			log.Printf("catalog_import: %v", err)
			return apiError(e, http.StatusInternalServerError, "Pricing catalog collection missing")
		}

		for _, item := range result.Items {
			record := core.NewRecord(col)
			record.Set("category", string(item.Category))
			record.Set("name", item.Name)
			record.Set("unit_type", string(item.UnitType))
			record.Set("material_unit_cost", item.MaterialUnitCost)
			record.Set("labor_hours_per_unit", item.LaborHoursPerUnit)
			if err := app.Save(record); err != nil {
				log.Printf("catalog_import: save %q: %v", item.Name, err)
				return apiError(e, http.StatusInternalServerError, "Failed to save catalog items")
			}
		}

		return e.JSON(http.StatusOK, result)
	}
}

// importErrorReportRequest carries the errors from a previous import
// response back for rendering as a downloadable sheet.
type importErrorReportRequest struct {
	Errors []services.ImportError `json:"errors"`
}

// HandleCatalogImportErrorReport renders import errors as a downloadable
// .xlsx so the uploader can fix their sheet row by row.
func HandleCatalogImportErrorReport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req importErrorReportRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		if len(req.Errors) == 0 {
			return apiError(e, http.StatusBadRequest, "No errors to report")
		}

		report, err := services.GenerateImportErrorReport(req.Errors)
		if err != nil {
			log.Printf("catalog_import_errors: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate error report")
		}

		filename := fmt.Sprintf("Import_Errors_%d.xlsx", time.Now().Unix())
		return writeAttachment(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, report)
	}
}
