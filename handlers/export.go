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

// buildEstimateExportData fetches an estimate and its line items and
// recomputes every number from raw inputs.
func buildEstimateExportData(app *pocketbase.PocketBase, estimateID string) (services.ExportData, error) {
	estimate, err := app.FindRecordById("estimates", estimateID)
	if err != nil {
		return services.ExportData{}, fmt.Errorf("estimate not found: %w", err)
	}

	records, err := services.LoadEstimateLineItems(app, estimateID)
	if err != nil {
		return services.ExportData{}, err
	}

	items := make([]services.LineItem, len(records))
	for i, record := range records {
		items[i] = services.LineItemFromRecord(record)
	}

	return services.BuildExportData(
		services.ProjectInfoFromRecord(estimate),
		items,
		services.ParamsFromEstimateRecord(estimate),
	), nil
}

// HandleEstimateExportExcel generates and downloads the estimate worksheet.
func HandleEstimateExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		if estimateID == "" {
			return apiError(e, http.StatusBadRequest, "Missing estimate ID")
		}

		data, err := buildEstimateExportData(app, estimateID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		xlsxBytes, err := services.GenerateEstimateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Estimate_%s_%d.xlsx", sanitizeFilename(data.ProjectName), time.Now().Year())
		return writeAttachment(e, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", filename, xlsxBytes)
	}
}

// HandleEstimateExportPDF generates and downloads the bid proposal PDF.
func HandleEstimateExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimateID := e.Request.PathValue("id")
		if estimateID == "" {
			return apiError(e, http.StatusBadRequest, "Missing estimate ID")
		}

		data, err := buildEstimateExportData(app, estimateID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		pdfBytes, err := services.GenerateBidPDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Bid_%s_%d.pdf", sanitizeFilename(data.ProjectName), time.Now().Year())
		return writeAttachment(e, "application/pdf", filename, pdfBytes)
	}
}
