package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

type pasteImportRequest struct {
	Text string `json:"text"`
}

// HandlePasteImport parses pasted spreadsheet text into priced line items on
// an estimate. Good lines import, bad lines come back as 1-indexed errors;
// one bad line never rejects the batch.
func HandlePasteImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		var req pasteImportRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		if req.Text == "" {
			return apiError(e, http.StatusBadRequest, "text is required")
		}

		parsed := services.ParseLineItemPaste(req.Text)
		params := services.ParamsFromEstimateRecord(estimate)

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("paste_import: %v", err)
			return apiError(e, http.StatusInternalServerError, "Line items collection missing")
		}

		sortOrder := nextSortOrder(app, estimate.Id)
		added := make([]services.LineItem, 0, len(parsed.Items))
		for _, parsedItem := range parsed.Items {
			item := services.CreateLineItem(services.LineItemTemplate{
				Category:          parsedItem.Category,
				Name:              parsedItem.Description,
				UnitType:          parsedItem.UnitType,
				MaterialUnitCost:  parsedItem.MaterialUnitCost,
				LaborHoursPerUnit: parsedItem.LaborHoursPerUnit,
			}, parsedItem.Quantity, params, "")

			record := core.NewRecord(col)
			record.Set("estimate", estimate.Id)
			record.Set("sort_order", sortOrder)
			services.ApplyLineItemToRecord(item, record)

			if err := app.Save(record); err != nil {
				log.Printf("paste_import: save: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to save imported line items")
			}
			sortOrder++
			added = append(added, item)
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("paste_import: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}

		return e.JSON(http.StatusOK, map[string]any{
			"imported": len(added),
			"errors":   parsed.Errors,
			"estimate": resp,
		})
	}
}
