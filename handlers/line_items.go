package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// lineItemAddRequest adds one line item. Either pricingItemId references a
// catalog row (description/costs come from the catalog) or the manual fields
// carry the pricing basis directly.
type lineItemAddRequest struct {
	PricingItemID string  `json:"pricingItemId"`
	Quantity      float64 `json:"quantity"`

	Category          string  `json:"category"`
	Description       string  `json:"description"`
	UnitType          string  `json:"unitType"`
	MaterialUnitCost  float64 `json:"materialUnitCost"`
	LaborHoursPerUnit float64 `json:"laborHoursPerUnit"`
}

// HandleLineItemAdd creates a priced line item on an estimate. All derived
// fields come out of the factory, never from the request.
func HandleLineItemAdd(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		var req lineItemAddRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		var template services.LineItemTemplate
		if req.PricingItemID != "" {
			catalogRecord, err := app.FindRecordById("pricing_items", req.PricingItemID)
			if err != nil {
				return apiError(e, http.StatusNotFound, "Pricing item not found")
			}
			template = services.TemplateFromRecord(catalogRecord)
		} else {
			if req.Description == "" {
				return apiError(e, http.StatusBadRequest, "description is required")
			}
			category, _ := services.NormalizeCategory(req.Category)
			unitType, _ := services.NormalizeUnitType(req.UnitType)
			template = services.LineItemTemplate{
				Category:          category,
				Name:              req.Description,
				UnitType:          unitType,
				MaterialUnitCost:  req.MaterialUnitCost,
				LaborHoursPerUnit: req.LaborHoursPerUnit,
			}
		}

		params := services.ParamsFromEstimateRecord(estimate)
		item := services.CreateLineItem(template, req.Quantity, params, "")

		col, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("line_item_add: %v", err)
			return apiError(e, http.StatusInternalServerError, "Line items collection missing")
		}

		record := core.NewRecord(col)
		record.Set("estimate", estimate.Id)
		record.Set("sort_order", nextSortOrder(app, estimate.Id))
		services.ApplyLineItemToRecord(item, record)

		if err := app.Save(record); err != nil {
			log.Printf("line_item_add: save: %v", err)
			return apiError(e, http.StatusBadRequest, "Failed to save line item")
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("line_item_add: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusCreated, resp)
	}
}

// nextSortOrder returns one past the current highest sort_order.
func nextSortOrder(app *pocketbase.PocketBase, estimateID string) float64 {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"estimate = {:estimate}",
		"-sort_order",
		1,
		0,
		map[string]any{"estimate": estimateID},
	)
	if err != nil || len(records) == 0 {
		return 1
	}
	return records[0].GetFloat("sort_order") + 1
}

// lineItemUpdateRequest patches the raw inputs of a line item. Derived
// fields in the request are ignored; the engine re-derives them.
type lineItemUpdateRequest struct {
	Category          *string  `json:"category"`
	Description       *string  `json:"description"`
	Quantity          *float64 `json:"quantity"`
	UnitType          *string  `json:"unitType"`
	MaterialUnitCost  *float64 `json:"materialUnitCost"`
	LaborHoursPerUnit *float64 `json:"laborHoursPerUnit"`
}

// HandleLineItemUpdate patches a line item's raw inputs and re-derives its
// extensions and total.
func HandleLineItemUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		record, err := findEstimateLineItem(app, estimate.Id, e.Request.PathValue("itemId"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		var req lineItemUpdateRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		item := services.LineItemFromRecord(record)
		if req.Category != nil {
			category, _ := services.NormalizeCategory(*req.Category)
			item.Category = category
		}
		if req.Description != nil {
			item.Description = *req.Description
		}
		if req.Quantity != nil {
			item.Quantity = *req.Quantity
		}
		if req.UnitType != nil {
			unitType, _ := services.NormalizeUnitType(*req.UnitType)
			item.UnitType = unitType
		}
		if req.MaterialUnitCost != nil {
			item.MaterialUnitCost = *req.MaterialUnitCost
		}
		if req.LaborHoursPerUnit != nil {
			item.LaborHoursPerUnit = *req.LaborHoursPerUnit
		}

		params := services.ParamsFromEstimateRecord(estimate)
		item = services.NormalizeLineItems([]services.LineItem{item}, params)[0]
		services.ApplyLineItemToRecord(item, record)

		if err := app.Save(record); err != nil {
			log.Printf("line_item_update: save: %v", err)
			return apiError(e, http.StatusBadRequest, "Failed to save line item")
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("line_item_update: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// HandleLineItemDelete removes a line item from an estimate.
func HandleLineItemDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		record, err := findEstimateLineItem(app, estimate.Id, e.Request.PathValue("itemId"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Line item not found")
		}

		if err := app.Delete(record); err != nil {
			log.Printf("line_item_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete line item")
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("line_item_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// findEstimateLineItem resolves itemID against either the record id or the
// engine item_id, scoped to one estimate.
func findEstimateLineItem(app *pocketbase.PocketBase, estimateID, itemID string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"estimate = {:estimate} && (id = {:item} || item_id = {:item})",
		"",
		1,
		0,
		map[string]any{"estimate": estimateID, "item": itemID},
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("line item %s not found", itemID)
	}
	return records[0], nil
}
