package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// calculateEstimateRequest is the stateless pricing tool call: raw line item
// inputs plus optional parameter overrides, nothing persisted.
type calculateEstimateRequest struct {
	SquareFootage float64 `json:"squareFootage"`
	LineItems     []struct {
		Category          string  `json:"category"`
		Description       string  `json:"description"`
		Quantity          float64 `json:"quantity"`
		UnitType          string  `json:"unitType"`
		MaterialUnitCost  float64 `json:"materialUnitCost"`
		LaborHoursPerUnit float64 `json:"laborHoursPerUnit"`
	} `json:"lineItems"`

	LaborRate          *float64 `json:"laborRate"`
	MaterialTaxRate    *float64 `json:"materialTaxRate"`
	OverheadProfitRate *float64 `json:"overheadProfitRate"`
}

// searchCatalogRequest is the tool-call form of catalog search.
type searchCatalogRequest struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

// HandleToolCall dispatches POST /api/tools/{name}. These are the callable
// surfaces an assistant loop drives: every tool is a thin wrapper over the
// same engine the interactive handlers use.
func HandleToolCall(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		name := e.Request.PathValue("name")
		switch name {
		case "calculate_estimate":
			return toolCalculateEstimate(e)
		case "validate_conduit_fill":
			return HandleConduitFill(app)(e)
		case "price_feeder":
			return HandleFeederQuote(app)(e)
		case "search_catalog":
			return toolSearchCatalog(app, e)
		default:
			return apiError(e, http.StatusNotFound, "Unknown tool "+name)
		}
	}
}

func toolCalculateEstimate(e *core.RequestEvent) error {
	var req calculateEstimateRequest
	if err := decodeJSON(e, &req); err != nil {
		return apiError(e, http.StatusBadRequest, err.Error())
	}

	params := services.MergeParameters(services.ParameterOverrides{
		LaborRate:          req.LaborRate,
		MaterialTaxRate:    req.MaterialTaxRate,
		OverheadProfitRate: req.OverheadProfitRate,
	})

	items := make([]services.LineItem, 0, len(req.LineItems))
	for _, raw := range req.LineItems {
		category, _ := services.NormalizeCategory(raw.Category)
		unitType, _ := services.NormalizeUnitType(raw.UnitType)
		items = append(items, services.CreateLineItem(services.LineItemTemplate{
			Category:          category,
			Name:              raw.Description,
			UnitType:          unitType,
			MaterialUnitCost:  raw.MaterialUnitCost,
			LaborHoursPerUnit: raw.LaborHoursPerUnit,
		}, raw.Quantity, params, ""))
	}

	return e.JSON(http.StatusOK, map[string]any{
		"parameters": params,
		"lineItems":  items,
		"totals":     services.CalcEstimateTotals(items, params, req.SquareFootage),
	})
}

func toolSearchCatalog(app *pocketbase.PocketBase, e *core.RequestEvent) error {
	var req searchCatalogRequest
	if err := decodeJSON(e, &req); err != nil {
		return apiError(e, http.StatusBadRequest, err.Error())
	}
	if req.Limit <= 0 {
		req.Limit = 20
	}

	filter := "id != ''"
	bind := map[string]any{}
	if req.Query != "" {
		filter += " && name ~ {:q}"
		bind["q"] = req.Query
	}
	if req.Category != "" {
		category, _ := services.NormalizeCategory(req.Category)
		filter += " && category = {:category}"
		bind["category"] = string(category)
	}

	records, err := app.FindRecordsByFilter("pricing_items", filter, "category,name", req.Limit, 0, bind)
	if err != nil {
		log.Printf("tool search_catalog: %v", err)
		return apiError(e, http.StatusInternalServerError, "Failed to search catalog")
	}

	items := make([]services.LineItemTemplate, len(records))
	for i, record := range records {
		items[i] = services.TemplateFromRecord(record)
	}
	return e.JSON(http.StatusOK, map[string]any{"items": items})
}
