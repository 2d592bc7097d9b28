package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// estimateResponse is the full JSON view of one estimate: header, active
// parameters, normalized line items and recomputed totals.
type estimateResponse struct {
	ID         string                      `json:"id"`
	Project    services.ProjectInfo        `json:"project"`
	Parameters services.EstimateParameters `json:"parameters"`
	LineItems  []services.LineItem         `json:"lineItems"`
	Totals     services.EstimateTotals     `json:"totals"`
}

// estimateCreateRequest carries the header fields plus optional parameter
// overrides. Omitted parameters take the engine defaults.
type estimateCreateRequest struct {
	ProjectName   string  `json:"projectName"`
	ProjectNumber string  `json:"projectNumber"`
	Location      string  `json:"location"`
	GCName        string  `json:"gcName"`
	ContactName   string  `json:"contactName"`
	PreparedBy    string  `json:"preparedBy"`
	Date          string  `json:"date"`
	SquareFootage float64 `json:"squareFootage"`

	LaborRate          *float64 `json:"laborRate"`
	MaterialTaxRate    *float64 `json:"materialTaxRate"`
	OverheadProfitRate *float64 `json:"overheadProfitRate"`
}

// buildEstimateResponse loads an estimate's line items, normalizes them
// against the stored parameters and aggregates totals.
func buildEstimateResponse(app *pocketbase.PocketBase, estimate *core.Record) (estimateResponse, error) {
	params := services.ParamsFromEstimateRecord(estimate)
	project := services.ProjectInfoFromRecord(estimate)

	records, err := services.LoadEstimateLineItems(app, estimate.Id)
	if err != nil {
		return estimateResponse{}, err
	}

	items := make([]services.LineItem, len(records))
	for i, record := range records {
		items[i] = services.LineItemFromRecord(record)
	}
	items = services.NormalizeLineItems(items, params)

	return estimateResponse{
		ID:         estimate.Id,
		Project:    project,
		Parameters: params,
		LineItems:  items,
		Totals:     services.CalcEstimateTotals(items, params, project.SquareFootage),
	}, nil
}

// HandleEstimateCreate creates an estimate. A missing project number gets the
// next sequential EST-{year}-{seq} number.
func HandleEstimateCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req estimateCreateRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}
		if req.ProjectName == "" {
			return apiError(e, http.StatusBadRequest, "projectName is required")
		}

		if req.ProjectNumber == "" {
			number, err := services.GenerateEstimateNumber(app, time.Now())
			if err != nil {
				log.Printf("estimate_create: number generation: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to generate estimate number")
			}
			req.ProjectNumber = number
		}

		params := services.MergeParameters(services.ParameterOverrides{
			LaborRate:          req.LaborRate,
			MaterialTaxRate:    req.MaterialTaxRate,
			OverheadProfitRate: req.OverheadProfitRate,
		})

		col, err := app.FindCollectionByNameOrId("estimates")
		if err != nil {
			log.Printf("estimate_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Estimates collection missing")
		}

		record := core.NewRecord(col)
		record.Set("project_name", req.ProjectName)
		record.Set("project_number", req.ProjectNumber)
		record.Set("location", req.Location)
		record.Set("gc_name", req.GCName)
		record.Set("contact_name", req.ContactName)
		record.Set("prepared_by", req.PreparedBy)
		record.Set("estimate_date", req.Date)
		record.Set("square_footage", req.SquareFootage)
		services.ApplyParamsToRecord(params, record)

		if err := app.Save(record); err != nil {
			log.Printf("estimate_create: save: %v", err)
			return apiError(e, http.StatusBadRequest, "Failed to save estimate")
		}

		resp, err := buildEstimateResponse(app, record)
		if err != nil {
			log.Printf("estimate_create: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusCreated, resp)
	}
}

// HandleEstimateList returns estimate headers, newest first.
func HandleEstimateList(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		records, err := app.FindRecordsByFilter("estimates", "id != ''", "-created", 0, 0, nil)
		if err != nil {
			log.Printf("estimate_list: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimates")
		}

		type listEntry struct {
			ID            string  `json:"id"`
			ProjectName   string  `json:"projectName"`
			ProjectNumber string  `json:"projectNumber"`
			Location      string  `json:"location,omitempty"`
			SquareFootage float64 `json:"squareFootage,omitempty"`
			Created       string  `json:"created"`
		}

		entries := make([]listEntry, len(records))
		for i, record := range records {
			entries[i] = listEntry{
				ID:            record.Id,
				ProjectName:   record.GetString("project_name"),
				ProjectNumber: record.GetString("project_number"),
				Location:      record.GetString("location"),
				SquareFootage: record.GetFloat("square_footage"),
				Created:       record.GetString("created"),
			}
		}
		return e.JSON(http.StatusOK, map[string]any{"estimates": entries})
	}
}

// HandleEstimateView returns the full estimate with normalized items and
// totals.
func HandleEstimateView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("estimate_view: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// estimateUpdateRequest patches header fields and/or parameters. Pointer
// fields distinguish "not sent" from explicit zero.
type estimateUpdateRequest struct {
	ProjectName   *string  `json:"projectName"`
	ProjectNumber *string  `json:"projectNumber"`
	Location      *string  `json:"location"`
	GCName        *string  `json:"gcName"`
	ContactName   *string  `json:"contactName"`
	PreparedBy    *string  `json:"preparedBy"`
	Date          *string  `json:"date"`
	SquareFootage *float64 `json:"squareFootage"`

	LaborRate          *float64 `json:"laborRate"`
	MaterialTaxRate    *float64 `json:"materialTaxRate"`
	OverheadProfitRate *float64 `json:"overheadProfitRate"`
}

// HandleEstimateUpdate patches an estimate. A parameter change re-derives
// every stored line item against the new parameter set before responding.
func HandleEstimateUpdate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}

		var req estimateUpdateRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		setString := func(field string, value *string) {
			if value != nil {
				estimate.Set(field, *value)
			}
		}
		setString("project_name", req.ProjectName)
		setString("project_number", req.ProjectNumber)
		setString("location", req.Location)
		setString("gc_name", req.GCName)
		setString("contact_name", req.ContactName)
		setString("prepared_by", req.PreparedBy)
		setString("estimate_date", req.Date)
		if req.SquareFootage != nil {
			estimate.Set("square_footage", *req.SquareFootage)
		}

		paramsChanged := req.LaborRate != nil || req.MaterialTaxRate != nil || req.OverheadProfitRate != nil
		params := services.ParamsFromEstimateRecord(estimate)
		if req.LaborRate != nil {
			params.LaborRate = *req.LaborRate
		}
		if req.MaterialTaxRate != nil {
			params.MaterialTaxRate = *req.MaterialTaxRate
		}
		if req.OverheadProfitRate != nil {
			params.OverheadProfitRate = *req.OverheadProfitRate
		}
		services.ApplyParamsToRecord(params, estimate)

		if err := app.Save(estimate); err != nil {
			log.Printf("estimate_update: save: %v", err)
			return apiError(e, http.StatusBadRequest, "Failed to save estimate")
		}

		if paramsChanged {
			if err := renormalizeEstimateItems(app, estimate.Id, params); err != nil {
				log.Printf("estimate_update: renormalize: %v", err)
				return apiError(e, http.StatusInternalServerError, "Failed to reprice line items")
			}
		}

		resp, err := buildEstimateResponse(app, estimate)
		if err != nil {
			log.Printf("estimate_update: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to load estimate")
		}
		return e.JSON(http.StatusOK, resp)
	}
}

// renormalizeEstimateItems re-derives and saves every line item of one
// estimate against params.
func renormalizeEstimateItems(app *pocketbase.PocketBase, estimateID string, params services.EstimateParameters) error {
	records, err := services.LoadEstimateLineItems(app, estimateID)
	if err != nil {
		return err
	}
	for _, record := range records {
		item := services.NormalizeLineItems([]services.LineItem{services.LineItemFromRecord(record)}, params)[0]
		services.ApplyLineItemToRecord(item, record)
		if err := app.Save(record); err != nil {
			return err
		}
	}
	return nil
}

// HandleEstimateDelete deletes an estimate; line items cascade.
func HandleEstimateDelete(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimate, err := app.FindRecordById("estimates", e.Request.PathValue("id"))
		if err != nil {
			return apiError(e, http.StatusNotFound, "Estimate not found")
		}
		if err := app.Delete(estimate); err != nil {
			log.Printf("estimate_delete: %v", err)
			return apiError(e, http.StatusInternalServerError, "Failed to delete estimate")
		}
		return e.JSON(http.StatusOK, map[string]bool{"deleted": true})
	}
}
