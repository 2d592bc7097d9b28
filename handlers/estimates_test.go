package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ohmnibid/testhelpers"
)

func TestHandleEstimateCreate_Valid(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app)

	body := `{"projectName": "Riverside Office Park", "location": "Sacramento, CA", "squareFootage": 12000}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.Project.ProjectName != "Riverside Office Park" {
		t.Errorf("projectName = %q", resp.Project.ProjectName)
	}
	// Default parameters apply when not overridden.
	if resp.Parameters.LaborRate != 118.00 {
		t.Errorf("laborRate = %v, want default 118", resp.Parameters.LaborRate)
	}
	// Auto-generated estimate number.
	if !strings.HasPrefix(resp.Project.ProjectNumber, "EST-") {
		t.Errorf("projectNumber = %q, want EST- prefix", resp.Project.ProjectNumber)
	}
	// All ten categories present even with no items.
	if len(resp.Totals.CategoryTotals) != 10 {
		t.Errorf("category totals has %d entries, want 10", len(resp.Totals.CategoryTotals))
	}
}

func TestHandleEstimateCreate_MissingName(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app)

	req := httptest.NewRequest(http.MethodPost, "/api/estimates", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleEstimateCreate_ParameterOverrides(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateCreate(app)

	body := `{"projectName": "P", "laborRate": 135, "overheadProfitRate": 0.15}`
	req := httptest.NewRequest(http.MethodPost, "/api/estimates", strings.NewReader(body))
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp estimateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Parameters.LaborRate != 135 {
		t.Errorf("laborRate = %v, want 135", resp.Parameters.LaborRate)
	}
	if resp.Parameters.MaterialTaxRate != 0.1025 {
		t.Errorf("materialTaxRate = %v, want default 0.1025", resp.Parameters.MaterialTaxRate)
	}
	if resp.Parameters.OverheadProfitRate != 0.15 {
		t.Errorf("overheadProfitRate = %v, want 0.15", resp.Parameters.OverheadProfitRate)
	}
}

func TestHandleEstimateView(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "View Test", "EST-2026-001")
	testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 40)

	handler := HandleEstimateView(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimates/%s", estimate.Id), nil)
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp estimateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(resp.LineItems))
	}
	// Derived fields are recomputed on load: 1 Lot of 3000 material, 40 hrs.
	item := resp.LineItems[0]
	if item.MaterialExtension != 3000 {
		t.Errorf("materialExtension = %v, want 3000", item.MaterialExtension)
	}
	if item.LaborExtension != 40 {
		t.Errorf("laborExtension = %v, want 40", item.LaborExtension)
	}
	// 40*118 + 3000*1.1025 = 4720 + 3307.5 = 8027.5; ceil -> 8028.
	if resp.Totals.FinalBid != 8028 {
		t.Errorf("finalBid = %v, want 8028", resp.Totals.FinalBid)
	}
}

func TestHandleEstimateView_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleEstimateView(app)

	req := httptest.NewRequest(http.MethodGet, "/api/estimates/missing", nil)
	req.SetPathValue("id", "missing")
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleEstimateList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestEstimate(t, app, "First", "EST-2026-001")
	testhelpers.CreateTestEstimate(t, app, "Second", "EST-2026-002")

	handler := HandleEstimateList(app)
	req := httptest.NewRequest(http.MethodGet, "/api/estimates", nil)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	testhelpers.AssertJSONContains(t, rec.Body.String(), "First", "Second", "EST-2026-002")
}

func TestHandleEstimateUpdate_ParameterChangeReprices(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Reprice", "EST-2026-001")
	record := testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Labor only", 10, "E", 0, 1)

	handler := HandleEstimateUpdate(app)
	body := `{"laborRate": 200, "materialTaxRate": 0, "overheadProfitRate": 0}`
	req := httptest.NewRequest(http.MethodPatch, fmt.Sprintf("/api/estimates/%s", estimate.Id), strings.NewReader(body))
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	// 10 hrs * 200 = 2000 under the new rate.
	if resp.LineItems[0].TotalCost != 2000 {
		t.Errorf("totalCost = %v, want 2000 at new labor rate", resp.LineItems[0].TotalCost)
	}

	// Stored derived fields were rewritten, not just the response.
	reloaded, err := app.FindRecordById("line_items", record.Id)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.GetFloat("total_cost") != 2000 {
		t.Errorf("stored total_cost = %v, want 2000", reloaded.GetFloat("total_cost"))
	}
}

func TestHandleEstimateDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Doomed", "EST-2026-001")
	item := testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 40)

	handler := HandleEstimateDelete(app)
	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/estimates/%s", estimate.Id), nil)
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("estimates", estimate.Id); err == nil {
		t.Error("estimate still exists after delete")
	}
	if _, err := app.FindRecordById("line_items", item.Id); err == nil {
		t.Error("line item survived estimate delete")
	}
}
