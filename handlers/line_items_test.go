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

func TestHandleLineItemAdd_Manual(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Add Test", "EST-2026-001")

	handler := HandleLineItemAdd(app)
	body := `{"category": "SITE_CONDUITS", "description": "3/4\" EMT Conduit", "quantity": 100, "unitType": "C", "materialUnitCost": 2.5, "laborHoursPerUnit": 1.2}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimates/%s/items", estimate.Id), strings.NewReader(body))
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(resp.LineItems))
	}
	item := resp.LineItems[0]
	// Per-hundred extension: 100 * 2.5 / 100 = 2.5.
	if item.MaterialExtension != 2.5 {
		t.Errorf("materialExtension = %v, want 2.5", item.MaterialExtension)
	}
	if item.LaborExtension != 1.2 {
		t.Errorf("laborExtension = %v, want 1.2", item.LaborExtension)
	}
	if item.ID == "" {
		t.Error("expected generated line item id")
	}
}

func TestHandleLineItemAdd_FromCatalog(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Catalog Add", "EST-2026-001")
	catalogItem := testhelpers.CreateTestPricingItem(t, app,
		"FIRE_ALARM", "Smoke detector", "E", 85, 0.5)

	handler := HandleLineItemAdd(app)
	body := fmt.Sprintf(`{"pricingItemId": %q, "quantity": 6}`, catalogItem.Id)
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimates/%s/items", estimate.Id), strings.NewReader(body))
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp estimateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	item := resp.LineItems[0]
	if item.Description != "Smoke detector" {
		t.Errorf("description = %q, want catalog name", item.Description)
	}
	if item.MaterialExtension != 510 {
		t.Errorf("materialExtension = %v, want 510 (6 x 85)", item.MaterialExtension)
	}
	if item.PricingItemID != catalogItem.Id {
		t.Errorf("pricingItemId = %q, want %q", item.PricingItemID, catalogItem.Id)
	}
}

func TestHandleLineItemAdd_LenientTokens(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Lenient", "EST-2026-001")

	handler := HandleLineItemAdd(app)
	// Unknown category and unit fall back instead of erroring.
	body := `{"category": "PLUMBING", "description": "Mystery", "quantity": 1, "unitType": "BOX", "materialUnitCost": 10}`
	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/estimates/%s/items", estimate.Id), strings.NewReader(body))
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp estimateResponse
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if string(resp.LineItems[0].Category) != "GENERAL_CONDITIONS" {
		t.Errorf("category = %q, want GENERAL_CONDITIONS fallback", resp.LineItems[0].Category)
	}
	if string(resp.LineItems[0].UnitType) != "E" {
		t.Errorf("unitType = %q, want E fallback", resp.LineItems[0].UnitType)
	}
}

func TestHandleLineItemUpdate_RederivesTotals(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Update", "EST-2026-001")
	record := testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 0)

	handler := HandleLineItemUpdate(app)
	body := `{"quantity": 2}`
	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/estimates/%s/items/%s", estimate.Id, record.Id), strings.NewReader(body))
	req.SetPathValue("id", estimate.Id)
	req.SetPathValue("itemId", record.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	reloaded, err := app.FindRecordById("line_items", record.Id)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.GetFloat("material_extension") != 6000 {
		t.Errorf("material_extension = %v, want 6000 after quantity change", reloaded.GetFloat("material_extension"))
	}
}

func TestHandleLineItemUpdate_WrongEstimate(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimateA := testhelpers.CreateTestEstimate(t, app, "A", "EST-2026-001")
	estimateB := testhelpers.CreateTestEstimate(t, app, "B", "EST-2026-002")
	record := testhelpers.CreateTestLineItem(t, app, estimateA.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 0)

	handler := HandleLineItemUpdate(app)
	req := httptest.NewRequest(http.MethodPatch,
		fmt.Sprintf("/api/estimates/%s/items/%s", estimateB.Id, record.Id), strings.NewReader(`{"quantity": 2}`))
	req.SetPathValue("id", estimateB.Id)
	req.SetPathValue("itemId", record.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for cross-estimate access, got %d", rec.Code)
	}
}

func TestHandleLineItemDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Delete", "EST-2026-001")
	record := testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 0)

	handler := HandleLineItemDelete(app)
	req := httptest.NewRequest(http.MethodDelete,
		fmt.Sprintf("/api/estimates/%s/items/%s", estimate.Id, record.Id), nil)
	req.SetPathValue("id", estimate.Id)
	req.SetPathValue("itemId", record.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, err := app.FindRecordById("line_items", record.Id); err == nil {
		t.Error("line item still exists after delete")
	}
}
