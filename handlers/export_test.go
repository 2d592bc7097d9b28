package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ohmnibid/testhelpers"
)

func TestHandleEstimateExportExcel(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "Excel Export", "EST-2026-001")
	testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"GENERAL_CONDITIONS", "Permit", 1, "Lot", 3000, 40)

	handler := HandleEstimateExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimates/%s/export/excel", estimate.Id), nil)
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "Excel_Export") {
		t.Errorf("Content-Disposition = %q, want sanitized project name", cd)
	}
	// xlsx files are zip archives.
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")) {
		t.Error("body does not look like an xlsx file")
	}
}

func TestHandleEstimateExportPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	estimate := testhelpers.CreateTestEstimate(t, app, "PDF Export", "EST-2026-001")
	testhelpers.CreateTestLineItem(t, app, estimate.Id,
		"FIRE_ALARM", "Smoke detector", 6, "E", 85, 0.5)

	handler := HandleEstimateExportPDF(app)
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/estimates/%s/export/pdf", estimate.Id), nil)
	req.SetPathValue("id", estimate.Id)
	rec := httptest.NewRecorder()
	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Error("body does not look like a PDF file")
	}
}

func TestHandleEstimateExport_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleEstimateExportExcel(app)
	req := httptest.NewRequest(http.MethodGet, "/api/estimates/missing/export/excel", nil)
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
