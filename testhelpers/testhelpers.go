// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestEstimate creates an estimate record with default pricing
// parameters and returns it.
func CreateTestEstimate(t *testing.T, app *pocketbase.PocketBase, projectName, projectNumber string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimates")
	if err != nil {
		t.Fatalf("failed to find estimates collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_name", projectName)
	record.Set("project_number", projectNumber)
	record.Set("labor_rate", 118.00)
	record.Set("material_tax_rate", 0.1025)
	record.Set("overhead_profit_rate", 0.0)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimate: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item record linked to an estimate.
// Derived fields are left at zero so tests can exercise re-derivation.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, estimateID, category, description string, quantity float64, unitType string, materialUnitCost, laborHoursPerUnit float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimate", estimateID)
	record.Set("item_id", "test-"+description)
	record.Set("category", category)
	record.Set("description", description)
	record.Set("quantity", quantity)
	record.Set("unit_type", unitType)
	record.Set("material_unit_cost", materialUnitCost)
	record.Set("labor_hours_per_unit", laborHoursPerUnit)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestPricingItem creates a pricing catalog record.
func CreateTestPricingItem(t *testing.T, app *pocketbase.PocketBase, category, name, unitType string, materialUnitCost, laborHoursPerUnit float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		t.Fatalf("failed to find pricing_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("category", category)
	record.Set("name", name)
	record.Set("unit_type", unitType)
	record.Set("material_unit_cost", materialUnitCost)
	record.Set("labor_hours_per_unit", laborHoursPerUnit)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test pricing item: %v", err)
	}

	return record
}

// CreateTestWirePricing creates a wire_pricing catalog record. Costs are
// per 1000 ft.
func CreateTestWirePricing(t *testing.T, app *pocketbase.PocketBase, material, wireType, size string, costPer1000ft, laborPer1000ft float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("wire_pricing")
	if err != nil {
		t.Fatalf("failed to find wire_pricing collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("material", material)
	record.Set("wire_type", wireType)
	record.Set("name", size+" "+material+" "+wireType)
	record.Set("size", size)
	record.Set("market_price_per_1000ft", costPer1000ft)
	record.Set("material_cost_per_1000ft", costPer1000ft)
	record.Set("labor_hours_per_1000ft", laborPer1000ft)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test wire pricing: %v", err)
	}

	return record
}

// CreateTestConduitPricing creates a conduit_pricing catalog record. Costs
// are per 100 ft.
func CreateTestConduitPricing(t *testing.T, app *pocketbase.PocketBase, conduitType, typeName, size string, costPer100ft, laborPer100ft float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("conduit_pricing")
	if err != nil {
		t.Fatalf("failed to find conduit_pricing collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("conduit_type", conduitType)
	record.Set("type_name", typeName)
	record.Set("name", size+`" `+typeName)
	record.Set("size", size)
	record.Set("material_cost_per_100ft", costPer100ft)
	record.Set("labor_hours_per_100ft", laborPer100ft)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test conduit pricing: %v", err)
	}

	return record
}

// AssertJSONContains checks that body contains all specified fragments.
func AssertJSONContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected response to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
