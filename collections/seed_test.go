package collections_test

import (
	"testing"

	"ohmnibid/collections"
	"ohmnibid/testhelpers"
)

func TestSeed_CreatesCatalogs(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	pricingItems, err := app.FindAllRecords("pricing_items")
	if err != nil {
		t.Fatalf("query pricing_items error: %v", err)
	}
	if len(pricingItems) == 0 {
		t.Fatal("expected seeded pricing items, got none")
	}

	wires, err := app.FindAllRecords("wire_pricing")
	if err != nil {
		t.Fatalf("query wire_pricing error: %v", err)
	}
	if len(wires) == 0 {
		t.Fatal("expected seeded wire pricing, got none")
	}

	conduits, err := app.FindAllRecords("conduit_pricing")
	if err != nil {
		t.Fatalf("query conduit_pricing error: %v", err)
	}
	if len(conduits) == 0 {
		t.Fatal("expected seeded conduit pricing, got none")
	}

	// Every wire row carries a usable per-1000ft cost.
	for _, wire := range wires {
		if wire.GetFloat("material_cost_per_1000ft") <= 0 {
			t.Errorf("wire %q has no material cost", wire.GetString("name"))
		}
	}
}

func TestSeed_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("first Seed() error: %v", err)
	}
	first, _ := app.FindAllRecords("pricing_items")

	if err := collections.Seed(app); err != nil {
		t.Fatalf("second Seed() error: %v", err)
	}
	second, _ := app.FindAllRecords("pricing_items")

	if len(first) != len(second) {
		t.Errorf("second Seed() changed catalog size: %d -> %d", len(first), len(second))
	}
}

func TestSeed_CoversEveryCategory(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	if err := collections.Seed(app); err != nil {
		t.Fatalf("Seed() error: %v", err)
	}

	items, err := app.FindAllRecords("pricing_items")
	if err != nil {
		t.Fatalf("query pricing_items error: %v", err)
	}

	seen := make(map[string]bool)
	for _, item := range items {
		seen[item.GetString("category")] = true
	}

	for _, category := range []string{
		"TEMP_POWER", "ELECTRICAL_SERVICE", "MECHANICAL_CONNECTIONS",
		"INTERIOR_LIGHTING", "EXTERIOR_LIGHTING", "POWER_RECEPTACLES",
		"SITE_CONDUITS", "SECURITY", "FIRE_ALARM", "GENERAL_CONDITIONS",
	} {
		if !seen[category] {
			t.Errorf("no seeded pricing item for category %q", category)
		}
	}
}
