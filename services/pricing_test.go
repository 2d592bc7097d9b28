package services

import (
	"math"
	"strings"
	"testing"
)

var testParams = EstimateParameters{
	LaborRate:          118,
	MaterialTaxRate:    0.1025,
	OverheadProfitRate: 0,
}

func TestCalcLineItemTotal(t *testing.T) {
	tests := []struct {
		name              string
		materialExtension float64
		laborExtension    float64
		params            EstimateParameters
		expect            float64
	}{
		{
			// Spec scenario: 100 units at $2.50/C material and 1.2 hrs/C labor.
			name:              "conduit run at default rates",
			materialExtension: 2.50,
			laborExtension:    1.2,
			params:            testParams,
			expect:            144.36125, // 141.6 labor + 2.76125 material w/ tax
		},
		{
			name:              "overhead applied after tax and labor",
			materialExtension: 100,
			laborExtension:    0,
			params:            EstimateParameters{LaborRate: 118, MaterialTaxRate: 0.10, OverheadProfitRate: 0.20},
			expect:            132, // 100 * 1.10 * 1.20
		},
		{
			name:              "labor only",
			materialExtension: 0,
			laborExtension:    8,
			params:            testParams,
			expect:            944,
		},
		{
			name:              "all zero",
			materialExtension: 0,
			laborExtension:    0,
			params:            testParams,
			expect:            0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcLineItemTotal(tt.materialExtension, tt.laborExtension, tt.params)
			if math.Abs(got-tt.expect) > 1e-9 {
				t.Errorf("CalcLineItemTotal(%v, %v) = %v, want %v",
					tt.materialExtension, tt.laborExtension, got, tt.expect)
			}
		})
	}
}

func TestCalcLineItemTotalDeterministic(t *testing.T) {
	// Same inputs must yield bit-identical results on repeated calls.
	first := CalcLineItemTotal(2.50, 1.2, testParams)
	second := CalcLineItemTotal(2.50, 1.2, testParams)
	if first != second {
		t.Errorf("repeated calls differ: %v vs %v", first, second)
	}
}

func TestCreateLineItem(t *testing.T) {
	template := LineItemTemplate{
		Category:          CategorySiteConduits,
		Name:              `3/4" EMT Conduit`,
		MaterialUnitCost:  2.50,
		UnitType:          UnitPer100,
		LaborHoursPerUnit: 1.2,
		PricingItemID:     "cat-123",
	}

	item := CreateLineItem(template, 100, testParams, "item-1")

	if item.ID != "item-1" {
		t.Errorf("ID = %q, want %q", item.ID, "item-1")
	}
	if item.PricingItemID != "cat-123" {
		t.Errorf("PricingItemID = %q, want %q", item.PricingItemID, "cat-123")
	}
	if item.Category != CategorySiteConduits {
		t.Errorf("Category = %q, want %q", item.Category, CategorySiteConduits)
	}
	if item.Description != template.Name {
		t.Errorf("Description = %q, want %q", item.Description, template.Name)
	}
	if item.MaterialExtension != 2.50 {
		t.Errorf("MaterialExtension = %v, want 2.50", item.MaterialExtension)
	}
	if math.Abs(item.LaborExtension-1.2) > 1e-9 {
		t.Errorf("LaborExtension = %v, want 1.2", item.LaborExtension)
	}
	if math.Abs(item.TotalCost-144.36125) > 1e-9 {
		t.Errorf("TotalCost = %v, want 144.36125", item.TotalCost)
	}
}

func TestCreateLineItemGeneratesID(t *testing.T) {
	template := LineItemTemplate{Category: CategoryGeneralConditions, Name: "Permit", UnitType: UnitLot}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		item := CreateLineItem(template, 1, testParams, "")
		if item.ID == "" {
			t.Fatal("expected a generated id, got empty string")
		}
		if !strings.Contains(item.ID, "-") {
			t.Errorf("generated id %q missing timestamp-suffix separator", item.ID)
		}
		if seen[item.ID] {
			t.Fatalf("duplicate generated id %q", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestNormalizeLineItems(t *testing.T) {
	items := []LineItem{
		{
			ID:                "a",
			Category:          CategorySiteConduits,
			Description:       "Conduit",
			Quantity:          100,
			UnitType:          UnitPer100,
			MaterialUnitCost:  2.50,
			LaborHoursPerUnit: 1.2,
			// Stale derived fields that must be overwritten.
			MaterialExtension: 9999,
			LaborExtension:    9999,
			TotalCost:         9999,
		},
		{
			ID:               "b",
			Category:         CategoryGeneralConditions,
			Description:      "Bad numerics",
			Quantity:         math.NaN(),
			UnitType:         UnitEach,
			MaterialUnitCost: math.Inf(1),
		},
	}

	got := NormalizeLineItems(items, testParams)

	if got[0].MaterialExtension != 2.50 {
		t.Errorf("MaterialExtension = %v, want 2.50", got[0].MaterialExtension)
	}
	if math.Abs(got[0].TotalCost-144.36125) > 1e-9 {
		t.Errorf("TotalCost = %v, want 144.36125", got[0].TotalCost)
	}

	// Non-finite inputs coerce to zero, so every derived field is zero.
	if got[1].Quantity != 0 || got[1].MaterialUnitCost != 0 {
		t.Errorf("non-finite inputs not coerced: qty=%v cost=%v", got[1].Quantity, got[1].MaterialUnitCost)
	}
	if got[1].MaterialExtension != 0 || got[1].LaborExtension != 0 || got[1].TotalCost != 0 {
		t.Errorf("derived fields not zeroed: %+v", got[1])
	}

	// Applying normalization twice is a no-op on the second pass.
	again := NormalizeLineItems(got, testParams)
	for i := range got {
		if got[i] != again[i] {
			t.Errorf("second normalization changed item %d: %+v vs %+v", i, got[i], again[i])
		}
	}
}

func TestNormalizeLineItemsEmpty(t *testing.T) {
	got := NormalizeLineItems(nil, testParams)
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d items", len(got))
	}
}
