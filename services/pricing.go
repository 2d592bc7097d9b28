// Package services provides the deterministic pricing engine for estimates:
// unit extensions, the markup waterfall, line item construction, estimate
// aggregation, feeder pricing and conduit-fill validation. All calculation
// functions are pure; quantities and costs flow in, priced values flow out.
package services

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// LineItemTemplate is a catalog-sourced or manually authored pricing basis,
// independent of quantity.
type LineItemTemplate struct {
	Category          EstimateCategory `json:"category"`
	Name              string           `json:"name"`
	MaterialUnitCost  float64          `json:"materialUnitCost"`
	UnitType          UnitType         `json:"unitType"`
	LaborHoursPerUnit float64          `json:"laborHoursPerUnit"`
	PricingItemID     string           `json:"pricingItemId,omitempty"`
}

// LineItem is a priced row of an estimate. MaterialExtension, LaborExtension
// and TotalCost are derived fields: they are always recomputable from the
// raw inputs plus the active parameters, and every mutation path must
// re-derive them rather than patch them in place.
type LineItem struct {
	ID                string           `json:"id"`
	PricingItemID     string           `json:"pricingItemId,omitempty"`
	Category          EstimateCategory `json:"category"`
	Description       string           `json:"description"`
	Quantity          float64          `json:"quantity"`
	UnitType          UnitType         `json:"unitType"`
	MaterialUnitCost  float64          `json:"materialUnitCost"`
	LaborHoursPerUnit float64          `json:"laborHoursPerUnit"`
	MaterialExtension float64          `json:"materialExtension"`
	LaborExtension    float64          `json:"laborExtension"`
	TotalCost         float64          `json:"totalCost"`
}

// CalcLineItemTotal applies the markup waterfall to a pair of extensions.
// The order is business-governed and must not change: labor rate, then
// material tax, then overhead and profit on the combined subtotal.
// Rounding is deferred to whole-estimate aggregation.
func CalcLineItemTotal(materialExtension, laborExtension float64, params EstimateParameters) float64 {
	laborCost := laborExtension * params.LaborRate
	materialWithTax := materialExtension * (1 + params.MaterialTaxRate)
	subtotal := laborCost + materialWithTax
	return subtotal * (1 + params.OverheadProfitRate)
}

// CreateLineItem builds a fully priced line item from a template and a
// quantity. If id is empty a fresh one is generated; uniqueness only needs
// to hold within one estimate's lifetime.
func CreateLineItem(template LineItemTemplate, quantity float64, params EstimateParameters, id string) LineItem {
	materialExtension := ExtendUnits(quantity, template.MaterialUnitCost, template.UnitType)
	laborExtension := ExtendUnits(quantity, template.LaborHoursPerUnit, template.UnitType)
	totalCost := CalcLineItemTotal(materialExtension, laborExtension, params)

	if id == "" {
		id = GenerateLineItemID()
	}

	return LineItem{
		ID:                id,
		PricingItemID:     template.PricingItemID,
		Category:          template.Category,
		Description:       template.Name,
		Quantity:          quantity,
		UnitType:          template.UnitType,
		MaterialUnitCost:  template.MaterialUnitCost,
		LaborHoursPerUnit: template.LaborHoursPerUnit,
		MaterialExtension: materialExtension,
		LaborExtension:    laborExtension,
		TotalCost:         totalCost,
	}
}

// NormalizeLineItems re-derives extensions and totals for a whole collection
// from their currently stored quantity/unit-cost/unit-type fields. Non-finite
// numeric inputs are coerced to 0 first. This is the required path whenever
// line items are loaded from storage or parameters change; applying it twice
// is a no-op on the second pass.
func NormalizeLineItems(items []LineItem, params EstimateParameters) []LineItem {
	normalized := make([]LineItem, len(items))
	for i, item := range items {
		item.Quantity = finiteOrZero(item.Quantity)
		item.MaterialUnitCost = finiteOrZero(item.MaterialUnitCost)
		item.LaborHoursPerUnit = finiteOrZero(item.LaborHoursPerUnit)

		item.MaterialExtension = ExtendUnits(item.Quantity, item.MaterialUnitCost, item.UnitType)
		item.LaborExtension = ExtendUnits(item.Quantity, item.LaborHoursPerUnit, item.UnitType)
		item.TotalCost = CalcLineItemTotal(item.MaterialExtension, item.LaborExtension, params)

		normalized[i] = item
	}
	return normalized
}

// finiteOrZero coerces NaN and infinities to 0.
func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// GenerateLineItemID returns a timestamp-plus-random-suffix id. Collisions
// within a single estimate are negligible at this entropy.
func GenerateLineItemID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), randomBase36(9))
}

const base36Chars = "0123456789abcdefghijklmnopqrstuvwxyz"

func randomBase36(n int) string {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = base36Chars[rand.Intn(len(base36Chars))]
	}
	return string(buf)
}
