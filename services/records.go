package services

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// LineItemFromRecord maps a line_items record onto the calculation type.
// Stored derived fields come along for the ride but callers must normalize
// before trusting them.
func LineItemFromRecord(record *core.Record) LineItem {
	return LineItem{
		ID:                record.GetString("item_id"),
		PricingItemID:     record.GetString("pricing_item"),
		Category:          EstimateCategory(record.GetString("category")),
		Description:       record.GetString("description"),
		Quantity:          record.GetFloat("quantity"),
		UnitType:          UnitType(record.GetString("unit_type")),
		MaterialUnitCost:  record.GetFloat("material_unit_cost"),
		LaborHoursPerUnit: record.GetFloat("labor_hours_per_unit"),
		MaterialExtension: record.GetFloat("material_extension"),
		LaborExtension:    record.GetFloat("labor_extension"),
		TotalCost:         record.GetFloat("total_cost"),
	}
}

// ApplyLineItemToRecord writes a line item's fields back onto its record,
// derived fields included.
func ApplyLineItemToRecord(item LineItem, record *core.Record) {
	record.Set("item_id", item.ID)
	record.Set("pricing_item", item.PricingItemID)
	record.Set("category", string(item.Category))
	record.Set("description", item.Description)
	record.Set("quantity", item.Quantity)
	record.Set("unit_type", string(item.UnitType))
	record.Set("material_unit_cost", item.MaterialUnitCost)
	record.Set("labor_hours_per_unit", item.LaborHoursPerUnit)
	record.Set("material_extension", item.MaterialExtension)
	record.Set("labor_extension", item.LaborExtension)
	record.Set("total_cost", item.TotalCost)
}

// ParamsFromEstimateRecord reads the estimate's stored parameter set. The
// fields are populated with defaults at creation, so stored values are
// authoritative, including an explicit zero.
func ParamsFromEstimateRecord(record *core.Record) EstimateParameters {
	return EstimateParameters{
		LaborRate:          record.GetFloat("labor_rate"),
		MaterialTaxRate:    record.GetFloat("material_tax_rate"),
		OverheadProfitRate: record.GetFloat("overhead_profit_rate"),
	}
}

// ApplyParamsToRecord writes a parameter set onto an estimate record.
func ApplyParamsToRecord(params EstimateParameters, record *core.Record) {
	record.Set("labor_rate", params.LaborRate)
	record.Set("material_tax_rate", params.MaterialTaxRate)
	record.Set("overhead_profit_rate", params.OverheadProfitRate)
}

// ProjectInfoFromRecord maps an estimate record's header fields.
func ProjectInfoFromRecord(record *core.Record) ProjectInfo {
	return ProjectInfo{
		ProjectName:   record.GetString("project_name"),
		ProjectNumber: record.GetString("project_number"),
		Location:      record.GetString("location"),
		GCName:        record.GetString("gc_name"),
		ContactName:   record.GetString("contact_name"),
		PreparedBy:    record.GetString("prepared_by"),
		Date:          record.GetString("estimate_date"),
		SquareFootage: record.GetFloat("square_footage"),
	}
}

// TemplateFromRecord maps a pricing_items catalog record.
func TemplateFromRecord(record *core.Record) LineItemTemplate {
	return LineItemTemplate{
		Category:          EstimateCategory(record.GetString("category")),
		Name:              record.GetString("name"),
		UnitType:          UnitType(record.GetString("unit_type")),
		MaterialUnitCost:  record.GetFloat("material_unit_cost"),
		LaborHoursPerUnit: record.GetFloat("labor_hours_per_unit"),
		PricingItemID:     record.Id,
	}
}

// WirePricingFromRecord maps a wire_pricing catalog record.
func WirePricingFromRecord(record *core.Record) WirePricing {
	return WirePricing{
		Material:              record.GetString("material"),
		Type:                  record.GetString("wire_type"),
		Name:                  record.GetString("name"),
		Size:                  record.GetString("size"),
		MarketPricePer1000ft:  record.GetFloat("market_price_per_1000ft"),
		MaterialCostPer1000ft: record.GetFloat("material_cost_per_1000ft"),
		LaborHoursPer1000ft:   record.GetFloat("labor_hours_per_1000ft"),
	}
}

// ConduitPricingFromRecord maps a conduit_pricing catalog record.
func ConduitPricingFromRecord(record *core.Record) ConduitPricing {
	return ConduitPricing{
		Type:                 record.GetString("conduit_type"),
		TypeName:             record.GetString("type_name"),
		Name:                 record.GetString("name"),
		Size:                 record.GetString("size"),
		MaterialCostPer100ft: record.GetFloat("material_cost_per_100ft"),
		LaborHoursPer100ft:   record.GetFloat("labor_hours_per_100ft"),
	}
}

// LoadEstimateLineItems returns an estimate's line item records in stored
// order, oldest first.
func LoadEstimateLineItems(app *pocketbase.PocketBase, estimateID string) ([]*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"line_items",
		"estimate = {:estimate}",
		"sort_order,created",
		0,
		0,
		map[string]any{"estimate": estimateID},
	)
	if err != nil {
		return nil, fmt.Errorf("load line items for estimate %s: %w", estimateID, err)
	}
	return records, nil
}

// NormalizeStoredLineItems re-derives extensions and totals for every line
// item in storage against its estimate's parameter set, saving only rows
// whose derived fields changed. Runs once at startup so legacy rows with
// stale or corrupted derived values heal without waiting for an edit.
func NormalizeStoredLineItems(app *pocketbase.PocketBase) error {
	estimates, err := app.FindAllRecords("estimates")
	if err != nil {
		return fmt.Errorf("load estimates: %w", err)
	}

	healed := 0
	for _, estimate := range estimates {
		params := ParamsFromEstimateRecord(estimate)

		records, err := LoadEstimateLineItems(app, estimate.Id)
		if err != nil {
			return err
		}

		for _, record := range records {
			stored := LineItemFromRecord(record)
			normalized := NormalizeLineItems([]LineItem{stored}, params)[0]
			if normalized == stored {
				continue
			}

			ApplyLineItemToRecord(normalized, record)
			if err := app.Save(record); err != nil {
				return fmt.Errorf("normalize line item %s: %w", record.Id, err)
			}
			healed++
		}
	}

	if healed > 0 {
		log.Printf("normalized %d stored line items", healed)
	}
	return nil
}
