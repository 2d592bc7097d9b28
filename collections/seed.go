package collections

import (
	"fmt"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type pricingItemDef struct {
	category          string
	name              string
	unitType          string
	materialUnitCost  float64
	laborHoursPerUnit float64
}

type wireDef struct {
	material              string
	wireType              string
	size                  string
	marketPricePer1000ft  float64
	materialCostPer1000ft float64
	laborHoursPer1000ft   float64
}

type conduitDef struct {
	conduitType          string
	typeName             string
	size                 string
	materialCostPer100ft float64
	laborHoursPer100ft   float64
}

// seedPricingItems is a starter catalog covering each category so a fresh
// install has something to search and add from.
var seedPricingItems = []pricingItemDef{
	{"TEMP_POWER", "Temp power pole w/ meter", "E", 850, 12},
	{"TEMP_POWER", "Temp lighting string", "C", 180, 4},
	{"ELECTRICAL_SERVICE", "400A 3ph service entrance", "E", 6500, 60},
	{"ELECTRICAL_SERVICE", "Panelboard 42ckt 225A", "E", 1850, 16},
	{"MECHANICAL_CONNECTIONS", "RTU connection 30A", "E", 225, 6},
	{"MECHANICAL_CONNECTIONS", "Exhaust fan connection", "E", 95, 2.5},
	{"INTERIOR_LIGHTING", "2x4 LED troffer", "E", 95, 0.75},
	{"INTERIOR_LIGHTING", "6\" LED downlight", "E", 48, 0.5},
	{"EXTERIOR_LIGHTING", "Wall pack LED", "E", 210, 1.5},
	{"EXTERIOR_LIGHTING", "Pole light w/ 20' pole", "E", 2400, 10},
	{"POWER_RECEPTACLES", "Duplex receptacle 20A", "E", 28, 0.45},
	{"POWER_RECEPTACLES", "GFCI receptacle 20A", "E", 42, 0.5},
	{"SITE_CONDUITS", "3/4\" EMT conduit", "C", 250, 8},
	{"SITE_CONDUITS", "2\" PVC sch 40 underground", "C", 310, 9},
	{"SECURITY", "Card reader rough-in", "E", 85, 1.5},
	{"FIRE_ALARM", "Smoke detector", "E", 85, 0.5},
	{"FIRE_ALARM", "Pull station", "E", 65, 0.75},
	{"GENERAL_CONDITIONS", "Permits and fees", "Lot", 3000, 0},
	{"GENERAL_CONDITIONS", "As-built drawings", "Lot", 500, 8},
}

// seedWirePricing covers the copper THHN sizes the feeder sizing table can
// recommend. Costs per 1000 ft.
var seedWirePricing = []wireDef{
	{"CU", "THHN", "#12", 180, 145, 5},
	{"CU", "THHN", "#10", 285, 230, 5.5},
	{"CU", "THHN", "#8", 450, 365, 6},
	{"CU", "THHN", "#6", 700, 570, 6.5},
	{"CU", "THHN", "#4", 1100, 900, 7},
	{"CU", "THHN", "#3", 1390, 1130, 7},
	{"CU", "THHN", "#2", 1750, 1420, 7.5},
	{"CU", "THHN", "#1", 2200, 1790, 8},
	{"CU", "THHN", "#1/0", 2780, 2260, 8},
	{"CU", "THHN", "#2/0", 3500, 2850, 8.5},
	{"CU", "THHN", "#3/0", 4400, 2500, 8},
	{"CU", "THHN", "#4/0", 5550, 4500, 9.5},
	{"CU", "THHN", "#250 MCM", 6600, 5350, 10},
	{"CU", "THHN", "#350 MCM", 9200, 7480, 11},
	{"CU", "THHN", "#500 MCM", 13100, 10650, 12.5},
	{"AL", "XHHW", "#1/0", 980, 795, 7},
	{"AL", "XHHW", "#4/0", 1950, 1580, 8.5},
	{"AL", "XHHW", "#350 MCM", 3250, 2640, 10},
}

// seedConduitPricing covers the common trade sizes per conduit family.
// Costs per 100 ft.
var seedConduitPricing = []conduitDef{
	{"EMT_SS", "EMT", "1/2", 95, 4},
	{"EMT_SS", "EMT", "3/4", 135, 4.5},
	{"EMT_SS", "EMT", "1", 210, 5},
	{"EMT_SS", "EMT", "1-1/4", 340, 5.5},
	{"EMT_SS", "EMT", "1-1/2", 410, 6},
	{"EMT_SS", "EMT", "2", 350, 6},
	{"EMT_SS", "EMT", "2-1/2", 870, 8},
	{"EMT_SS", "EMT", "3", 1120, 9},
	{"EMT_SS", "EMT", "4", 1850, 11},
	{"PVC", "PVC", "3/4", 65, 4},
	{"PVC", "PVC", "1", 90, 4.5},
	{"PVC", "PVC", "2", 190, 5.5},
	{"PVC", "PVC", "4", 620, 9},
	{"HW", "RMC", "3/4", 420, 7},
	{"HW", "RMC", "2", 980, 10},
	{"HW", "RMC", "4", 2900, 15},
}

// Seed populates the pricing catalogs on first run. It is idempotent: a
// catalog that already has records is left untouched.
func Seed(app *pocketbase.PocketBase) error {
	if err := seedPricingCatalog(app); err != nil {
		return err
	}
	if err := seedWireCatalog(app); err != nil {
		return err
	}
	return seedConduitCatalog(app)
}

func seedPricingCatalog(app *pocketbase.PocketBase) error {
	empty, err := collectionIsEmpty(app, "pricing_items")
	if err != nil || !empty {
		return err
	}

	col, err := app.FindCollectionByNameOrId("pricing_items")
	if err != nil {
		return fmt.Errorf("pricing_items collection not found: %w", err)
	}

	for _, def := range seedPricingItems {
		record := core.NewRecord(col)
		record.Set("category", def.category)
		record.Set("name", def.name)
		record.Set("unit_type", def.unitType)
		record.Set("material_unit_cost", def.materialUnitCost)
		record.Set("labor_hours_per_unit", def.laborHoursPerUnit)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed pricing item %q: %w", def.name, err)
		}
	}
	return nil
}

func seedWireCatalog(app *pocketbase.PocketBase) error {
	empty, err := collectionIsEmpty(app, "wire_pricing")
	if err != nil || !empty {
		return err
	}

	col, err := app.FindCollectionByNameOrId("wire_pricing")
	if err != nil {
		return fmt.Errorf("wire_pricing collection not found: %w", err)
	}

	for _, def := range seedWirePricing {
		record := core.NewRecord(col)
		record.Set("material", def.material)
		record.Set("wire_type", def.wireType)
		record.Set("name", fmt.Sprintf("%s %s %s", def.size, def.material, def.wireType))
		record.Set("size", def.size)
		record.Set("market_price_per_1000ft", def.marketPricePer1000ft)
		record.Set("material_cost_per_1000ft", def.materialCostPer1000ft)
		record.Set("labor_hours_per_1000ft", def.laborHoursPer1000ft)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed wire %s %s: %w", def.size, def.material, err)
		}
	}
	return nil
}

func seedConduitCatalog(app *pocketbase.PocketBase) error {
	empty, err := collectionIsEmpty(app, "conduit_pricing")
	if err != nil || !empty {
		return err
	}

	col, err := app.FindCollectionByNameOrId("conduit_pricing")
	if err != nil {
		return fmt.Errorf("conduit_pricing collection not found: %w", err)
	}

	for _, def := range seedConduitPricing {
		record := core.NewRecord(col)
		record.Set("conduit_type", def.conduitType)
		record.Set("type_name", def.typeName)
		record.Set("name", fmt.Sprintf("%s\" %s", def.size, def.typeName))
		record.Set("size", def.size)
		record.Set("material_cost_per_100ft", def.materialCostPer100ft)
		record.Set("labor_hours_per_100ft", def.laborHoursPer100ft)
		if err := app.Save(record); err != nil {
			return fmt.Errorf("seed conduit %s %s: %w", def.size, def.typeName, err)
		}
	}
	return nil
}

func collectionIsEmpty(app *pocketbase.PocketBase, name string) (bool, error) {
	records, err := app.FindRecordsByFilter(name, "id != ''", "", 1, 0, nil)
	if err != nil {
		return false, fmt.Errorf("check %s: %w", name, err)
	}
	return len(records) == 0, nil
}
