package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// estimateCategories mirrors the engine's fixed category set. Kept as plain
// literals so this package stays free of engine imports.
var estimateCategories = []string{
	"TEMP_POWER",
	"ELECTRICAL_SERVICE",
	"MECHANICAL_CONNECTIONS",
	"INTERIOR_LIGHTING",
	"EXTERIOR_LIGHTING",
	"POWER_RECEPTACLES",
	"SITE_CONDUITS",
	"SECURITY",
	"FIRE_ALARM",
	"GENERAL_CONDITIONS",
}

var unitTypes = []string{"E", "C", "M", "Lot"}

// Setup programmatically creates/ensures the estimates, line_items,
// pricing_items, wire_pricing and conduit_pricing collections exist.
func Setup(app *pocketbase.PocketBase) {
	estimates := ensureCollection(app, "estimates", func(c *core.Collection) {
		c.Fields.Add(&core.TextField{Name: "project_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "project_number", Required: false})
		c.Fields.Add(&core.TextField{Name: "location", Required: false})
		c.Fields.Add(&core.TextField{Name: "gc_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "contact_name", Required: false})
		c.Fields.Add(&core.TextField{Name: "prepared_by", Required: false})
		c.Fields.Add(&core.TextField{Name: "estimate_date", Required: false})
		c.Fields.Add(&core.NumberField{Name: "square_footage", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_tax_rate", Required: false})
		c.Fields.Add(&core.NumberField{Name: "overhead_profit_rate", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "line_items", func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "estimate",
			Required:      true,
			CollectionId:  estimates.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "item_id", Required: true})
		c.Fields.Add(&core.TextField{Name: "pricing_item", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    estimateCategories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "description", Required: true})
		c.Fields.Add(&core.NumberField{Name: "quantity", Required: false})
		c.Fields.Add(&core.SelectField{
			Name:      "unit_type",
			Required:  true,
			Values:    unitTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "material_unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours_per_unit", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_extension", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_extension", Required: false})
		c.Fields.Add(&core.NumberField{Name: "total_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "sort_order", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "pricing_items", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "category",
			Required:  true,
			Values:    estimateCategories,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.SelectField{
			Name:      "unit_type",
			Required:  true,
			Values:    unitTypes,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "material_unit_cost", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours_per_unit", Required: false})
		c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
		c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
	})

	ensureCollection(app, "wire_pricing", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "material",
			Required:  true,
			Values:    []string{"CU", "AL"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.SelectField{
			Name:      "wire_type",
			Required:  true,
			Values:    []string{"THHN", "XHHW", "USE"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "size", Required: true})
		c.Fields.Add(&core.NumberField{Name: "market_price_per_1000ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "material_cost_per_1000ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours_per_1000ft", Required: false})
	})

	ensureCollection(app, "conduit_pricing", func(c *core.Collection) {
		c.Fields.Add(&core.SelectField{
			Name:      "conduit_type",
			Required:  true,
			Values:    []string{"EMT_SS", "EMT_COMP", "HW", "IMC", "PVC", "PVC_GRC"},
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "type_name", Required: true})
		c.Fields.Add(&core.TextField{Name: "name", Required: true})
		c.Fields.Add(&core.TextField{Name: "size", Required: true})
		c.Fields.Add(&core.NumberField{Name: "material_cost_per_100ft", Required: false})
		c.Fields.Add(&core.NumberField{Name: "labor_hours_per_100ft", Required: false})
	})
}

// ensureCollection checks if a collection already exists by name. If it does,
// the existing collection is returned. Otherwise a new base collection is
// created, the addFields callback is invoked to populate its fields, and the
// collection is saved.
func ensureCollection(app *pocketbase.PocketBase, name string, addFields func(*core.Collection)) *core.Collection {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		log.Printf("Collection %q already exists, skipping creation.\n", name)
		return existing
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		log.Fatalf("Failed to create collection %q: %v", name, err)
	}

	fmt.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection
}
