package services

import "strings"

// EstimateCategory is one of the ten fixed work categories an electrical
// bid is broken down into.
type EstimateCategory string

const (
	CategoryTempPower             EstimateCategory = "TEMP_POWER"
	CategoryElectricalService     EstimateCategory = "ELECTRICAL_SERVICE"
	CategoryMechanicalConnections EstimateCategory = "MECHANICAL_CONNECTIONS"
	CategoryInteriorLighting      EstimateCategory = "INTERIOR_LIGHTING"
	CategoryExteriorLighting      EstimateCategory = "EXTERIOR_LIGHTING"
	CategoryPowerReceptacles      EstimateCategory = "POWER_RECEPTACLES"
	CategorySiteConduits          EstimateCategory = "SITE_CONDUITS"
	CategorySecurity              EstimateCategory = "SECURITY"
	CategoryFireAlarm             EstimateCategory = "FIRE_ALARM"
	CategoryGeneralConditions     EstimateCategory = "GENERAL_CONDITIONS"
)

// CategoryOrder lists all categories in the order they appear on the
// summary sheet. Aggregation iterates this slice so every category shows
// up in totals even when it has no line items.
var CategoryOrder = []EstimateCategory{
	CategoryTempPower,
	CategoryElectricalService,
	CategoryMechanicalConnections,
	CategoryInteriorLighting,
	CategoryExteriorLighting,
	CategoryPowerReceptacles,
	CategorySiteConduits,
	CategorySecurity,
	CategoryFireAlarm,
	CategoryGeneralConditions,
}

var categorySet = func() map[EstimateCategory]bool {
	set := make(map[EstimateCategory]bool, len(CategoryOrder))
	for _, c := range CategoryOrder {
		set[c] = true
	}
	return set
}()

// NormalizeCategory maps a free-form category string to a canonical
// EstimateCategory. Case and surrounding whitespace are ignored and inner
// spaces collapse to underscores, so "general conditions" and
// "GENERAL_CONDITIONS" both match. Unrecognized values fall back to
// GENERAL_CONDITIONS; the second return value reports the fallback.
func NormalizeCategory(value string) (EstimateCategory, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	normalized = strings.Join(strings.Fields(normalized), "_")
	if categorySet[EstimateCategory(normalized)] {
		return EstimateCategory(normalized), false
	}
	return CategoryGeneralConditions, true
}

// IsValidCategory reports whether value is one of the ten fixed categories.
func IsValidCategory(value string) bool {
	return categorySet[EstimateCategory(value)]
}
