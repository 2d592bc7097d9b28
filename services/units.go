package services

import "strings"

// UnitType is the pricing basis for a catalog item: each, per 100 units,
// per 1000 units, or lump-sum lot.
type UnitType string

const (
	UnitEach    UnitType = "E"   // priced per unit
	UnitPer100  UnitType = "C"   // priced per 100 units (e.g. conduit per 100 ft)
	UnitPer1000 UnitType = "M"   // priced per 1000 units (e.g. wire per 1000 ft)
	UnitLot     UnitType = "Lot" // lump sum, behaves like E
)

// UnitTypeOptions lists the valid unit types in display order.
var UnitTypeOptions = []UnitType{UnitEach, UnitPer100, UnitPer1000, UnitLot}

// unitTypeSynonyms maps normalized spellings to a canonical unit type.
var unitTypeSynonyms = map[string]UnitType{
	"E":        UnitEach,
	"EA":       UnitEach,
	"EACH":     UnitEach,
	"C":        UnitPer100,
	"PER 100":  UnitPer100,
	"HUNDRED":  UnitPer100,
	"M":        UnitPer1000,
	"PER 1000": UnitPer1000,
	"THOUSAND": UnitPer1000,
	"LOT":      UnitLot,
	"L":        UnitLot,
}

// NormalizeUnitType maps a free-form unit token to a canonical UnitType.
// Unrecognized or empty tokens fall back to UnitEach; the second return
// value reports whether the fallback was taken, so callers can surface a
// warning without changing the lenient behavior.
func NormalizeUnitType(value string) (UnitType, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return UnitEach, true
	}
	if ut, ok := unitTypeSynonyms[normalized]; ok {
		return ut, false
	}
	return UnitEach, true
}

// ExtendUnits converts a quantity and a per-unit cost into an extension,
// scaling by the unit type. The same function serves material cost and
// labor hours; pass laborHoursPerUnit as unitCost for the latter.
// Unknown unit types extend like UnitEach.
func ExtendUnits(quantity, unitCost float64, unit UnitType) float64 {
	switch unit {
	case UnitPer100:
		return quantity * unitCost / 100
	case UnitPer1000:
		return quantity * unitCost / 1000
	default:
		return quantity * unitCost
	}
}
