package services

import "fmt"

// WirePricing is a catalog row for a wire type and size. Costs and labor
// are stored per 1000 ft.
type WirePricing struct {
	Material              string  `json:"material"` // CU or AL
	Type                  string  `json:"type"`     // THHN, XHHW, USE
	Name                  string  `json:"name"`
	Size                  string  `json:"size"`
	MarketPricePer1000ft  float64 `json:"marketPricePer1000ft"`
	MaterialCostPer1000ft float64 `json:"materialCostPer1000ft"`
	LaborHoursPer1000ft   float64 `json:"laborHoursPer1000ft"`
}

// ConduitPricing is a catalog row for a conduit type and size. Costs and
// labor are stored per 100 ft.
type ConduitPricing struct {
	Type                 string  `json:"type"` // EMT_SS, EMT_COMP, HW, IMC, PVC, PVC_GRC
	TypeName             string  `json:"typeName"`
	Name                 string  `json:"name"`
	Size                 string  `json:"size"`
	MaterialCostPer100ft float64 `json:"materialCostPer100ft"`
	LaborHoursPer100ft   float64 `json:"laborHoursPer100ft"`
}

// FeederUnitPrice is the combined wire+conduit price per 100 ft of run.
type FeederUnitPrice struct {
	MaterialCostPer100ft float64 `json:"materialCostPer100ft"`
	LaborHoursPer100ft   float64 `json:"laborHoursPer100ft"`
}

// FeederCalculation is a priced feeder run. Costs are raw material and
// labor, before any markup; callers that need a bid-ready figure run the
// result through the markup waterfall themselves.
type FeederCalculation struct {
	MaterialCost float64 `json:"materialCost"`
	LaborHours   float64 `json:"laborHours"`
	Description  string  `json:"description"`
}

// CalcFeederPrice combines a wire and a conduit into a per-100-ft assembly
// price. Wire is stored per 1000 ft, so the conductor-count conversion to
// per 100 ft divides by 10. The ampacity multiplier is caller-supplied data
// reflecting service-size derating.
func CalcFeederPrice(wire WirePricing, conduit ConduitPricing, conductorCount int, ampacityMultiplier float64) FeederUnitPrice {
	wireCostPer100ft := wire.MaterialCostPer1000ft * float64(conductorCount) / 10
	materialCostPer100ft := (wireCostPer100ft + conduit.MaterialCostPer100ft) * ampacityMultiplier

	wireLaborPer100ft := wire.LaborHoursPer1000ft * float64(conductorCount) / 10
	laborHoursPer100ft := (wireLaborPer100ft + conduit.LaborHoursPer100ft) * ampacityMultiplier

	return FeederUnitPrice{
		MaterialCostPer100ft: materialCostPer100ft,
		LaborHoursPer100ft:   laborHoursPer100ft,
	}
}

// CalcFeederRun scales a feeder assembly price linearly to a run length.
// No markup is applied here; see FeederCalculation.
func CalcFeederRun(wire WirePricing, conduit ConduitPricing, conductorCount int, lengthFeet, ampacityMultiplier float64) FeederCalculation {
	unitPrice := CalcFeederPrice(wire, conduit, conductorCount, ampacityMultiplier)

	return FeederCalculation{
		MaterialCost: unitPrice.MaterialCostPer100ft * lengthFeet / 100,
		LaborHours:   unitPrice.LaborHoursPer100ft * lengthFeet / 100,
		Description: fmt.Sprintf("%.0f' of %d-%s %s in %s\" %s",
			lengthFeet, conductorCount, wire.Size, wire.Material, conduit.Size, conduit.TypeName),
	}
}

// AmpacityMultipliers maps a service size to the feeder derating multiplier
// used when sizing parallel runs. Reference data from the rate workbook.
var AmpacityMultipliers = map[string]float64{
	"4000A": 10,
	"3000A": 10,
	"2500A": 7,
	"2000A": 6,
	"1600A": 5,
	"1200A": 4,
	"1000A": 3,
	"800A":  2,
	"600A":  2,
	"400A":  1,
	"250A":  1,
	"225A":  1,
	"200A":  1,
	"150A":  1,
	"125A":  1,
	"100A":  1,
}

// CopperWireSizing maps a breaker ampacity to the recommended copper wire
// size. Reference data, not derived.
var CopperWireSizing = map[string]string{
	"15A":  "#14",
	"20A":  "#12",
	"30A":  "#10",
	"40A":  "#8",
	"50A":  "#6",
	"60A":  "#6",
	"70A":  "#4",
	"80A":  "#4",
	"90A":  "#3",
	"100A": "#3",
	"110A": "#2",
	"125A": "#1",
	"150A": "#1/0",
	"175A": "#2/0",
	"200A": "#3/0",
	"225A": "#4/0",
	"250A": "#250 MCM",
	"300A": "#350 MCM",
	"350A": "#400 MCM",
	"400A": "#500 MCM",
	"500A": "#600 MCM",
	"600A": "#750 MCM",
}
