package services

// EstimateParameters are the global rates a calculation runs under.
// Rates are fractional multipliers (0.1025 = 10.25%), not percentages.
// The engine treats a parameter set as read-only; callers pass it
// explicitly into every calculation.
type EstimateParameters struct {
	LaborRate          float64 `json:"laborRate"`
	MaterialTaxRate    float64 `json:"materialTaxRate"`
	OverheadProfitRate float64 `json:"overheadProfitRate"`
}

// Business defaults carried over from the original rate workbook.
const (
	DefaultLaborRate          = 118.00
	DefaultMaterialTaxRate    = 0.1025
	DefaultOverheadProfitRate = 0.0
)

// DefaultParameters returns a fresh copy of the default parameter set.
func DefaultParameters() EstimateParameters {
	return EstimateParameters{
		LaborRate:          DefaultLaborRate,
		MaterialTaxRate:    DefaultMaterialTaxRate,
		OverheadProfitRate: DefaultOverheadProfitRate,
	}
}

// MergeParameters overlays caller-supplied overrides onto the defaults.
// Nil override fields keep the default value. Used by the tool layer,
// where chat callers rarely supply a full parameter set.
func MergeParameters(overrides ParameterOverrides) EstimateParameters {
	params := DefaultParameters()
	if overrides.LaborRate != nil {
		params.LaborRate = *overrides.LaborRate
	}
	if overrides.MaterialTaxRate != nil {
		params.MaterialTaxRate = *overrides.MaterialTaxRate
	}
	if overrides.OverheadProfitRate != nil {
		params.OverheadProfitRate = *overrides.OverheadProfitRate
	}
	return params
}

// ParameterOverrides is a partial parameter set; nil means "use default".
type ParameterOverrides struct {
	LaborRate          *float64 `json:"laborRate"`
	MaterialTaxRate    *float64 `json:"materialTaxRate"`
	OverheadProfitRate *float64 `json:"overheadProfitRate"`
}
