package services

import "math"

// EstimateTotals is the aggregated roll-up of an estimate. It is stateless:
// recomputed from the line items and parameters on every read, never
// incrementally maintained.
type EstimateTotals struct {
	CategoryTotals       map[EstimateCategory]float64 `json:"categoryTotals"`
	TotalMaterial        float64                      `json:"totalMaterial"`
	TotalMaterialWithTax float64                      `json:"totalMaterialWithTax"`
	TotalLaborHours      float64                      `json:"totalLaborHours"`
	TotalLaborCost       float64                      `json:"totalLaborCost"`
	Subtotal             float64                      `json:"subtotal"`
	OverheadProfit       float64                      `json:"overheadProfit"`
	FinalBid             float64                      `json:"finalBid"`
	PricePerSqFt         *float64                     `json:"pricePerSqFt,omitempty"`
}

// CalcEstimateTotals sums line items into per-category and whole-bid totals.
// Every category appears in CategoryTotals even with no items. FinalBid
// always rounds up to the next whole dollar; that is the bid-rounding policy,
// not floating point cleanup. Pass squareFootage <= 0 to omit PricePerSqFt.
func CalcEstimateTotals(lineItems []LineItem, params EstimateParameters, squareFootage float64) EstimateTotals {
	categoryTotals := make(map[EstimateCategory]float64, len(CategoryOrder))
	for _, cat := range CategoryOrder {
		categoryTotals[cat] = 0
	}

	var totalMaterial, totalLaborHours float64
	for _, item := range lineItems {
		if _, ok := categoryTotals[item.Category]; ok {
			categoryTotals[item.Category] += item.TotalCost
		}
		totalMaterial += item.MaterialExtension
		totalLaborHours += item.LaborExtension
	}

	totalMaterialWithTax := totalMaterial * (1 + params.MaterialTaxRate)
	totalLaborCost := totalLaborHours * params.LaborRate

	subtotal := totalMaterialWithTax + totalLaborCost
	overheadProfit := subtotal * params.OverheadProfitRate
	finalBid := math.Ceil(subtotal + overheadProfit)

	totals := EstimateTotals{
		CategoryTotals:       categoryTotals,
		TotalMaterial:        totalMaterial,
		TotalMaterialWithTax: totalMaterialWithTax,
		TotalLaborHours:      totalLaborHours,
		TotalLaborCost:       totalLaborCost,
		Subtotal:             subtotal,
		OverheadProfit:       overheadProfit,
		FinalBid:             finalBid,
	}

	if squareFootage > 0 {
		perSqFt := finalBid / squareFootage
		totals.PricePerSqFt = &perSqFt
	}

	return totals
}
