package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"ohmnibid/services"
)

// feederQuoteRequest prices a feeder run. WireSize may be omitted when
// BreakerSize is given; the copper sizing table picks it. ApplyMarkup is
// opt-in: feeder math is raw material and labor by default.
type feederQuoteRequest struct {
	WireSize       string `json:"wireSize"`
	WireMaterial   string `json:"wireMaterial"` // CU or AL, default CU
	WireType       string `json:"wireType"`     // THHN, XHHW, USE, default THHN
	ConduitType    string `json:"conduitType"`  // EMT_SS, PVC, ... default EMT_SS
	ConduitSize    string `json:"conduitSize"`
	ConductorCount int    `json:"conductorCount"`
	LengthFeet     float64 `json:"lengthFeet"`
	ServiceSize    string `json:"serviceSize"` // e.g. "400A", resolves ampacity multiplier
	BreakerSize    string `json:"breakerSize"` // e.g. "200A", resolves wire size when wireSize empty

	ApplyMarkup        bool     `json:"applyMarkup"`
	LaborRate          *float64 `json:"laborRate"`
	MaterialTaxRate    *float64 `json:"materialTaxRate"`
	OverheadProfitRate *float64 `json:"overheadProfitRate"`
}

type feederQuoteResponse struct {
	Wire               services.WirePricing      `json:"wire"`
	Conduit            services.ConduitPricing   `json:"conduit"`
	AmpacityMultiplier float64                   `json:"ampacityMultiplier"`
	UnitPrice          services.FeederUnitPrice  `json:"unitPrice"`
	Run                services.FeederCalculation `json:"run"`
	MarkedUpTotal      *float64                  `json:"markedUpTotal,omitempty"`
}

// HandleFeederQuote looks up wire and conduit pricing, resolves the ampacity
// multiplier from the service-size table and prices the run.
func HandleFeederQuote(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var req feederQuoteRequest
		if err := decodeJSON(e, &req); err != nil {
			return apiError(e, http.StatusBadRequest, err.Error())
		}

		if req.WireMaterial == "" {
			req.WireMaterial = "CU"
		}
		if req.WireType == "" {
			req.WireType = "THHN"
		}
		if req.ConduitType == "" {
			req.ConduitType = "EMT_SS"
		}
		if req.ConductorCount <= 0 {
			req.ConductorCount = 4
		}
		if req.LengthFeet <= 0 {
			return apiError(e, http.StatusBadRequest, "lengthFeet must be positive")
		}

		if req.WireSize == "" {
			if req.BreakerSize == "" {
				return apiError(e, http.StatusBadRequest, "wireSize or breakerSize is required")
			}
			size, ok := services.CopperWireSizing[normalizeAmps(req.BreakerSize)]
			if !ok {
				return apiError(e, http.StatusUnprocessableEntity, "No wire sizing data for breaker size "+req.BreakerSize)
			}
			req.WireSize = size
		}

		ampacityMultiplier := 1.0
		if req.ServiceSize != "" {
			multiplier, ok := services.AmpacityMultipliers[normalizeAmps(req.ServiceSize)]
			if !ok {
				return apiError(e, http.StatusUnprocessableEntity, "No ampacity data for service size "+req.ServiceSize)
			}
			ampacityMultiplier = multiplier
		}

		wireRecord, err := findWirePricing(app, req.WireMaterial, req.WireType, req.WireSize)
		if err != nil {
			return apiError(e, http.StatusNotFound, "No wire pricing for "+req.WireSize+" "+req.WireMaterial+" "+req.WireType)
		}
		wire := services.WirePricingFromRecord(wireRecord)

		conduitRecord, err := findConduitPricing(app, req.ConduitType, req.ConduitSize)
		if err != nil {
			return apiError(e, http.StatusNotFound, "No conduit pricing for "+req.ConduitSize+`" `+req.ConduitType)
		}
		conduit := services.ConduitPricingFromRecord(conduitRecord)

		unitPrice := services.CalcFeederPrice(wire, conduit, req.ConductorCount, ampacityMultiplier)
		run := services.CalcFeederRun(wire, conduit, req.ConductorCount, req.LengthFeet, ampacityMultiplier)

		resp := feederQuoteResponse{
			Wire:               wire,
			Conduit:            conduit,
			AmpacityMultiplier: ampacityMultiplier,
			UnitPrice:          unitPrice,
			Run:                run,
		}

		if req.ApplyMarkup {
			params := services.MergeParameters(services.ParameterOverrides{
				LaborRate:          req.LaborRate,
				MaterialTaxRate:    req.MaterialTaxRate,
				OverheadProfitRate: req.OverheadProfitRate,
			})
			total := services.CalcLineItemTotal(run.MaterialCost, run.LaborHours, params)
			resp.MarkedUpTotal = &total
		}

		return e.JSON(http.StatusOK, resp)
	}
}

// normalizeAmps uppercases and appends the trailing A if missing, so "400"
// and "400a" both hit the tables.
func normalizeAmps(value string) string {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized != "" && !strings.HasSuffix(normalized, "A") {
		normalized += "A"
	}
	return normalized
}

func findWirePricing(app *pocketbase.PocketBase, material, wireType, size string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"wire_pricing",
		"material = {:material} && wire_type = {:wireType} && size = {:size}",
		"",
		1,
		0,
		map[string]any{"material": material, "wireType": wireType, "size": size},
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNoCatalogRow
	}
	return records[0], nil
}

func findConduitPricing(app *pocketbase.PocketBase, conduitType, size string) (*core.Record, error) {
	records, err := app.FindRecordsByFilter(
		"conduit_pricing",
		"conduit_type = {:conduitType} && size = {:size}",
		"",
		1,
		0,
		map[string]any{"conduitType": conduitType, "size": size},
	)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errNoCatalogRow
	}
	return records[0], nil
}

var errNoCatalogRow = errors.New("no matching catalog row")
