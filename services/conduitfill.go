package services

import (
	"strconv"
	"strings"
)

// ConduitSizing maps wire gauge to conductor count to the minimum
// code-compliant conduit trade size. Static reference data from the
// fill tables; not derived.
var ConduitSizing = map[string]map[int]string{
	"#12":      {3: `1/2"`, 4: `1/2"`, 6: `3/4"`},
	"#10":      {3: `1/2"`, 4: `3/4"`, 6: `1"`},
	"#8":       {3: `3/4"`, 4: `1"`, 6: `1-1/4"`},
	"#6":       {3: `3/4"`, 4: `1"`, 6: `1-1/4"`},
	"#4":       {3: `1"`, 4: `1-1/4"`, 6: `1-1/2"`},
	"#3":       {3: `1"`, 4: `1-1/4"`, 6: `1-1/2"`},
	"#2":       {3: `1-1/4"`, 4: `1-1/4"`, 6: `2"`},
	"#1":       {3: `1-1/4"`, 4: `1-1/2"`, 6: `2"`},
	"#1/0":     {3: `1-1/2"`, 4: `2"`, 6: `2-1/2"`},
	"#2/0":     {3: `1-1/2"`, 4: `2"`, 6: `2-1/2"`},
	"#3/0":     {3: `2"`, 4: `2-1/2"`, 6: `3"`},
	"#4/0":     {3: `2"`, 4: `2-1/2"`, 6: `3"`},
	"#250 MCM": {3: `2-1/2"`, 4: `3"`, 6: `3-1/2"`},
	"#350 MCM": {3: `3"`, 4: `3"`, 6: `4"`},
	"#500 MCM": {3: `3"`, 4: `3-1/2"`, 6: `4"`},
	"#600 MCM": {3: `3-1/2"`, 4: `4"`, 6: `4"`},
	"#750 MCM": {3: `4"`, 4: `4"`, 6: `4"`},
}

// ConduitFillRequest identifies a proposed wire/conduit combination.
type ConduitFillRequest struct {
	WireSize       string `json:"wireSize"`
	ConductorCount int    `json:"conductorCount"`
	ConduitSize    string `json:"conduitSize"`
}

// ConduitFillResult is a three-valued validation outcome. Valid is nil when
// the sizing tables have no entry for the request ("don't know"), which is
// distinct from false ("known undersized"). Callers must not collapse the
// nil case to a boolean.
type ConduitFillResult struct {
	Valid              *bool  `json:"valid"`
	RecommendedConduit string `json:"recommendedConduit,omitempty"`
	Reason             string `json:"reason"`
}

// ValidateConduitFill checks a proposed conduit size against the sizing
// tables for a wire gauge and conductor count. A requested size at or above
// the recommended size is valid; oversizing is acceptable.
func ValidateConduitFill(req ConduitFillRequest) ConduitFillResult {
	sizing, ok := ConduitSizing[req.WireSize]
	if !ok {
		return ConduitFillResult{Reason: "No sizing data for wire size"}
	}

	recommended, ok := sizing[req.ConductorCount]
	if !ok {
		return ConduitFillResult{Reason: "No sizing data for conductor count"}
	}

	valid := req.ConduitSize == recommended ||
		parseConduitInches(req.ConduitSize) >= parseConduitInches(recommended)

	reason := "Requested conduit meets fill guidance"
	if !valid {
		reason = "Requested conduit undersized"
	}

	return ConduitFillResult{
		Valid:              &valid,
		RecommendedConduit: recommended,
		Reason:             reason,
	}
}

// parseConduitInches converts a trade-size string like `3/4"`, `2"` or
// `1-1/4"` to decimal inches. Unparseable fragments resolve to 0 so that
// malformed input orders below every real size instead of erroring.
func parseConduitInches(value string) float64 {
	clean := strings.ReplaceAll(value, `"`, "")
	if whole, frac, ok := strings.Cut(clean, "-"); ok {
		return parseFloatOrZero(whole) + parseFraction(frac)
	}
	return parseFraction(clean)
}

func parseFraction(value string) float64 {
	if num, den, ok := strings.Cut(value, "/"); ok {
		d := parseFloatOrZero(den)
		if d == 0 {
			return 0
		}
		return parseFloatOrZero(num) / d
	}
	return parseFloatOrZero(value)
}

func parseFloatOrZero(value string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0
	}
	return f
}
