package services

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsedLineItem is a factory-ready template plus quantity produced by the
// bulk paste parser.
type ParsedLineItem struct {
	Category          EstimateCategory `json:"category"`
	Description       string           `json:"description"`
	Quantity          float64          `json:"quantity"`
	UnitType          UnitType         `json:"unitType"`
	MaterialUnitCost  float64          `json:"materialUnitCost"`
	LaborHoursPerUnit float64          `json:"laborHoursPerUnit"`
}

// PasteResult carries the successfully parsed items alongside per-line
// errors. Partial success is the designed behavior: a bad line is reported
// and skipped, parsing continues.
type PasteResult struct {
	Items  []ParsedLineItem `json:"items"`
	Errors []string         `json:"errors"`
}

// ParseLineItemPaste parses delimited text rows into line item inputs.
// Each non-blank line splits on the first detected delimiter (pipe, tab,
// then comma). Accepted forms:
//
//	category | description | qty | unit | materialUnitCost | laborHours
//	description | qty | unit | materialUnitCost | laborHours
//
// The 5-column form defaults the category to GENERAL_CONDITIONS. Header
// rows (containing both "description" and "qty") are skipped silently.
// Unrecognized categories and unit tokens fall back to their defaults;
// unparseable numbers become 0.
func ParseLineItemPaste(input string) PasteResult {
	result := PasteResult{}

	var lines []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}

	for i, line := range lines {
		delimiter := detectDelimiter(line)
		if delimiter == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Use | or comma separators.", i+1))
			continue
		}

		parts := strings.Split(line, delimiter)
		for j := range parts {
			parts[j] = strings.TrimSpace(parts[j])
		}

		if isHeaderRow(parts) {
			continue
		}

		var categoryValue, description, quantityValue, unitValue, materialValue, laborValue string
		switch {
		case len(parts) >= 6:
			categoryValue, description, quantityValue, unitValue, materialValue, laborValue =
				parts[0], parts[1], parts[2], parts[3], parts[4], parts[5]
		case len(parts) == 5:
			description, quantityValue, unitValue, materialValue, laborValue =
				parts[0], parts[1], parts[2], parts[3], parts[4]
			categoryValue = string(CategoryGeneralConditions)
		default:
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Expected 5 or 6 columns.", i+1))
			continue
		}

		if description == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("Line %d: Description is required.", i+1))
			continue
		}

		category, _ := NormalizeCategory(categoryValue)
		unitType, _ := NormalizeUnitType(unitValue)

		result.Items = append(result.Items, ParsedLineItem{
			Category:          category,
			Description:       description,
			Quantity:          parsePastedNumber(quantityValue),
			UnitType:          unitType,
			MaterialUnitCost:  parsePastedNumber(materialValue),
			LaborHoursPerUnit: parsePastedNumber(laborValue),
		})
	}

	return result
}

// detectDelimiter returns the first delimiter present, checking pipe, tab
// and comma in that priority order.
func detectDelimiter(line string) string {
	switch {
	case strings.Contains(line, "|"):
		return "|"
	case strings.Contains(line, "\t"):
		return "\t"
	case strings.Contains(line, ","):
		return ","
	default:
		return ""
	}
}

func isHeaderRow(parts []string) bool {
	joined := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(joined, "description") && strings.Contains(joined, "qty")
}

// parsePastedNumber strips currency symbols and thousands separators, then
// parses. Unparseable values default to 0 rather than erroring.
func parsePastedNumber(value string) float64 {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(value)
	cleaned = strings.TrimSpace(cleaned)
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return parsed
}
