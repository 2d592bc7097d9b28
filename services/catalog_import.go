package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportError represents a single field-level error on one row.
type ImportError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// CatalogImportResult is returned after parsing and validating an uploaded
// pricing catalog file. Rows with errors are reported and skipped; valid
// rows import regardless.
type CatalogImportResult struct {
	TotalRows int                `json:"total_rows"`
	ValidRows int                `json:"valid_rows"`
	ErrorRows int                `json:"error_rows"`
	Errors    []ImportError      `json:"errors"`
	Items     []LineItemTemplate `json:"-"`
	FileName  string             `json:"-"`
}

// catalogColumns maps recognized header labels to canonical field keys.
var catalogColumns = map[string]string{
	"category":             "category",
	"description":          "description",
	"name":                 "description",
	"unit":                 "unit_type",
	"unit type":            "unit_type",
	"uom":                  "unit_type",
	"material unit cost":   "material_unit_cost",
	"material cost":        "material_unit_cost",
	"labor hours":          "labor_hours_per_unit",
	"labor hours per unit": "labor_hours_per_unit",
	"labor hours/unit":     "labor_hours_per_unit",
}

// ParseCatalogFile parses and validates an uploaded pricing catalog file
// (.csv or .xlsx). Category and unit tokens normalize leniently with their
// documented fallbacks; a missing description or an unmapped required
// column is a per-row error.
func ParseCatalogFile(file io.Reader, fileName string) (*CatalogImportResult, error) {
	var headers []string
	var dataRows [][]string
	var err error

	lowerName := strings.ToLower(fileName)
	switch {
	case strings.HasSuffix(lowerName, ".csv"):
		headers, dataRows, err = parseCatalogCSV(file)
	case strings.HasSuffix(lowerName, ".xlsx"):
		headers, dataRows, err = parseCatalogExcel(file)
	default:
		return nil, fmt.Errorf("unsupported file format: must be .csv or .xlsx")
	}
	if err != nil {
		return nil, err
	}

	// Map headers to field keys.
	columnKeys := make([]string, len(headers))
	for i, h := range headers {
		norm := strings.ToLower(strings.TrimSpace(h))
		norm = strings.TrimSuffix(norm, " *")
		columnKeys[i] = catalogColumns[strings.TrimSpace(norm)]
	}

	result := &CatalogImportResult{
		TotalRows: len(dataRows),
		FileName:  fileName,
	}

	errorRowSet := make(map[int]bool)
	for rowIdx, row := range dataRows {
		rowNum := rowIdx + 2 // 1-indexed, +1 for header row

		rowData := make(map[string]string)
		for colIdx, key := range columnKeys {
			if key == "" {
				continue
			}
			value := ""
			if colIdx < len(row) {
				value = strings.TrimSpace(row[colIdx])
			}
			rowData[key] = value
		}

		if rowData["description"] == "" {
			result.Errors = append(result.Errors, ImportError{
				Row:     rowNum,
				Field:   "Description",
				Message: "Description is required",
			})
			errorRowSet[rowNum] = true
			continue
		}

		category, _ := NormalizeCategory(rowData["category"])
		unitType, _ := NormalizeUnitType(rowData["unit_type"])

		result.Items = append(result.Items, LineItemTemplate{
			Category:          category,
			Name:              rowData["description"],
			UnitType:          unitType,
			MaterialUnitCost:  parsePastedNumber(rowData["material_unit_cost"]),
			LaborHoursPerUnit: parsePastedNumber(rowData["labor_hours_per_unit"]),
		})
	}

	result.ErrorRows = len(errorRowSet)
	result.ValidRows = result.TotalRows - result.ErrorRows

	return result, nil
}

// parseCatalogCSV reads a CSV file and returns headers + data rows.
func parseCatalogCSV(file io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return allRows[0], allRows[1:], nil
}

// parseCatalogExcel reads an xlsx file and returns headers + data rows from
// the first sheet.
func parseCatalogExcel(file io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("file must contain a header row and at least one data row")
	}

	return rows[0], rows[1:], nil
}

// GenerateImportErrorReport creates a downloadable .xlsx file from catalog
// import errors.
func GenerateImportErrorReport(errors []ImportError) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Errors"
	defaultSheet := f.GetSheetName(0)
	f.SetSheetName(defaultSheet, sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DC2626"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    thinBorders(),
	})

	f.SetCellValue(sheet, "A1", "Row #")
	f.SetCellValue(sheet, "B1", "Field")
	f.SetCellValue(sheet, "C1", "Error")
	f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 8)
	f.SetColWidth(sheet, "B", "B", 22)
	f.SetColWidth(sheet, "C", "C", 55)

	for i, e := range errors {
		row := fmt.Sprintf("%d", i+2)
		f.SetCellValue(sheet, "A"+row, e.Row)
		f.SetCellValue(sheet, "B"+row, e.Field)
		f.SetCellValue(sheet, "C"+row, e.Message)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write error report: %w", err)
	}
	return buf.Bytes(), nil
}
