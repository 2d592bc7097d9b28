package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// GenerateEstimateExcel creates an Excel workbook from the given ExportData
// and returns the file contents as a byte slice.
func GenerateEstimateExcel(data ExportData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Estimate"
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	// Column references (A through I).
	columns := []string{"A", "B", "C", "D", "E", "F", "G", "H", "I"}
	lastCol := columns[len(columns)-1]

	widths := []float64{24, 42, 10, 8, 16, 16, 16, 14, 14}
	for i, col := range columns {
		if err := f.SetColWidth(sheetName, col, col, widths[i]); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", col, err)
		}
	}

	// ── Styles ──────────────────────────────────────────────────────────

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}

	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	itemStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create item style: %w", err)
	}

	summaryLabelStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary label style: %w", err)
	}

	summaryValueStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create summary value style: %w", err)
	}

	// ── Header Rows (1-4) ───────────────────────────────────────────────

	if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	title := data.ProjectName
	if title == "" {
		title = "Untitled Estimate"
	}
	f.SetCellValue(sheetName, "A1", sanitizeExcelCell(title))
	f.SetCellStyle(sheetName, "A1", lastCol+"1", titleStyle)

	subRow := 2
	writeSubtitle := func(label, value string) {
		if value == "" {
			return
		}
		cell := fmt.Sprintf("A%d", subRow)
		f.SetCellValue(sheetName, cell, label+": "+sanitizeExcelCell(value))
		f.SetCellStyle(sheetName, cell, cell, subtitleStyle)
		subRow++
	}
	writeSubtitle("Estimate", data.ProjectNumber)
	writeSubtitle("Location", data.Location)
	writeSubtitle("Prepared By", data.PreparedBy)
	writeSubtitle("Date", data.Date)

	// ── Column Headers ──────────────────────────────────────────────────

	headerRow := subRow + 1
	headers := []string{
		"Category", "Description", "Qty", "Unit",
		"Material Unit Cost", "Labor Hours/Unit",
		"Material Extension", "Labor Extension", "Total Cost",
	}
	for i, h := range headers {
		cell := fmt.Sprintf("%s%d", columns[i], headerRow)
		f.SetCellValue(sheetName, cell, h)
	}
	f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), headerStyle)

	// ── Data Rows ───────────────────────────────────────────────────────

	row := headerRow + 1
	for _, item := range data.LineItems {
		rowStr := fmt.Sprintf("%d", row)

		f.SetCellValue(sheetName, "A"+rowStr, string(item.Category))
		f.SetCellValue(sheetName, "B"+rowStr, sanitizeExcelCell(item.Description))
		f.SetCellValue(sheetName, "C"+rowStr, item.Quantity)
		f.SetCellValue(sheetName, "D"+rowStr, string(item.UnitType))
		f.SetCellValue(sheetName, "E"+rowStr, item.MaterialUnitCost)
		f.SetCellValue(sheetName, "F"+rowStr, item.LaborHoursPerUnit)
		f.SetCellValue(sheetName, "G"+rowStr, item.MaterialExtension)
		f.SetCellValue(sheetName, "H"+rowStr, item.LaborExtension)
		f.SetCellValue(sheetName, "I"+rowStr, item.TotalCost)

		f.SetCellStyle(sheetName, "A"+rowStr, lastCol+rowStr, itemStyle)
		row++
	}

	// ── Totals Block ────────────────────────────────────────────────────

	row++
	writeTotal := func(label, value string) {
		rowStr := fmt.Sprintf("%d", row)
		f.SetCellValue(sheetName, "H"+rowStr, label)
		f.SetCellStyle(sheetName, "H"+rowStr, "H"+rowStr, summaryLabelStyle)
		f.SetCellValue(sheetName, "I"+rowStr, value)
		f.SetCellStyle(sheetName, "I"+rowStr, "I"+rowStr, summaryValueStyle)
		row++
	}

	totals := data.Totals
	writeTotal("Total Material:", FormatUSD(totals.TotalMaterial))
	writeTotal("Material w/ Tax:", FormatUSD(totals.TotalMaterialWithTax))
	writeTotal("Total Labor Hours:", FormatHours(totals.TotalLaborHours))
	writeTotal("Total Labor Cost:", FormatUSD(totals.TotalLaborCost))
	writeTotal("Subtotal:", FormatUSD(totals.Subtotal))
	writeTotal("Overhead & Profit:", FormatUSD(totals.OverheadProfit))
	writeTotal("Final Bid:", FormatUSD(totals.FinalBid))
	if totals.PricePerSqFt != nil {
		writeTotal("Price / SqFt:", FormatUSD(*totals.PricePerSqFt))
	}

	// ── Write to buffer ─────────────────────────────────────────────────

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

// thinBorders returns a full thin border set used by tabular styles.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
