package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// GenerateBidPDF creates a bid proposal PDF from the given ExportData using
// maroto/v2. It returns the raw PDF bytes or an error.
func GenerateBidPDF(data ExportData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addBidHeader(m, data)
	addBidProjectBlock(m, data)
	addBidLineItemsTable(m, data)
	addBidCategoryTotals(m, data)
	addBidTotals(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate bid PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addBidHeader adds the project name and "BID PROPOSAL" title.
func addBidHeader(m core.Maroto, data ExportData) {
	title := data.ProjectName
	if title == "" {
		title = "Untitled Estimate"
	}

	m.AddRows(
		row.New(10).Add(
			col.New(6).Add(
				text.New(title, props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Left,
				}),
			),
			col.New(6).Add(
				text.New("BID PROPOSAL", props.Text{
					Size:  14,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: &props.Color{Red: 33, Green: 37, Blue: 41},
				}),
			),
		),
	)

	if data.ProjectNumber != "" {
		m.AddRows(
			row.New(8).Add(
				col.New(12).Add(
					text.New(fmt.Sprintf("Estimate #: %s", data.ProjectNumber), props.Text{
						Size:  10,
						Style: fontstyle.Bold,
						Align: align.Right,
					}),
				),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addBidProjectBlock adds project metadata on the left and commercial
// parameters on the right.
func addBidProjectBlock(m core.Maroto, data ExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{
		Size:  8,
		Align: align.Left,
	}
	rightLabelStyle := labelStyle
	rightLabelStyle.Align = align.Right
	rightValueStyle := valueStyle
	rightValueStyle.Align = align.Right

	m.AddRows(
		row.New(6).Add(
			col.New(6).Add(text.New("PROJECT", labelStyle)),
			col.New(6).Add(text.New("PARAMETERS", rightLabelStyle)),
		),
	)

	var left []string
	if data.Location != "" {
		left = append(left, "Location: "+data.Location)
	}
	if data.GCName != "" {
		left = append(left, "GC: "+data.GCName)
	}
	if data.ContactName != "" {
		left = append(left, "Contact: "+data.ContactName)
	}
	if data.PreparedBy != "" {
		left = append(left, "Prepared By: "+data.PreparedBy)
	}
	if data.Date != "" {
		left = append(left, "Date: "+data.Date)
	}

	right := []string{
		fmt.Sprintf("Labor Rate: %s/hr", FormatUSD(data.Parameters.LaborRate)),
		fmt.Sprintf("Material Tax: %.2f%%", data.Parameters.MaterialTaxRate*100),
		fmt.Sprintf("Overhead & Profit: %.2f%%", data.Parameters.OverheadProfitRate*100),
	}

	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	for i := 0; i < rows; i++ {
		leftText := ""
		if i < len(left) {
			leftText = left[i]
		}
		rightText := ""
		if i < len(right) {
			rightText = right[i]
		}
		m.AddRows(
			row.New(6).Add(
				col.New(6).Add(text.New(leftText, valueStyle)),
				col.New(6).Add(text.New(rightText, rightValueStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addBidLineItemsTable adds the line items table with header and body rows.
func addBidLineItemsTable(m core.Maroto, data ExportData) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left
	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(2).Add(text.New("Category", headerTextLeft)).WithStyle(&headerCell),
			col.New(4).Add(text.New("Description", headerTextLeft)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Qty", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Unit", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Material", headerText)).WithStyle(&headerCell),
			col.New(1).Add(text.New("Labor Hrs", headerText)).WithStyle(&headerCell),
			col.New(2).Add(text.New("Total", headerText)).WithStyle(&headerCell),
		),
	)

	bodyText := props.Text{Size: 7, Align: align.Left}
	bodyNum := props.Text{Size: 7, Align: align.Right}
	altBg := &props.Color{Red: 245, Green: 243, Blue: 239}

	for i, item := range data.LineItems {
		r := row.New(6).Add(
			col.New(2).Add(text.New(string(item.Category), bodyText)),
			col.New(4).Add(text.New(item.Description, bodyText)),
			col.New(1).Add(text.New(fmt.Sprintf("%g", item.Quantity), bodyNum)),
			col.New(1).Add(text.New(string(item.UnitType), bodyNum)),
			col.New(1).Add(text.New(FormatUSD(item.MaterialExtension), bodyNum)),
			col.New(1).Add(text.New(fmt.Sprintf("%.2f", item.LaborExtension), bodyNum)),
			col.New(2).Add(text.New(FormatUSD(item.TotalCost), bodyNum)),
		)
		if i%2 == 1 {
			r.WithStyle(&props.Cell{BackgroundColor: altBg})
		}
		m.AddRows(r)
	}

	m.AddRows(row.New(3))
}

// addBidCategoryTotals adds the per-category roll-up in summary-sheet order.
// Categories with no priced work are skipped on the PDF.
func addBidCategoryTotals(m core.Maroto, data ExportData) {
	labelStyle := props.Text{
		Size:  7,
		Style: fontstyle.Bold,
		Align: align.Left,
		Color: &props.Color{Red: 100, Green: 100, Blue: 100},
	}
	valueStyle := props.Text{Size: 8, Align: align.Left}
	numStyle := props.Text{Size: 8, Align: align.Right}

	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(text.New("CATEGORY TOTALS", labelStyle)),
		),
	)

	for _, cat := range CategoryOrder {
		total := data.Totals.CategoryTotals[cat]
		if total == 0 {
			continue
		}
		m.AddRows(
			row.New(5).Add(
				col.New(8).Add(text.New(string(cat), valueStyle)),
				col.New(4).Add(text.New(FormatUSD(total), numStyle)),
			),
		)
	}

	m.AddRows(row.New(3))
}

// addBidTotals adds the whole-bid totals block with the final bid emphasized.
func addBidTotals(m core.Maroto, data ExportData) {
	labelStyle := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := props.Text{Size: 8, Align: align.Right}

	addTotalRow := func(label, value string) {
		m.AddRows(
			row.New(5).Add(
				col.New(9).Add(text.New(label, labelStyle)),
				col.New(3).Add(text.New(value, valueStyle)),
			),
		)
	}

	totals := data.Totals
	addTotalRow("Total Material:", FormatUSD(totals.TotalMaterial))
	addTotalRow("Material w/ Tax:", FormatUSD(totals.TotalMaterialWithTax))
	addTotalRow("Total Labor Hours:", FormatHours(totals.TotalLaborHours))
	addTotalRow("Total Labor Cost:", FormatUSD(totals.TotalLaborCost))
	addTotalRow("Subtotal:", FormatUSD(totals.Subtotal))
	addTotalRow("Overhead & Profit:", FormatUSD(totals.OverheadProfit))

	finalStyle := props.Text{
		Size:  10,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	m.AddRows(
		row.New(8).Add(
			col.New(9).Add(text.New("FINAL BID:", finalStyle)),
			col.New(3).Add(text.New(FormatUSD(totals.FinalBid), finalStyle)),
		),
	)

	if totals.PricePerSqFt != nil {
		addTotalRow("Price / SqFt:", FormatUSD(*totals.PricePerSqFt))
	}
}
