package services

// ExportData holds everything needed to render an estimate export. It is
// always built through BuildExportData so the numbers on the sheet are
// recomputed from raw inputs, never read from stored derived fields.
type ExportData struct {
	ProjectName   string
	ProjectNumber string
	Location      string
	GCName        string
	ContactName   string
	PreparedBy    string
	Date          string

	Parameters EstimateParameters
	LineItems  []LineItem
	Totals     EstimateTotals
}

// BuildExportData normalizes the line items against the parameter set and
// recomputes totals, so exports always reflect the same numbers the grid
// shows.
func BuildExportData(project ProjectInfo, items []LineItem, params EstimateParameters) ExportData {
	normalized := NormalizeLineItems(items, params)
	totals := CalcEstimateTotals(normalized, params, project.SquareFootage)

	return ExportData{
		ProjectName:   project.ProjectName,
		ProjectNumber: project.ProjectNumber,
		Location:      project.Location,
		GCName:        project.GCName,
		ContactName:   project.ContactName,
		PreparedBy:    project.PreparedBy,
		Date:          project.Date,
		Parameters:    params,
		LineItems:     normalized,
		Totals:        totals,
	}
}

// ProjectInfo is the header block of an estimate.
type ProjectInfo struct {
	ProjectName   string  `json:"projectName"`
	ProjectNumber string  `json:"projectNumber,omitempty"`
	Location      string  `json:"location,omitempty"`
	GCName        string  `json:"gcName,omitempty"`
	ContactName   string  `json:"contactName,omitempty"`
	PreparedBy    string  `json:"preparedBy,omitempty"`
	Date          string  `json:"date,omitempty"`
	SquareFootage float64 `json:"squareFootage,omitempty"`
}
