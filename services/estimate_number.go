package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatEstimateNumber constructs an estimate number from its components.
func formatEstimateNumber(year int, sequence int) string {
	return fmt.Sprintf("EST-%d-%03d", year, sequence)
}

// GenerateEstimateNumber creates the next estimate number for the calendar
// year of now. Format: EST-{year}-{sequence}, 3-digit zero-padded sequence
// counted per year.
func GenerateEstimateNumber(app *pocketbase.PocketBase, now time.Time) (string, error) {
	year := now.Year()
	prefix := fmt.Sprintf("EST-%d-", year)

	existing, err := app.FindRecordsByFilter(
		"estimates",
		"project_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{"prefix": prefix + "%"},
	)
	if err != nil {
		// Collection missing or empty; start at 1.
		existing = nil
	}

	return formatEstimateNumber(year, len(existing)+1), nil
}
