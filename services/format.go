package services

import (
	"fmt"
	"strings"
)

// FormatUSD formats an amount as US dollars with thousands grouping and
// exactly 2 decimal places, e.g. 1234567.8 → "$1,234,567.80".
func FormatUSD(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)
	intPart, decPart, _ := strings.Cut(raw, ".")

	result := "$" + groupThousands(intPart) + "." + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// groupThousands inserts commas every 3 digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 3 {
		result = remaining[len(remaining)-3:] + "," + result
		remaining = remaining[:len(remaining)-3]
	}
	return remaining + "," + result
}

// FormatHours formats a labor-hours value, e.g. 12.5 → "12.50 hrs".
func FormatHours(hours float64) string {
	return fmt.Sprintf("%.2f hrs", hours)
}
