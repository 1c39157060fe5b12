// Package format holds display-side formatting for the rendering boundary.
// Values are formatted from the raw numeric fields, never from pre-rounded
// display artifacts.
package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"backend/internal/models"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders a USD amount with locale digit grouping and two decimals.
func Currency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Percentage renders a numeric value suffixed with "%".
func Percentage(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "%"
}

// Severity buckets used by the rendering side to color tags.
const (
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// StatusSeverity maps an inventory status to its tag severity.
func StatusSeverity(status string) string {
	switch status {
	case models.StatusInStock:
		return SeveritySuccess
	case models.StatusLowStock:
		return SeverityWarning
	default:
		return SeverityDanger
	}
}

// SustainabilitySeverity buckets a 0-10 sustainability score.
func SustainabilitySeverity(score float64) string {
	switch {
	case score >= 7:
		return SeveritySuccess
	case score >= 4:
		return SeverityWarning
	default:
		return SeverityDanger
	}
}

// ReturnRateSeverity buckets a return-rate percentage.
func ReturnRateSeverity(rate float64) string {
	switch {
	case rate >= 10:
		return SeverityDanger
	case rate >= 5:
		return SeverityWarning
	default:
		return SeveritySuccess
	}
}
