package display

import (
	"github.com/fatih/color"

	"github.com/harrison/wcagcheck/internal/models"
)

// LevelBadge renders a conformance level as "[A]" or "[AA]"
func LevelBadge(level models.Level, colored bool) string {
	text := "[" + string(level) + "]"
	switch level {
	case models.LevelA:
		return paint(colored, text, color.FgBlue)
	case models.LevelAA:
		return paint(colored, text, color.FgMagenta)
	default:
		return text
	}
}

// StatusBadge renders a checklist status with a fixed width of 7
func StatusBadge(status models.Status, colored bool) string {
	switch status {
	case models.StatusPass:
		return paint(colored, "PASS   ", color.FgGreen, color.Bold)
	case models.StatusFail:
		return paint(colored, "FAIL   ", color.FgRed, color.Bold)
	case models.StatusNotApplicable:
		return paint(colored, "N/A    ", color.FgYellow)
	default:
		return paint(colored, "PENDING", color.FgHiBlack)
	}
}

// Success renders a green check line
func Success(message string, colored bool) string {
	return paint(colored, "✓", color.FgGreen) + " " + message
}
