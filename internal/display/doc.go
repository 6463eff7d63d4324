// Package display formats terminal output for the wcagcheck CLI.
//
// # Progress
//
// ProgressBar renders "[=====     ] 3/8 (37%)" bars; QuestionHeader wraps one
// around the current questionnaire question:
//
//	display.QuestionHeader(out, idx, total, display.ColorEnabled(out))
//
// # Badges
//
// LevelBadge and StatusBadge render conformance levels and checklist statuses.
// Color is applied only when the caller asks for it, normally the result of
// ColorEnabled, so redirected output stays plain.
//
// # Warnings
//
//	w := display.Warning{
//	    Title:      "Impact mismatch",
//	    Message:    "q3 declares 6 criteria but removes 8",
//	    Items:      []string{"1.3.4", "2.5.7"},
//	    Suggestion: "Update the question's impact in the catalog",
//	}
//	w.Display(os.Stderr)
//
// All functions accept io.Writer for testability.
package display
