package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the testing outcome recorded for a criterion
type Status string

// Checklist statuses
const (
	StatusPending       Status = "pending"
	StatusPass          Status = "pass"
	StatusFail          Status = "fail"
	StatusNotApplicable Status = "na"
)

// ErrInvalidStatus is returned for a status name that is not one of the
// checklist statuses
var ErrInvalidStatus = errors.New("unknown status")

// ParseStatus converts user input into a Status. Accepts "n/a" for na.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return StatusPending, nil
	case "pass":
		return StatusPass, nil
	case "fail":
		return StatusFail, nil
	case "na", "n/a":
		return StatusNotApplicable, nil
	default:
		return "", fmt.Errorf("%w %q (want pass, fail, na or pending)", ErrInvalidStatus, s)
	}
}

// TestResult is a criterion enriched with the tester's findings
type TestResult struct {
	Criterion  Criterion `json:"criterion"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes,omitempty"`
	Screenshot string    `json:"screenshot,omitempty"` // Path or URL of the evidence image
}

// Summary counts results by status
type Summary struct {
	Total         int `json:"total"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	NotApplicable int `json:"notApplicable"`
	Pending       int `json:"pending"`
}

// Summarize counts the statuses of results
func Summarize(results []TestResult) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusPass:
			s.Passed++
		case StatusFail:
			s.Failed++
		case StatusNotApplicable:
			s.NotApplicable++
		default:
			s.Pending++
		}
	}
	return s
}

// ComplianceRate returns passed / (total - not applicable) as a percentage.
// Returns 0 when every criterion is not applicable.
func (s Summary) ComplianceRate() float64 {
	applicable := s.Total - s.NotApplicable
	if applicable <= 0 {
		return 0
	}
	return float64(s.Passed) / float64(applicable) * 100
}

// Completed returns the number of results that are no longer pending
func (s Summary) Completed() int {
	return s.Total - s.Pending
}

// TestRun is a saved set of results
type TestRun struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Date    time.Time    `json:"date"`
	Results []TestResult `json:"results"`
	Summary Summary      `json:"summary"`
}
