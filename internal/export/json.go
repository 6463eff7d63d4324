package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/harrison/wcagcheck/internal/models"
)

// JSONExporter renders the report document used by the web app's JSON
// download
type JSONExporter struct {
	Language string
	Pretty   bool // Indent with two spaces
}

type jsonReport struct {
	TestName string         `json:"testName"`
	TestDate time.Time      `json:"testDate"`
	Summary  jsonSummary    `json:"summary"`
	Criteria []jsonCriteria `json:"criteria"`
}

type jsonSummary struct {
	Total          int    `json:"total"`
	Passed         int    `json:"passed"`
	Failed         int    `json:"failed"`
	NotApplicable  int    `json:"notApplicable"`
	Pending        int    `json:"pending"`
	ComplianceRate string `json:"complianceRate"`
}

type jsonCriteria struct {
	ID     string        `json:"id"`
	Level  models.Level  `json:"level"`
	Title  string        `json:"title"`
	Status models.Status `json:"status"`
	Notes  string        `json:"notes"`
}

// Export implements Exporter
func (je *JSONExporter) Export(run *models.TestRun) ([]byte, error) {
	if err := checkRun(run); err != nil {
		return nil, err
	}

	summary := models.Summarize(run.Results)
	report := jsonReport{
		TestName: run.Name,
		TestDate: run.Date,
		Summary: jsonSummary{
			Total:          summary.Total,
			Passed:         summary.Passed,
			Failed:         summary.Failed,
			NotApplicable:  summary.NotApplicable,
			Pending:        summary.Pending,
			ComplianceRate: complianceRate(summary),
		},
		Criteria: make([]jsonCriteria, 0, len(run.Results)),
	}
	for _, r := range run.Results {
		report.Criteria = append(report.Criteria, jsonCriteria{
			ID:     r.Criterion.ID,
			Level:  r.Criterion.Level,
			Title:  title(r.Criterion, je.Language),
			Status: r.Status,
			Notes:  r.Notes,
		})
	}

	var data []byte
	var err error
	if je.Pretty {
		data, err = json.MarshalIndent(report, "", "  ")
	} else {
		data, err = json.Marshal(report)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}
