package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/harrison/wcagcheck/internal/models"
)

// CSVExporter renders one row per criterion followed by a summary block
type CSVExporter struct {
	Language string
}

// Export implements Exporter
func (ce *CSVExporter) Export(run *models.TestRun) ([]byte, error) {
	if err := checkRun(run); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("WCAG ID,Level,Title,Status,Notes\n")

	// encoding/csv only quotes when needed; rows are always quoted.
	for _, r := range run.Results {
		fields := []string{
			r.Criterion.ID,
			string(r.Criterion.Level),
			title(r.Criterion, ce.Language),
			string(r.Status),
			r.Notes,
		}
		for i, f := range fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quote(f))
		}
		buf.WriteByte('\n')
	}

	s := models.Summarize(run.Results)
	buf.WriteString("\nSummary\n")
	w := csv.NewWriter(&buf)
	rows := [][]string{
		{"Total Criteria", strconv.Itoa(s.Total)},
		{"Passed", strconv.Itoa(s.Passed)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Not Applicable", strconv.Itoa(s.NotApplicable)},
		{"Pending", strconv.Itoa(s.Pending)},
		{"Compliance Rate", complianceRate(s)},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write CSV summary: %w", err)
	}
	return buf.Bytes(), nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
