package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/harrison/wcagcheck/internal/models"
)

// MarkdownExporter renders a report with a summary list and a results table
type MarkdownExporter struct {
	Language string

	// htmlCells wraps level and status in styled spans and escapes user
	// text, for rendering through HTMLExporter
	htmlCells bool
}

// Export implements Exporter
func (me *MarkdownExporter) Export(run *models.TestRun) ([]byte, error) {
	if err := checkRun(run); err != nil {
		return nil, err
	}

	s := models.Summarize(run.Results)
	var sb strings.Builder

	sb.WriteString("# WCAG 2.2 Accessibility Test Report\n\n")
	sb.WriteString(fmt.Sprintf("**Test Name**: %s\n\n", me.text(run.Name)))
	sb.WriteString(fmt.Sprintf("**Test Date**: %s\n\n", run.Date.Format("2006-01-02 15:04")))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total Criteria**: %d\n", s.Total))
	sb.WriteString(fmt.Sprintf("- **Passed**: %d\n", s.Passed))
	sb.WriteString(fmt.Sprintf("- **Failed**: %d\n", s.Failed))
	sb.WriteString(fmt.Sprintf("- **Not Applicable**: %d\n", s.NotApplicable))
	sb.WriteString(fmt.Sprintf("- **Pending**: %d\n", s.Pending))
	sb.WriteString(fmt.Sprintf("- **Compliance Rate**: %s\n", complianceRate(s)))
	sb.WriteString("\n")

	sb.WriteString("## Detailed Results\n\n")
	if len(run.Results) == 0 {
		sb.WriteString("No criteria were tested.\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString("| WCAG ID | Level | Title | Status | Notes |\n")
	sb.WriteString("|---------|-------|-------|--------|-------|\n")
	for _, r := range run.Results {
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			me.text(r.Criterion.ID),
			me.level(r.Criterion.Level),
			me.text(title(r.Criterion, me.Language)),
			me.status(r.Status),
			me.text(r.Notes)))
	}
	return []byte(sb.String()), nil
}

// text makes s safe for a single table cell
func (me *MarkdownExporter) text(s string) string {
	if me.htmlCells {
		s = html.EscapeString(s)
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func (me *MarkdownExporter) level(l models.Level) string {
	if me.htmlCells {
		return fmt.Sprintf(`<span class="level-%s">%s</span>`, l, l)
	}
	return string(l)
}

func (me *MarkdownExporter) status(s models.Status) string {
	if me.htmlCells {
		return fmt.Sprintf(`<span class="status status-%s">%s</span>`, s, statusLabel(s))
	}
	return statusLabel(s)
}
