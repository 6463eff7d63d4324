package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/wcagcheck/internal/models"
)

func sampleRun() *models.TestRun {
	results := []models.TestResult{
		{
			Criterion: models.Criterion{ID: "1.1.1", Level: models.LevelA,
				Title: models.LocalizedText{"en": "Non-text Content", "de": "Nicht-Text-Inhalt"}},
			Status: models.StatusPass,
		},
		{
			Criterion: models.Criterion{ID: "1.4.3", Level: models.LevelAA,
				Title: models.LocalizedText{"en": "Contrast (Minimum)", "de": "Kontrast (Minimum)"}},
			Status: models.StatusFail,
			Notes:  `footer "links" <small> | 3.1:1`,
		},
		{
			Criterion: models.Criterion{ID: "2.1.1", Level: models.LevelA, Title: models.LocalizedText{"en": "Keyboard"}},
			Status:    models.StatusNotApplicable,
		},
		{
			Criterion: models.Criterion{ID: "2.4.7", Level: models.LevelAA, Title: models.LocalizedText{"en": "Focus Visible"}},
			Status:    models.StatusPending,
		},
	}
	return &models.TestRun{
		ID:      "run-1",
		Name:    "Shop  checkout",
		Date:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Results: results,
		Summary: models.Summarize(results),
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{"CSV", FormatCSV},
		{"md", FormatMarkdown},
		{"markdown", FormatMarkdown},
		{" html ", FormatHTML},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("pdf")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}

func TestFilename(t *testing.T) {
	date := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "wcag-test-Shop-checkout-2026-03-14.json", Filename("Shop  checkout", FormatJSON, date))
	assert.Equal(t, "wcag-test-home-2026-03-14.md", Filename(" home ", FormatMarkdown, date))
	assert.Equal(t, "wcag-test-a-b-c-2026-03-14.csv", Filename("a\tb\nc", FormatCSV, date))
	assert.Equal(t, "wcag-test-shop-cart-2026-03-14.html", Filename("shop/cart", FormatHTML, date))
}

func TestJSONExport(t *testing.T) {
	data, err := (&JSONExporter{Language: "de", Pretty: true}).Export(sampleRun())
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"testName\"")

	var doc struct {
		TestName string `json:"testName"`
		TestDate string `json:"testDate"`
		Summary  struct {
			Total          int    `json:"total"`
			Passed         int    `json:"passed"`
			Failed         int    `json:"failed"`
			NotApplicable  int    `json:"notApplicable"`
			Pending        int    `json:"pending"`
			ComplianceRate string `json:"complianceRate"`
		} `json:"summary"`
		Criteria []map[string]string `json:"criteria"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Shop  checkout", doc.TestName)
	assert.Equal(t, "2026-03-14T09:30:00Z", doc.TestDate)
	assert.Equal(t, 4, doc.Summary.Total)
	assert.Equal(t, 1, doc.Summary.Passed)
	assert.Equal(t, 1, doc.Summary.Failed)
	assert.Equal(t, 1, doc.Summary.NotApplicable)
	assert.Equal(t, 1, doc.Summary.Pending)
	assert.Equal(t, "33.3%", doc.Summary.ComplianceRate)

	require.Len(t, doc.Criteria, 4)
	assert.Equal(t, map[string]string{
		"id": "1.4.3", "level": "AA", "title": "Kontrast (Minimum)", "status": "fail",
		"notes": `footer "links" <small> | 3.1:1`,
	}, doc.Criteria[1])
	assert.Equal(t, "Keyboard", doc.Criteria[2]["title"], "falls back to English")
}

func TestJSONExportEmptyRun(t *testing.T) {
	data, err := (&JSONExporter{}).Export(&models.TestRun{Name: "empty"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"criteria":[]`)
	assert.Contains(t, string(data), `"complianceRate":"0.0%"`)
}

func TestCSVExport(t *testing.T) {
	data, err := (&CSVExporter{Language: "en"}).Export(sampleRun())
	require.NoError(t, err)

	want := strings.Join([]string{
		`WCAG ID,Level,Title,Status,Notes`,
		`"1.1.1","A","Non-text Content","pass",""`,
		`"1.4.3","AA","Contrast (Minimum)","fail","footer ""links"" <small> | 3.1:1"`,
		`"2.1.1","A","Keyboard","na",""`,
		`"2.4.7","AA","Focus Visible","pending",""`,
		``,
		`Summary`,
		`Total Criteria,4`,
		`Passed,1`,
		`Failed,1`,
		`Not Applicable,1`,
		`Pending,1`,
		`Compliance Rate,33.3%`,
		``,
	}, "\n")
	assert.Equal(t, want, string(data))
}

func TestMarkdownExport(t *testing.T) {
	data, err := (&MarkdownExporter{Language: "en"}).Export(sampleRun())
	require.NoError(t, err)
	md := string(data)

	assert.Contains(t, md, "# WCAG 2.2 Accessibility Test Report")
	assert.Contains(t, md, "**Test Date**: 2026-03-14 09:30")
	assert.Contains(t, md, "- **Compliance Rate**: 33.3%")
	assert.Contains(t, md, "| 1.1.1 | A | Non-text Content | Pass |  |")
	assert.Contains(t, md, `| 1.4.3 | AA | Contrast (Minimum) | Fail | footer "links" <small> \| 3.1:1 |`)
	assert.Contains(t, md, "| 2.1.1 | A | Keyboard | N/A |  |")
}

func TestHTMLExport(t *testing.T) {
	data, err := (&HTMLExporter{Language: "de"}).Export(sampleRun())
	require.NoError(t, err)
	page := string(data)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>\n<html lang=\"de\">"))
	assert.Contains(t, page, "<title>WCAG Test Report - Shop  checkout</title>")
	assert.Contains(t, page, "<table>")
	assert.Contains(t, page, "<th>WCAG ID</th>")
	assert.Contains(t, page, `<span class="status status-fail">Fail</span>`)
	assert.Contains(t, page, `<span class="level-AA">AA</span>`)
	assert.Contains(t, page, "Kontrast (Minimum)")
	assert.NotContains(t, page, "<small>", "notes are escaped")
	assert.Contains(t, page, "&lt;small&gt;")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	run := sampleRun()

	for _, f := range Formats() {
		t.Run(string(f), func(t *testing.T) {
			path, err := WriteFile(dir, run, f, "en")
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, Filename(run.Name, f, run.Date)), path)

			written, err := os.ReadFile(path)
			require.NoError(t, err)
			exp, err := New(f, "en")
			require.NoError(t, err)
			want, err := exp.Export(run)
			require.NoError(t, err)
			assert.Equal(t, want, written)
		})
	}

	_, err := WriteFile(dir, run, Format("pdf"), "en")
	assert.True(t, errors.Is(err, ErrUnknownFormat))
}
