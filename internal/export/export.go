// Package export renders saved test runs as JSON, CSV, Markdown or HTML
// reports.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/harrison/wcagcheck/internal/filelock"
	"github.com/harrison/wcagcheck/internal/models"
)

// Format names a report format
type Format string

// Supported formats
const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ErrUnknownFormat is returned for a format name that is not supported
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported formats
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatMarkdown, FormatHTML}
}

// ParseFormat converts a user supplied name into a Format. "md" is accepted
// for markdown.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Extension returns the file extension without the dot
func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// Exporter renders a test run
type Exporter interface {
	Export(run *models.TestRun) ([]byte, error)
}

// New returns the exporter for format, localized to lang
func New(format Format, lang string) (Exporter, error) {
	switch format {
	case FormatJSON:
		return &JSONExporter{Language: lang, Pretty: true}, nil
	case FormatCSV:
		return &CSVExporter{Language: lang}, nil
	case FormatMarkdown:
		return &MarkdownExporter{Language: lang}, nil
	case FormatHTML:
		return &HTMLExporter{Language: lang}, nil
	default:
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}
}

var separators = regexp.MustCompile(`[\s/\\]+`)

// Filename builds wcag-test-<name>-<YYYY-MM-DD>.<ext> with runs of whitespace
// and path separators in the name replaced by dashes
func Filename(runName string, format Format, date time.Time) string {
	name := separators.ReplaceAllString(strings.TrimSpace(runName), "-")
	return fmt.Sprintf("wcag-test-%s-%s.%s", name, date.Format("2006-01-02"), format.Extension())
}

// WriteFile renders run and writes it into dir under Filename, holding a
// lock on the target so concurrent exports never interleave. Returns the
// written path.
func WriteFile(dir string, run *models.TestRun, format Format, lang string) (string, error) {
	exp, err := New(format, lang)
	if err != nil {
		return "", err
	}
	data, err := exp.Export(run)
	if err != nil {
		return "", fmt.Errorf("export %s as %s: %w", run.Name, format, err)
	}

	path := filepath.Join(dir, Filename(run.Name, format, run.Date))
	if err := filelock.LockAndWrite(path, data); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

func checkRun(run *models.TestRun) error {
	if run == nil {
		return fmt.Errorf("test run cannot be nil")
	}
	return nil
}

func title(c models.Criterion, lang string) string {
	return c.Title.Get(lang, models.DefaultLanguage)
}

func statusLabel(s models.Status) string {
	switch s {
	case models.StatusPass:
		return "Pass"
	case models.StatusFail:
		return "Fail"
	case models.StatusNotApplicable:
		return "N/A"
	default:
		return "Pending"
	}
}

func complianceRate(s models.Summary) string {
	return fmt.Sprintf("%.1f%%", s.ComplianceRate())
}
