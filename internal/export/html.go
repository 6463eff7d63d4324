package export

import (
	"bytes"
	"fmt"
	"html"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/harrison/wcagcheck/internal/models"
)

const pageStyle = `body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 1200px; margin: 0 auto; padding: 20px; }
h1, h2 { color: #1a73e8; }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th, td { padding: 12px; text-align: left; border-bottom: 1px solid #ddd; }
th { background-color: #f8f9fa; font-weight: bold; }
.status { padding: 4px 12px; border-radius: 4px; font-weight: bold; display: inline-block; }
.status-pass { background: #e6f4ea; color: #1e8e3e; }
.status-fail { background: #fce8e6; color: #d93025; }
.status-na { background: #fef7e0; color: #f9ab00; }
.status-pending { background: #e8eaed; color: #5f6368; }
.level-A { background: #e8f0fe; color: #1967d2; padding: 2px 8px; border-radius: 4px; }
.level-AA { background: #fce8e6; color: #c5221f; padding: 2px 8px; border-radius: 4px; }
@media print { body { padding: 0; } }`

// HTMLExporter renders the Markdown report as a standalone styled page
type HTMLExporter struct {
	Language string
}

// Export implements Exporter
func (he *HTMLExporter) Export(run *models.TestRun) ([]byte, error) {
	if err := checkRun(run); err != nil {
		return nil, err
	}

	md := &MarkdownExporter{Language: he.Language, htmlCells: true}
	source, err := md.Export(run)
	if err != nil {
		return nil, err
	}

	// Unsafe lets the level and status spans through; user text in them is
	// already escaped.
	renderer := goldmark.New(
		goldmark.WithExtensions(extension.Table),
		goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
	)
	var body bytes.Buffer
	if err := renderer.Convert(source, &body); err != nil {
		return nil, fmt.Errorf("failed to render HTML: %w", err)
	}

	lang := he.Language
	if lang == "" {
		lang = models.DefaultLanguage
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html lang=\"%s\">\n<head>\n", html.EscapeString(lang))
	page.WriteString("<meta charset=\"UTF-8\">\n")
	page.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&page, "<title>WCAG Test Report - %s</title>\n", html.EscapeString(run.Name))
	fmt.Fprintf(&page, "<style>\n%s\n</style>\n</head>\n<body>\n", pageStyle)
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
