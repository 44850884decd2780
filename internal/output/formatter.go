// Package output formats doctor reports for terminal (ANSI), JSON,
// Markdown, and HTML output.
package output

import (
	"io"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

// ToolVersion is the ai-patch-doctor version reported in rendered output.
var ToolVersion = "dev"

// Formatter is the interface for outputting doctor reports.
type Formatter interface {
	Format(w io.Writer, r *report.Report) error
}

// ByName returns the formatter for a --format value, or nil when unknown.
func ByName(name string, noColor bool) Formatter {
	switch name {
	case "terminal", "":
		return &TerminalFormatter{NoColor: noColor}
	case "json":
		return &JSONFormatter{}
	case "markdown":
		return &MarkdownFormatter{}
	case "html":
		return &HTMLFormatter{}
	default:
		return nil
	}
}
