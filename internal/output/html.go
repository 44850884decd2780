package output

import (
	"bytes"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

const htmlHeader = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>AI Patch Doctor Report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; color: #1f2328; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #d1d9e0; padding: 0.4rem 0.6rem; text-align: left; }
th { background: #f6f8fa; }
code { background: #f6f8fa; padding: 0.1rem 0.3rem; border-radius: 4px; font-size: 85%; }
blockquote { color: #59636e; border-left: 0.25rem solid #d1d9e0; margin: 0; padding: 0 1rem; }
details { margin: 1rem 0; }
</style>
</head>
<body>
`

const htmlFooter = "</body>\n</html>\n"

// HTMLFormatter renders the markdown report to a standalone HTML page.
type HTMLFormatter struct{}

func (f *HTMLFormatter) Format(w io.Writer, r *report.Report) error {
	var buf bytes.Buffer
	md := &MarkdownFormatter{}
	if err := md.Format(&buf, r); err != nil {
		return err
	}

	if _, err := io.WriteString(w, htmlHeader); err != nil {
		return err
	}

	// The markdown renderer emits <details> blocks; raw HTML must pass
	// through for them to survive conversion.
	conv := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(ghtml.WithUnsafe()),
	)
	if err := conv.Convert(buf.Bytes(), w); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	_, err := io.WriteString(w, htmlFooter)
	return err
}
