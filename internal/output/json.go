package output

import (
	"encoding/json"
	"io"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
)

// JSONFormatter outputs the full report as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, r *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
