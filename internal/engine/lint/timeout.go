package lint

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

var timeoutValueRe = regexp.MustCompile(`(?i)timeout\s*[=:]\s*(\d+(?:\.\d+)?)`)

// Timeout thresholds. Python SDKs take seconds, JS SDKs take milliseconds.
const (
	lowTimeoutSeconds  = 10
	lowTimeoutMillis   = 10000
	recommendedSeconds = 30
	recommendedMillis  = 30000
)

// DetectTimeout flags AI API calls with no timeout at all, and timeouts
// configured so low they will abort slow-but-healthy completions. Unlike
// most detectors it scans every line that sets a timeout value, so one file
// can produce several low-timeout warnings.
func DetectTimeout(path string, lines []string) []types.Issue {
	anchor := FirstCallLine(lines)
	if anchor == 0 {
		return nil
	}

	low, recommended, unit := timeoutThresholds(path)

	var issues []types.Issue
	configured := false
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "timeout") || IsNonCode(line, "timeout") {
			continue
		}
		configured = true

		m := timeoutValueRe.FindStringSubmatch(line)
		if m == nil {
			continue // non-numeric timeout expression: nothing to threshold-check
		}
		value, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			continue
		}
		if value < low {
			issues = append(issues, types.Issue{
				Category:       types.CategoryTimeout,
				Severity:       types.SeverityWarning,
				File:           path,
				Line:           i + 1,
				Message:        fmt.Sprintf("Timeout of %s%s is below %d%s; slow completions will be cut off", m[1], unit, int(low), unit),
				Suggestion:     fmt.Sprintf("Raise the timeout to at least %d%s for chat/completion calls", int(recommended), unit),
				LocallyFixable: true,
			})
		}
	}

	if !configured {
		return []types.Issue{{
			Category:       types.CategoryTimeout,
			Severity:       types.SeverityError,
			File:           path,
			Line:           anchor,
			Message:        "No timeout configured on AI API calls; a stalled request will hang indefinitely",
			Suggestion:     fmt.Sprintf("Set an explicit timeout (%d%s or more)", int(recommended), unit),
			LocallyFixable: true,
		}}
	}

	return issues
}

func timeoutThresholds(path string) (low, recommended float64, unit string) {
	if strings.EqualFold(filepath.Ext(path), ".py") {
		return lowTimeoutSeconds, recommendedSeconds, "s"
	}
	return lowTimeoutMillis, recommendedMillis, "ms"
}
