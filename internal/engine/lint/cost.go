package lint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

var tokenLimitRe = regexp.MustCompile(`(?i)(max_tokens|maxtokens|max_output_tokens|maxoutputtokens)\s*[=:]\s*(\d+)`)

// maxTokensCostThreshold is the token budget above which a single
// completion is flagged as a cost risk.
const maxTokensCostThreshold = 4000

// expensiveModels are flagged when they appear without any sign of cost
// awareness in the file. Model names live inside string literals, so this
// check deliberately skips the non-code heuristic.
var expensiveModels = []string{"gpt-4", "claude-opus", "claude-3-opus", "o1-pro"}

var costAwarenessMarkers = []string{"cost", "price", "budget"}

// DetectCost flags calls with no token limit, token limits large enough to
// be a cost risk, and expensive models used without any cost estimation.
func DetectCost(path string, lines []string) []types.Issue {
	anchor := FirstCallLine(lines)
	if anchor == 0 {
		return nil
	}

	var issues []types.Issue

	limitLine := 0
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "max_tokens") &&
			!strings.Contains(strings.ToLower(line), "maxtokens") &&
			!strings.Contains(strings.ToLower(line), "max_output_tokens") {
			continue
		}
		if IsNonCode(line, "max_tokens") {
			continue
		}
		limitLine = i + 1
		break
	}

	if limitLine == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryCost,
			Severity:       types.SeverityError,
			File:           path,
			Line:           anchor,
			Message:        "No token limit on AI API calls; a single request can generate unbounded output and unbounded cost",
			Suggestion:     "Set max_tokens (e.g. max_tokens=2048) on every completion call",
			LocallyFixable: true,
		})
	} else if m := tokenLimitRe.FindStringSubmatch(lines[limitLine-1]); m != nil {
		// A non-numeric limit simply skips the threshold check.
		if value, err := strconv.Atoi(m[2]); err == nil && value > maxTokensCostThreshold {
			issues = append(issues, types.Issue{
				Category:       types.CategoryCost,
				Severity:       types.SeverityWarning,
				File:           path,
				Line:           limitLine,
				Message:        fmt.Sprintf("Token limit of %d is very high; this is a cost risk", value),
				Suggestion:     "Lower max_tokens to what the response actually needs",
				LocallyFixable: true,
			})
		}
	}

	if modelLine, model := findExpensiveModel(lines); modelLine > 0 {
		if containsAnyFold(lines, costAwarenessMarkers...) == 0 {
			issues = append(issues, types.Issue{
				Category:       types.CategoryCost,
				Severity:       types.SeverityWarning,
				File:           path,
				Line:           modelLine,
				Message:        fmt.Sprintf("Expensive model %q used without any cost estimation", model),
				Suggestion:     "Estimate cost before expensive-model calls, or use a cheaper model for non-critical paths",
				LocallyFixable: true,
			})
		}
	}

	return issues
}

func findExpensiveModel(lines []string) (int, string) {
	for i, line := range lines {
		for _, model := range expensiveModels {
			if strings.Contains(line, `"`+model) || strings.Contains(line, `'`+model) {
				return i + 1, model
			}
		}
	}
	return 0, ""
}
