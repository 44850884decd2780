package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/gateway"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// MarkdownFormatter outputs the report as GitHub-flavored markdown,
// designed for GitHub Actions Job Summaries and PR comments.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, r *report.Report) error {
	f.printSummary(w, r)
	if r.Scan != nil {
		f.printScan(w, r.Scan)
	}
	for _, name := range r.CheckOrder() {
		f.printCheck(w, r.Checks[name])
	}
	f.printGateway(w, r.Gateway)
	f.printFooter(w, r)
	return nil
}

func (f *MarkdownFormatter) printGateway(w io.Writer, recs []gateway.Recommendation) {
	if len(recs) == 0 {
		return
	}
	fmt.Fprintf(w, "#### :cloud: Gateway recommendations\n\n")
	for _, rec := range recs {
		fmt.Fprintf(w, "- %s **%s** — %s\n", severityEmoji(rec.Severity), rec.Type, escapeMarkdown(rec.Description))
	}
	fmt.Fprintf(w, "\n")
}

func (f *MarkdownFormatter) printSummary(w io.Writer, r *report.Report) {
	var total int
	if r.Scan != nil {
		total = len(r.Scan.AllIssues())
	}

	switch {
	case total == 0 && r.Summary.Status == "success":
		fmt.Fprintf(w, "### :white_check_mark: AI Patch Doctor — No issues found\n\n")
	default:
		fmt.Fprintf(w, "### :stethoscope: AI Patch Doctor — %d issues\n\n", total)
	}

	var parts []string
	if r.Target != "" {
		parts = append(parts, fmt.Sprintf("**Target:** `%s`", r.Target))
	}
	if r.Provider != "" {
		parts = append(parts, fmt.Sprintf("**Provider:** %s", r.Provider))
	}
	if r.Scan != nil {
		parts = append(parts, fmt.Sprintf("%d files", r.Scan.FilesScanned))
		parts = append(parts, fmt.Sprintf("%.2fs", r.Scan.Duration.Seconds()))
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "> %s\n\n", strings.Join(parts, " · "))
	}

	if r.Scan != nil {
		counts := countBySeverityMarkdown(r.Scan.AllIssues())
		var badges []string
		for _, sev := range []types.Severity{types.SeverityError, types.SeverityWarning, types.SeverityInfo} {
			c := counts[sev]
			if c == 0 {
				continue
			}
			badges = append(badges, fmt.Sprintf("%s **%d %s**", severityEmoji(sev), c, sev.String()))
		}
		if len(badges) > 0 {
			fmt.Fprintf(w, "%s\n\n", strings.Join(badges, " · "))
		}
	}
}

func (f *MarkdownFormatter) printScan(w io.Writer, scan *types.ScanResult) {
	f.printIssueSection(w, ":wrench: Fix in your code", scan.Issues, true)
	f.printIssueSection(w, ":cloud: Better handled by a gateway", scan.GatewayLayerIssues, false)
}

func (f *MarkdownFormatter) printIssueSection(w io.Writer, title string, issues []types.Issue, open bool) {
	if len(issues) == 0 {
		return
	}

	openAttr := ""
	if open {
		openAttr = " open"
	}
	fmt.Fprintf(w, "<details%s>\n", openAttr)
	fmt.Fprintf(w, "<summary>%s <strong>(%d)</strong></summary>\n\n", title, len(issues))

	fmt.Fprintf(w, "| Severity | Category | Issue | File | Line |\n")
	fmt.Fprintf(w, "|----------|----------|-------|------|------|\n")
	for _, issue := range issues {
		desc := escapeMarkdown(issue.Message)
		if issue.Suggestion != "" {
			desc += fmt.Sprintf("<br><em>%s</em>", escapeMarkdown(issue.Suggestion))
		}
		fmt.Fprintf(w, "| %s %s | `%s` | %s | `%s` | L%d |\n",
			severityEmoji(issue.Severity), issue.Severity.String(),
			issue.Category, desc, issue.File, issue.Line)
	}

	fmt.Fprintf(w, "\n</details>\n\n")
}

func (f *MarkdownFormatter) printCheck(w io.Writer, check probe.CheckResult) {
	fmt.Fprintf(w, "#### %s Live check: `%s` — %s\n\n",
		statusEmoji(check.Status), check.Name, string(check.Status))

	for _, finding := range check.Findings {
		fmt.Fprintf(w, "- %s %s", severityEmoji(finding.Severity), escapeMarkdown(finding.Message))
		if finding.Details != "" {
			fmt.Fprintf(w, " — %s", escapeMarkdown(finding.Details))
		}
		fmt.Fprintf(w, "\n")
	}
	for _, name := range check.NotDetected {
		fmt.Fprintf(w, "- :warning: not detected: %s\n", name)
	}
	for _, name := range check.NotObservable {
		fmt.Fprintf(w, "- :grey_question: not observable: %s\n", name)
	}

	if len(check.Metrics) > 0 {
		keys := make([]string, 0, len(check.Metrics))
		for k := range check.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprintf(w, "\n| Metric | Value |\n")
		fmt.Fprintf(w, "|--------|-------|\n")
		for _, k := range keys {
			fmt.Fprintf(w, "| `%s` | %v |\n", k, check.Metrics[k])
		}
	}
	fmt.Fprintf(w, "\n")
}

func (f *MarkdownFormatter) printFooter(w io.Writer, r *report.Report) {
	if r.Summary.NextStep != "" {
		fmt.Fprintf(w, "**Next step:** %s\n\n", r.Summary.NextStep)
	}
	fmt.Fprintf(w, "---\n")
	fmt.Fprintf(w, "*Generated by [ai-patch-doctor](https://github.com/michaelbrinkworth/ai-patch-doctor) %s*\n", ToolVersion)
}

func countBySeverityMarkdown(issues []types.Issue) map[types.Severity]int {
	counts := map[types.Severity]int{}
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

func severityEmoji(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return ":red_circle:"
	case types.SeverityWarning:
		return ":yellow_circle:"
	case types.SeverityInfo:
		return ":white_circle:"
	default:
		return ":black_circle:"
	}
}

func statusEmoji(status probe.Status) string {
	switch status {
	case probe.StatusPass:
		return ":white_check_mark:"
	case probe.StatusWarn:
		return ":warning:"
	case probe.StatusFail:
		return ":x:"
	default:
		return ":grey_question:"
	}
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
