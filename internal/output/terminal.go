package output

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/gateway"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/report"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// ANSI color codes
const (
	reset     = "\033[0m"
	bold      = "\033[1m"
	dim       = "\033[2m"
	underline = "\033[4m"
	red       = "\033[31m"
	green     = "\033[32m"
	yellow    = "\033[33m"
	blue      = "\033[34m"
	cyan      = "\033[36m"
)

const (
	barWidth      = 40
	lineWidth     = 72
	categoryWidth = 14
	messageWidth  = 60
)

// TerminalFormatter renders a report in a triage-optimized format: what to
// fix in your code first, then what needs a gateway layer, then live checks.
type TerminalFormatter struct {
	NoColor bool
	Verbose bool
}

func (f *TerminalFormatter) color(code, text string) string {
	if f.NoColor {
		return text
	}
	return code + text + reset
}

func (f *TerminalFormatter) Format(w io.Writer, r *report.Report) error {
	if !f.NoColor {
		if os.Getenv("NO_COLOR") != "" {
			f.NoColor = true
		}
	}

	f.printHeader(w, r)

	if r.Scan != nil {
		f.printScan(w, r.Scan)
	}
	for _, name := range r.CheckOrder() {
		f.printCheck(w, r.Checks[name])
	}
	if len(r.Gateway) > 0 {
		f.printGateway(w, r.Gateway)
	}

	f.printFooter(w, r)
	return nil
}

func (f *TerminalFormatter) separator() string {
	return strings.Repeat("─", lineWidth)
}

func (f *TerminalFormatter) sectionHeader(title string) string {
	prefix := "── " + title + " "
	displayLen := utf8.RuneCountInString(prefix)
	remaining := max(lineWidth-displayLen, 0)
	return prefix + strings.Repeat("─", remaining)
}

func (f *TerminalFormatter) printHeader(w io.Writer, r *report.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))
	fmt.Fprintf(w, "  %s\n", f.color(bold, "AI PATCH DOCTOR"))

	parts := []string{}
	if r.Target != "" {
		parts = append(parts, fmt.Sprintf("Target: %s", r.Target))
	}
	if r.Provider != "" {
		parts = append(parts, fmt.Sprintf("Provider: %s", r.Provider))
	}
	if r.Scan != nil {
		parts = append(parts, fmt.Sprintf("%d files", r.Scan.FilesScanned))
		if r.Scan.Duration > 0 {
			parts = append(parts, fmt.Sprintf("%.2fs", r.Scan.Duration.Seconds()))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(w, "  %s\n", strings.Join(parts, "  ·  "))
	}
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) printScan(w io.Writer, scan *types.ScanResult) {
	all := scan.AllIssues()
	if len(all) == 0 {
		fmt.Fprintf(w, "\n  %s No integration issues found.\n", f.color(green, "✔"))
		return
	}

	f.printDashboard(w, f.countBySeverity(all))

	if len(scan.Issues) > 0 {
		header := f.sectionHeader(fmt.Sprintf("FIX IN YOUR CODE (%d)", len(scan.Issues)))
		fmt.Fprintf(w, "\n%s\n", f.color(bold, header))
		f.printIssueGroups(w, scan.Issues)
	}
	if len(scan.GatewayLayerIssues) > 0 {
		header := f.sectionHeader(fmt.Sprintf("BETTER HANDLED BY A GATEWAY (%d)", len(scan.GatewayLayerIssues)))
		fmt.Fprintf(w, "\n%s\n", f.color(bold, header))
		f.printIssueGroups(w, scan.GatewayLayerIssues)
	}
}

func (f *TerminalFormatter) printDashboard(w io.Writer, counts map[types.Severity]int) {
	maxCount := 0
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
	}
	if maxCount == 0 {
		return
	}

	fmt.Fprintln(w)
	severities := []types.Severity{
		types.SeverityError,
		types.SeverityWarning,
		types.SeverityInfo,
	}
	for _, sev := range severities {
		c := counts[sev]
		if c == 0 {
			continue
		}
		label := fmt.Sprintf("  %-10s", sev.String())
		bar := f.renderBar(c, maxCount, barWidth, sev)
		fmt.Fprintf(w, "%s %s %4d\n", f.color(bold, label), bar, c)
	}

	total := 0
	for _, c := range counts {
		total += c
	}
	fmt.Fprintf(w, "\n  %s\n", f.color(bold, fmt.Sprintf("%d issues", total)))
}

func (f *TerminalFormatter) printIssueGroups(w io.Writer, issues []types.Issue) {
	for _, group := range groupByFile(issues) {
		fmt.Fprintf(w, "\n  %s\n", f.color(bold+underline, group.file))
		for _, issue := range group.issues {
			f.printIssue(w, issue)
		}
	}
}

func (f *TerminalFormatter) printIssue(w io.Writer, issue types.Issue) {
	icon := f.severityIcon(issue.Severity)
	category := fmt.Sprintf("%-*s", categoryWidth, string(issue.Category))
	message := truncate(issue.Message, messageWidth)
	lineStr := fmt.Sprintf("L%d", issue.Line)

	fmt.Fprintf(w, "    %s %s %s %s\n",
		icon,
		f.color(bold, category),
		message,
		f.color(cyan, lineStr),
	)
	if issue.Suggestion != "" {
		fmt.Fprintf(w, "      %s %s\n", f.color(dim, "│"), f.color(dim, issue.Suggestion))
	}
}

func (f *TerminalFormatter) printCheck(w io.Writer, check probe.CheckResult) {
	title := fmt.Sprintf("LIVE CHECK: %s", strings.ToUpper(check.Name))
	header := f.sectionHeader(title)
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, header))

	fmt.Fprintf(w, "  %s %s\n", f.statusIcon(check.Status), string(check.Status))

	for _, finding := range check.Findings {
		icon := f.severityIcon(finding.Severity)
		fmt.Fprintf(w, "    %s %s\n", icon, finding.Message)
		if finding.Details != "" {
			fmt.Fprintf(w, "      %s %s\n", f.color(dim, "│"), f.color(dim, finding.Details))
		}
	}
	for _, name := range check.NotDetected {
		fmt.Fprintf(w, "    %s not detected: %s\n", f.color(yellow, "■"), name)
	}
	for _, name := range check.NotObservable {
		fmt.Fprintf(w, "    %s not observable: %s\n", f.color(dim, "○"), name)
	}

	if f.Verbose && len(check.Metrics) > 0 {
		keys := make([]string, 0, len(check.Metrics))
		for k := range check.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    %s\n", f.color(dim, fmt.Sprintf("%s = %v", k, check.Metrics[k])))
		}
	}
}

func (f *TerminalFormatter) printGateway(w io.Writer, recs []gateway.Recommendation) {
	header := f.sectionHeader("GATEWAY RECOMMENDATIONS")
	fmt.Fprintf(w, "\n%s\n\n", f.color(bold, header))

	for _, rec := range recs {
		icon := f.severityIcon(rec.Severity)
		fmt.Fprintf(w, "  %s %s\n", icon, f.color(bold, string(rec.Type)))
		fmt.Fprintf(w, "    %s\n", rec.Description)
	}
}

func (f *TerminalFormatter) printFooter(w io.Writer, r *report.Report) {
	sep := f.separator()
	fmt.Fprintf(w, "\n%s\n", f.color(dim, sep))

	status := r.Summary.Status
	var statusStr string
	switch status {
	case "error":
		statusStr = f.color(red+bold, strings.ToUpper(status))
	case "warning":
		statusStr = f.color(yellow+bold, strings.ToUpper(status))
	default:
		statusStr = f.color(green+bold, strings.ToUpper(status))
	}
	fmt.Fprintf(w, "  Status: %s\n", statusStr)
	if r.Summary.NextStep != "" {
		fmt.Fprintf(w, "  Next:   %s\n", r.Summary.NextStep)
	}
	fmt.Fprintf(w, "%s\n", f.color(dim, sep))
}

func (f *TerminalFormatter) severityIcon(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return f.color(red+bold, "✖")
	case types.SeverityWarning:
		return f.color(yellow, "■")
	case types.SeverityInfo:
		return f.color(cyan, "○")
	default:
		return "?"
	}
}

func (f *TerminalFormatter) statusIcon(status probe.Status) string {
	switch status {
	case probe.StatusPass:
		return f.color(green, "✔")
	case probe.StatusWarn:
		return f.color(yellow, "■")
	case probe.StatusFail:
		return f.color(red+bold, "✖")
	default:
		return f.color(dim, "○")
	}
}

func (f *TerminalFormatter) severityColor(sev types.Severity) string {
	switch sev {
	case types.SeverityError:
		return red
	case types.SeverityWarning:
		return yellow
	case types.SeverityInfo:
		return cyan
	default:
		return ""
	}
}

func (f *TerminalFormatter) renderBar(count, maxCount, width int, sev types.Severity) string {
	if maxCount == 0 {
		return strings.Repeat("░", width)
	}
	filled := count * width / maxCount
	if filled == 0 && count > 0 {
		filled = 1
	}
	// Always keep at least 1 empty block so bar boundary is visible
	if filled >= width {
		filled = width - 1
	}
	empty := width - filled

	filledStr := strings.Repeat("█", filled)
	emptyStr := strings.Repeat("░", empty)
	return f.color(f.severityColor(sev), filledStr) + f.color(dim, emptyStr)
}

func (f *TerminalFormatter) countBySeverity(issues []types.Issue) map[types.Severity]int {
	counts := map[types.Severity]int{}
	for _, issue := range issues {
		counts[issue.Severity]++
	}
	return counts
}

func truncate(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

type fileGroup struct {
	file   string
	issues []types.Issue
}

func groupByFile(issues []types.Issue) []fileGroup {
	order := make(map[string]int)
	grouped := make(map[string][]types.Issue)
	for _, issue := range issues {
		if _, ok := order[issue.File]; !ok {
			order[issue.File] = len(order)
		}
		grouped[issue.File] = append(grouped[issue.File], issue)
	}
	result := make([]fileGroup, 0, len(grouped))
	for file, issues := range grouped {
		result = append(result, fileGroup{file: file, issues: issues})
	}
	sort.Slice(result, func(i, j int) bool {
		return order[result[i].file] < order[result[j].file]
	})
	return result
}
