// Package report merges one static scan with any number of live-probe
// results into a single report, and persists reports under
// ai-patch-reports/ with a stable "latest" pointer.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/gateway"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Summary is the one-glance outcome of a report.
type Summary struct {
	Status   string `json:"status"` // success | warning | error
	NextStep string `json:"next_step"`
}

// Report is the combined output of one doctor run: the scan partitions plus
// zero or more live checks.
type Report struct {
	ID          string                       `json:"id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Target      string                       `json:"target,omitempty"`
	Provider    string                       `json:"provider,omitempty"`
	BaseURL     string                       `json:"base_url,omitempty"`
	Scan        *types.ScanResult            `json:"scan,omitempty"`
	Checks      map[string]probe.CheckResult `json:"checks,omitempty"`
	Gateway     []gateway.Recommendation     `json:"gateway,omitempty"`
	Summary     Summary                      `json:"summary"`
}

// New assembles a report and derives its summary. scan and checks may each
// be empty; a report with neither is still valid (status success).
func New(target, provider, baseURL string, scan *types.ScanResult, checks map[string]probe.CheckResult) *Report {
	r := &Report{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Target:      target,
		Provider:    provider,
		BaseURL:     baseURL,
		Scan:        scan,
		Checks:      checks,
	}
	r.Gateway = gateway.Advise(scan, checks)
	r.Summary = summarize(r)
	return r
}

// CheckOrder returns the report's check names in the probes' fixed
// execution order, so rendering is deterministic despite the map.
func (r *Report) CheckOrder() []string {
	var names []string
	for _, name := range probe.CheckNames {
		if _, ok := r.Checks[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func summarize(r *Report) Summary {
	status := "success"

	if r.Scan != nil {
		if sev, ok := r.Scan.MaxSeverity(); ok {
			switch sev {
			case types.SeverityError:
				status = "error"
			case types.SeverityWarning:
				status = "warning"
			}
		}
	}

	for _, check := range r.Checks {
		switch check.Status {
		case probe.StatusFail:
			status = "error"
		case probe.StatusWarn:
			if status == "success" {
				status = "warning"
			}
		}
	}

	return Summary{Status: status, NextStep: nextStep(r, status)}
}

func nextStep(r *Report, status string) string {
	if status == "success" {
		return "No blocking issues found. Re-run with --target streaming/retries/cost/trace for focused checks."
	}
	if r.Scan != nil && len(r.Scan.GatewayLayerIssues) > 0 {
		return "Fix the locally-fixable issues in your code, then route traffic through a gateway for the rest."
	}
	return "Fix the reported issues in your code and re-run the doctor."
}

// TopFindings returns up to limit scan issues ordered by severity
// (highest first), preserving insertion order within a severity. Used for
// the inline diagnosis.
func (r *Report) TopFindings(limit int) []types.Issue {
	if r.Scan == nil {
		return nil
	}
	all := r.Scan.AllIssues()
	var top []types.Issue
	for sev := types.SeverityError; sev >= types.SeverityInfo; sev-- {
		for _, issue := range all {
			if issue.Severity == sev {
				top = append(top, issue)
				if len(top) == limit {
					return top
				}
			}
		}
	}
	return top
}
