// Package probe implements the live checks: single real requests against a
// configured AI endpoint that inspect response headers and streaming timing.
// Probes are collaborators of the static scanner, not part of it; a scan
// never performs network I/O.
package probe

import (
	"context"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Config identifies the endpoint a probe talks to.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
}

// Status classifies the outcome of one probe run.
type Status string

const (
	StatusPass    Status = "pass"
	StatusWarn    Status = "warn"
	StatusFail    Status = "fail"
	StatusSkipped Status = "skipped"
)

// Finding is one observation made by a probe.
type Finding struct {
	Severity types.Severity `json:"severity"`
	Message  string         `json:"message"`
	Details  string         `json:"details,omitempty"`
}

// CheckResult is the outcome of one probe run.
type CheckResult struct {
	Name          string         `json:"name"`
	Status        Status         `json:"status"`
	Findings      []Finding      `json:"findings"`
	Metrics       map[string]any `json:"metrics,omitempty"`
	NotDetected   []string       `json:"not_detected,omitempty"`
	NotObservable []string       `json:"not_observable,omitempty"`
}

// Check is a single live probe.
type Check interface {
	Name() string
	Run(ctx context.Context, cfg Config) CheckResult
}

// CheckNames lists the available probes in their fixed execution order.
var CheckNames = []string{"streaming", "retries", "cost", "trace"}

// ByName returns the probe for name, or nil when unknown.
func ByName(name string) Check {
	switch name {
	case "streaming":
		return StreamingCheck{}
	case "retries":
		return RetriesCheck{}
	case "cost":
		return CostCheck{}
	case "trace":
		return TraceCheck{}
	default:
		return nil
	}
}

// statusFromFindings derives the overall status the way every probe does:
// any error finding fails the check, any warning downgrades it.
func statusFromFindings(findings []Finding) Status {
	status := StatusPass
	for _, f := range findings {
		switch f.Severity {
		case types.SeverityError:
			return StatusFail
		case types.SeverityWarning:
			status = StatusWarn
		}
	}
	return status
}
