// Package types defines the shared data structures (Issue, Severity,
// ScanResult) used across the scanner, lint, probe, and report packages
// to prevent import cycles.
package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category identifies the class of integration defect an issue belongs to.
type Category string

const (
	CategoryStreaming    Category = "streaming"
	CategoryRetry        Category = "retry"
	CategoryTimeout      Category = "timeout"
	CategoryRateLimit    Category = "rate-limit"
	CategoryCost         Category = "cost"
	CategoryTraceability Category = "traceability"
)

// Categories returns all issue categories in detector execution order.
func Categories() []Category {
	return []Category{
		CategoryStreaming,
		CategoryRetry,
		CategoryTimeout,
		CategoryRateLimit,
		CategoryCost,
		CategoryTraceability,
	}
}

// Severity represents the severity level of an issue.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON serializes the severity as its lowercase name so reports stay
// readable by the gateway-side tooling that consumes them.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(s.String()))
}

// UnmarshalJSON accepts the lowercase names written by MarshalJSON.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	sev, err := ParseSeverity(name)
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// ParseSeverity converts a string to a Severity level.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ERROR":
		return SeverityError, nil
	case "WARNING", "WARN":
		return SeverityWarning, nil
	case "INFO":
		return SeverityInfo, nil
	default:
		return SeverityInfo, fmt.Errorf("unknown severity: %q", s)
	}
}

// Issue represents a single detected integration defect. An Issue is a
// value: once produced by a detector it is never mutated.
type Issue struct {
	Category       Category `json:"category"`
	Severity       Severity `json:"severity"`
	File           string   `json:"file"`
	Line           int      `json:"line"`
	Message        string   `json:"message"`
	Suggestion     string   `json:"suggestion,omitempty"`
	LocallyFixable bool     `json:"locally_fixable"`
}

// ScanResult holds the complete results of one scan run. Issues holds
// defects an application developer can fix in their own code;
// GatewayLayerIssues holds defects that need enforcement outside the
// application (a proxy, rate limiter, or receipt ledger).
type ScanResult struct {
	Issues             []Issue       `json:"issues"`
	GatewayLayerIssues []Issue       `json:"gateway_layer_issues"`
	FilesScanned       int           `json:"files_scanned"`
	Duration           time.Duration `json:"-"`
	Target             string        `json:"-"`
}

// MarshalJSON implements custom JSON marshaling so Duration serializes as milliseconds.
func (r ScanResult) MarshalJSON() ([]byte, error) {
	type Alias ScanResult
	return json.Marshal(struct {
		Alias
		DurationMS int64 `json:"duration_ms"`
	}{
		Alias:      Alias(r),
		DurationMS: r.Duration.Milliseconds(),
	})
}

// AllIssues returns both partitions as one slice, locally-fixable first.
func (r *ScanResult) AllIssues() []Issue {
	all := make([]Issue, 0, len(r.Issues)+len(r.GatewayLayerIssues))
	all = append(all, r.Issues...)
	all = append(all, r.GatewayLayerIssues...)
	return all
}

// MaxSeverity returns the highest severity across both partitions,
// or SeverityInfo and false when the result has no issues at all.
func (r *ScanResult) MaxSeverity() (Severity, bool) {
	issues := r.AllIssues()
	if len(issues) == 0 {
		return SeverityInfo, false
	}
	maxSev := SeverityInfo
	for _, issue := range issues {
		if issue.Severity > maxSev {
			maxSev = issue.Severity
		}
	}
	return maxSev, true
}
