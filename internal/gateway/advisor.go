// Package gateway derives infrastructure-level recommendations from scan
// and probe results: the issues that cannot be fixed by editing the scanned
// code and need a gateway (proxy, rate limiter, receipt ledger) instead.
package gateway

import (
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// IssueType classifies a gateway-layer problem.
type IssueType string

const (
	Recurring429       IssueType = "recurring-429"
	NeedReceipts       IssueType = "need-receipts"
	UnreliableProvider IssueType = "unreliable-provider"
)

// Recommendation is one gateway-layer problem worth acting on.
type Recommendation struct {
	Type        IssueType      `json:"type"`
	Severity    types.Severity `json:"severity"`
	Description string         `json:"description"`
}

// Advise inspects the gateway partition of a scan and the live check
// results and returns the gateway-layer problems they imply. Both inputs
// may be nil/empty.
func Advise(scan *types.ScanResult, checks map[string]probe.CheckResult) []Recommendation {
	var recs []Recommendation

	if scan != nil {
		var sawRateLimit, sawRetry, sawTrace bool
		for _, issue := range scan.GatewayLayerIssues {
			switch issue.Category {
			case types.CategoryRateLimit:
				sawRateLimit = true
			case types.CategoryRetry:
				sawRetry = true
			case types.CategoryTraceability:
				sawTrace = true
			}
		}
		if sawRateLimit || sawRetry {
			recs = append(recs, Recommendation{
				Type:        Recurring429,
				Severity:    types.SeverityError,
				Description: "Unhandled rate limits and unbounded retries need enforced rate limiting and circuit breaking at the gateway",
			})
		}
		if sawTrace {
			recs = append(recs, Recommendation{
				Type:        NeedReceipts,
				Severity:    types.SeverityWarning,
				Description: "Missing idempotency keys need a gateway-side receipt ledger to prevent duplicate charges",
			})
		}
	}

	if streaming, ok := checks["streaming"]; ok {
		for _, f := range streaming.Findings {
			if f.Severity != types.SeverityError {
				continue
			}
			msg := strings.ToLower(f.Message)
			if strings.Contains(msg, "gap") || strings.Contains(msg, "ttfb") || strings.Contains(msg, "stall") {
				recs = append(recs, Recommendation{
					Type:        UnreliableProvider,
					Severity:    types.SeverityError,
					Description: "Unreliable streaming performance suggests provider- or network-level problems a gateway can route around",
				})
				break
			}
		}
	}

	if retries, ok := checks["retries"]; ok && retries.Status == probe.StatusWarn {
		for _, f := range retries.Findings {
			if strings.Contains(f.Message, "429") {
				recs = append(recs, Recommendation{
					Type:        Recurring429,
					Severity:    types.SeverityWarning,
					Description: "The endpoint rate-limited a single probe request; sustained traffic needs gateway-side smoothing",
				})
				break
			}
		}
	}

	return dedupe(recs)
}

// dedupe keeps the first (highest-signal) recommendation per type.
func dedupe(recs []Recommendation) []Recommendation {
	seen := make(map[IssueType]bool, len(recs))
	var out []Recommendation
	for _, rec := range recs {
		if seen[rec.Type] {
			continue
		}
		seen[rec.Type] = true
		out = append(out, rec)
	}
	return out
}
