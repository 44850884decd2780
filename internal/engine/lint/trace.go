package lint

import (
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Correlation markers are matched without code-context filtering: header
// names only ever appear inside string literals.
var requestIDMarkers = []string{
	"request_id",
	"request-id",
	"requestId",
	"correlation_id",
	"correlationId",
}

var idempotencyMarkers = []string{
	"idempotency",
}

// DetectTrace checks request correlation: without a request ID, provider
// support tickets and log correlation are guesswork; without an idempotency
// key, a retried request can be charged twice. The latter routes to the
// gateway partition because duplicate-charge prevention needs a receipt
// ledger outside the call site.
func DetectTrace(path string, lines []string) []types.Issue {
	anchor := FirstCallLine(lines)
	if anchor == 0 {
		return nil
	}

	var issues []types.Issue

	if containsAnyFold(lines, requestIDMarkers...) == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryTraceability,
			Severity:       types.SeverityWarning,
			File:           path,
			Line:           anchor,
			Message:        "No request/correlation ID on AI API calls; failures cannot be traced across services or raised with the provider",
			Suggestion:     `Send an "X-Request-ID" header and log the provider's request ID from the response`,
			LocallyFixable: true,
		})
	}

	if containsAnyFold(lines, idempotencyMarkers...) == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryTraceability,
			Severity:       types.SeverityInfo,
			File:           path,
			Line:           anchor,
			Message:        "No idempotency key on AI API calls; retried requests can be billed twice",
			Suggestion:     "Use idempotency keys backed by a receipt ledger to deduplicate retries",
			LocallyFixable: false,
		})
	}

	return issues
}
