package lint

import (
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// rateLimitMarkers indicate some form of 429 handling. These are matched
// without code-context filtering: status codes and exception names
// legitimately appear inside string literals and except/catch clauses.
var rateLimitMarkers = []string{
	"429",
	"RateLimitError",
	"rate_limit",
	"ratelimit",
	"TooManyRequests",
}

var retryAfterMarkers = []string{
	"retry-after",
	"retry_after",
	"retryAfter",
}

// DetectRateLimit checks how a file reacts to provider rate limiting.
// Absent handling routes to the gateway partition: application code cannot
// enforce provider-side limits, only a gateway can smooth them out. Handling
// that ignores the Retry-After header is locally fixable.
func DetectRateLimit(path string, lines []string) []types.Issue {
	anchor := FirstCallLine(lines)
	if anchor == 0 {
		return nil
	}

	handlingLine := containsAnyFold(lines, rateLimitMarkers...)
	if handlingLine == 0 {
		return []types.Issue{{
			Category:       types.CategoryRateLimit,
			Severity:       types.SeverityError,
			File:           path,
			Line:           anchor,
			Message:        "No 429/rate-limit handling; provider throttling will surface as hard failures",
			Suggestion:     "Handle 429 responses, or route traffic through a gateway that enforces rate limits",
			LocallyFixable: false,
		}}
	}

	if containsAnyFold(lines, retryAfterMarkers...) == 0 {
		return []types.Issue{{
			Category:       types.CategoryRateLimit,
			Severity:       types.SeverityWarning,
			File:           path,
			Line:           handlingLine,
			Message:        "Rate-limit handling ignores the Retry-After header; waits will be guesses instead of what the provider asked for",
			Suggestion:     "Read Retry-After from 429 responses and sleep that long before retrying",
			LocallyFixable: true,
		}}
	}

	return nil
}
