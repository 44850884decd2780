package lint

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

var retryKeywords = []string{"retry", "retries", "backoff"}

// exponentialRe matches the backoff computations the SDK docs recommend:
// Python's 2 ** attempt, JS Math.pow, or an explicit "exponential" helper.
var exponentialRe = regexp.MustCompile(`\*\*|Math\.pow|math\.pow|exponential`)

// retryCapRe matches an explicit bound on retry attempts: a named cap
// variable or a bounded counting loop.
var retryCapRe = regexp.MustCompile(`(?i)(max_retries|maxretries|max_attempts|maxattempts|retry_limit|retrylimit)\s*[=:]\s*(\d+)|range\s*\(\s*(\d+)\s*\)|<\s*(\d+)\s*;`)

var jitterRe = regexp.MustCompile(`(?i)jitter|random\.(uniform|random)|Math\.random`)

// maxReasonableRetries is the attempt count above which a bounded retry
// loop is still flagged as a storm risk.
const maxReasonableRetries = 10

// DetectRetry checks the retry posture of a file that calls an AI API:
// no retry logic at all, linear instead of exponential backoff, no cap on
// attempts, and no jitter. The missing-cap finding routes to the gateway
// partition: a runaway client can only be stopped for certain by
// infrastructure-level circuit breaking.
func DetectRetry(path string, lines []string) []types.Issue {
	anchor := FirstCallLine(lines)
	if anchor == 0 {
		return nil
	}

	retryLine := 0
	for i, line := range lines {
		if hasRetryKeyword(line) {
			retryLine = i + 1
			break
		}
	}

	if retryLine == 0 {
		return []types.Issue{{
			Category:       types.CategoryRetry,
			Severity:       types.SeverityError,
			File:           path,
			Line:           anchor,
			Message:        "No retry logic around AI API calls; transient failures will surface directly to users",
			Suggestion:     "Wrap calls in a bounded retry loop with exponential backoff and jitter",
			LocallyFixable: true,
		}}
	}

	var issues []types.Issue

	if anyLineMatches(lines, exponentialRe) == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryRetry,
			Severity:       types.SeverityWarning,
			File:           path,
			Line:           retryLine,
			Message:        "Linear retry detected; use exponential backoff",
			Suggestion:     "Back off as min(base * 2**attempt, cap) instead of a constant delay",
			LocallyFixable: true,
		})
	}

	capLine := anyLineMatches(lines, retryCapRe)
	if capLine == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryRetry,
			Severity:       types.SeverityError,
			File:           path,
			Line:           retryLine,
			Message:        "No explicit retry-count cap; unbounded retries can turn one outage into a retry storm",
			Suggestion:     "Cap attempts (3-5) and add infrastructure-level circuit breaking",
			LocallyFixable: false,
		})
	} else if capValue := parseRetryCap(lines[capLine-1]); capValue > maxReasonableRetries {
		issues = append(issues, types.Issue{
			Category:       types.CategoryRetry,
			Severity:       types.SeverityWarning,
			File:           path,
			Line:           capLine,
			Message:        "Retry cap of " + strconv.Itoa(capValue) + " attempts is high enough to behave like a retry storm",
			Suggestion:     "Limit retries to 3-5 attempts",
			LocallyFixable: true,
		})
	}

	if anyLineMatches(lines, jitterRe) == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryRetry,
			Severity:       types.SeverityInfo,
			File:           path,
			Line:           retryLine,
			Message:        "Retry delays have no randomized jitter; synchronized clients will retry in lockstep",
			Suggestion:     "Add random jitter to each backoff delay",
			LocallyFixable: true,
		})
	}

	return issues
}

func hasRetryKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range retryKeywords {
		if strings.Contains(lower, kw) && !IsNonCode(line, kw) {
			return true
		}
	}
	return false
}

// parseRetryCap extracts the numeric attempt bound from a line matched by
// retryCapRe. Returns 0 when no group parsed, which disables the follow-up
// check rather than failing.
func parseRetryCap(line string) int {
	m := retryCapRe.FindStringSubmatch(line)
	if m == nil {
		return 0
	}
	for _, group := range m[2:] {
		if group == "" {
			continue
		}
		if n, err := strconv.Atoi(group); err == nil {
			return n
		}
	}
	return 0
}
