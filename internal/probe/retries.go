package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	openai "github.com/sashabaranov/go-openai"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

const lowRemainingThreshold = 10

// RetriesCheck makes one real completion and inspects the rate-limit
// response headers the provider sends back: Retry-After and the
// x-ratelimit family. A 429 during the probe is a warn, not a fail; it is
// exactly the situation the headers exist for.
type RetriesCheck struct{}

func (RetriesCheck) Name() string { return "retries" }

func (RetriesCheck) Run(ctx context.Context, cfg Config) CheckResult {
	result := CheckResult{Name: "retries", Metrics: map[string]any{}}

	transport := newCaptureTransport("")
	client := newClient(cfg, transport)

	_, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     modelOrDefault(cfg),
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "Test"}},
		MaxTokens: 10,
	})

	_, header := transport.Last()

	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
			retryAfter := headerValue(header, "Retry-After")
			if retryAfter == "" {
				retryAfter = "not set"
			}
			result.Findings = append(result.Findings, Finding{
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Rate limited (429). Retry-After: %s", retryAfter),
			})
			result.Status = StatusWarn
			return result
		}
		return failResult(result, "retry check request failed", err)
	}

	if retryAfter := headerValue(header, "Retry-After"); retryAfter != "" {
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityInfo,
			Message:  fmt.Sprintf("Retry-After header present: %ss", retryAfter),
		})
		result.Metrics["retry_after_s"] = retryAfter
	}

	if remaining := headerValue(header, "x-ratelimit-remaining", "x-ratelimit-remaining-requests"); remaining != "" {
		result.Metrics["ratelimit_remaining"] = remaining
		if n, convErr := strconv.Atoi(remaining); convErr == nil && n < lowRemainingThreshold {
			result.Findings = append(result.Findings, Finding{
				Severity: types.SeverityWarning,
				Message:  fmt.Sprintf("Low rate limit remaining: %d", n),
			})
		}
	} else {
		result.NotObservable = append(result.NotObservable, "x-ratelimit-remaining header")
	}

	result.Findings = append(result.Findings,
		Finding{Severity: types.SeverityInfo, Message: "Recommended: use exponential backoff with jitter for retries"},
		Finding{Severity: types.SeverityInfo, Message: "Never retry after a stream has started (partial response received)"},
		Finding{Severity: types.SeverityInfo, Message: "Set a retry cap (e.g. 3 attempts max) to avoid infinite loops"},
	)

	result.Status = statusFromFindings(result.Findings)
	return result
}
