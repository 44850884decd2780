package probe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// TraceCheck sends one request carrying a generated X-Request-ID and looks
// for a provider-side request ID in the response headers. It also computes
// a request hash callers can log to detect accidental duplicate calls.
type TraceCheck struct{}

func (TraceCheck) Name() string { return "trace" }

func (TraceCheck) Run(ctx context.Context, cfg Config) CheckResult {
	result := CheckResult{Name: "trace", Metrics: map[string]any{}}

	requestID := uuid.NewString()
	transport := newCaptureTransport(requestID)
	client := newClient(cfg, transport)

	model := modelOrDefault(cfg)
	content := "Test"

	_, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: content}},
		MaxTokens: 10,
	})
	if err != nil {
		return failResult(result, "trace check request failed", err)
	}

	result.Metrics["sent_request_id"] = requestID

	_, header := transport.Last()
	providerID := headerValue(header, "x-request-id", "openai-request-id", "cf-ray")
	if providerID != "" {
		result.Metrics["provider_request_id"] = providerID
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityInfo,
			Message:  fmt.Sprintf("Provider request ID found: %s", providerID),
		})
	} else {
		result.NotDetected = append(result.NotDetected, "provider request ID header")
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityWarning,
			Message:  "No provider request ID found in response headers",
		})
	}

	hash := sha256.Sum256([]byte(model + "\x00" + content))
	requestHash := hex.EncodeToString(hash[:])[:16]
	result.Metrics["request_hash"] = requestHash

	result.Findings = append(result.Findings,
		Finding{Severity: types.SeverityInfo, Message: fmt.Sprintf("Generated request hash: %s (for duplicate detection)", requestHash)},
		Finding{Severity: types.SeverityInfo, Message: "Always include an X-Request-ID header for request correlation"},
		Finding{Severity: types.SeverityInfo, Message: "Capture provider request IDs from response headers for support tickets"},
	)

	result.Status = statusFromFindings(result.Findings)
	return result
}
