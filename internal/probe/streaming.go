package probe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Streaming timing thresholds, in seconds.
const (
	ttfbWarnSeconds     = 5.0
	chunkGapWarnSeconds = 10.0
	chunkGapFailSeconds = 30.0
)

// StreamingCheck makes one real streaming completion and measures time to
// first byte, chunk count, and the largest inter-chunk gap. Large gaps
// point at SSE stalls or proxy idle timeouts.
type StreamingCheck struct{}

func (StreamingCheck) Name() string { return "streaming" }

func (StreamingCheck) Run(ctx context.Context, cfg Config) CheckResult {
	result := CheckResult{Name: "streaming", Metrics: map[string]any{}}

	client := newClient(cfg, newCaptureTransport(""))

	start := time.Now()
	stream, err := client.CreateChatCompletionStream(ctx, openai.ChatCompletionRequest{
		Model:     modelOrDefault(cfg),
		Messages:  []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: "Say hello"}},
		MaxTokens: 50,
		Stream:    true,
	})
	if err != nil {
		return failResult(result, "streaming request failed", err)
	}
	defer stream.Close()

	var (
		ttfb        time.Duration
		chunkCount  int
		maxChunkGap time.Duration
		lastChunk   = start
	)
	for {
		_, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return failResult(result, "stream interrupted", recvErr)
		}
		now := time.Now()
		if chunkCount == 0 {
			ttfb = now.Sub(start)
		}
		if gap := now.Sub(lastChunk); gap > maxChunkGap {
			maxChunkGap = gap
		}
		lastChunk = now
		chunkCount++
	}
	total := time.Since(start)

	result.Metrics["ttfb_ms"] = round2(ttfb.Seconds() * 1000)
	result.Metrics["total_time_s"] = round2(total.Seconds())
	result.Metrics["chunk_count"] = chunkCount
	result.Metrics["max_chunk_gap_s"] = round2(maxChunkGap.Seconds())

	if ttfb.Seconds() > ttfbWarnSeconds {
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("High TTFB: %.2fs (>%.0fs). Check network or proxy settings.", ttfb.Seconds(), ttfbWarnSeconds),
		})
	}

	switch gap := maxChunkGap.Seconds(); {
	case gap > chunkGapFailSeconds:
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("Large chunk gap: %.2fs (>%.0fs). Possible SSE stall or proxy idle timeout.", gap, chunkGapFailSeconds),
		})
	case gap > chunkGapWarnSeconds:
		result.Findings = append(result.Findings, Finding{
			Severity: types.SeverityWarning,
			Message:  fmt.Sprintf("Chunk gap: %.2fs (>%.0fs). Monitor for potential stalls.", gap, chunkGapWarnSeconds),
		})
	}

	result.Status = statusFromFindings(result.Findings)
	return result
}

func failResult(result CheckResult, message string, err error) CheckResult {
	detail := err.Error()
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		detail = fmt.Sprintf("HTTP %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	result.Status = StatusFail
	result.Findings = append(result.Findings, Finding{
		Severity: types.SeverityError,
		Message:  message,
		Details:  detail,
	})
	return result
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
