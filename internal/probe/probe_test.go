package probe_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/probe"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

const completionBody = `{
	"id": "cmpl-1",
	"object": "chat.completion",
	"created": 1700000000,
	"model": "gpt-3.5-turbo",
	"choices": [{"index": 0, "message": {"role": "assistant", "content": "ok"}, "finish_reason": "stop"}],
	"usage": {"prompt_tokens": 1, "completion_tokens": 1, "total_tokens": 2}
}`

func chunk(content string) string {
	return fmt.Sprintf(`data: {"id":"cmpl-1","object":"chat.completion.chunk","created":1700000000,"model":"gpt-3.5-turbo","choices":[{"index":0,"delta":{"content":%q}}]}`+"\n\n", content)
}

func testConfig(serverURL string) probe.Config {
	return probe.Config{BaseURL: serverURL, APIKey: "test-key", Model: "gpt-3.5-turbo"}
}

func TestByName(t *testing.T) {
	for _, name := range probe.CheckNames {
		check := probe.ByName(name)
		require.NotNil(t, check, name)
		require.Equal(t, name, check.Name())
	}
	require.Nil(t, probe.ByName("bogus"))
}

func TestStreamingCheckPass(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)
		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, chunk("Hello"))
		fmt.Fprint(w, chunk(" there"))
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	result := probe.StreamingCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusPass, result.Status)
	require.Empty(t, result.Findings)
	require.Equal(t, 2, result.Metrics["chunk_count"])
	require.Contains(t, result.Metrics, "ttfb_ms")
	require.Contains(t, result.Metrics, "max_chunk_gap_s")
}

func TestStreamingCheckEndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "slow down", "type": "rate_limit_error"}}`)
	}))
	defer server.Close()

	result := probe.StreamingCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusFail, result.Status)
	require.Len(t, result.Findings, 1)
	require.Equal(t, types.SeverityError, result.Findings[0].Severity)
	require.Contains(t, result.Findings[0].Details, "429")
}

func TestRetriesCheckRateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error": {"message": "slow down", "type": "rate_limit_error"}}`)
	}))
	defer server.Close()

	result := probe.RetriesCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusWarn, result.Status)
	require.Len(t, result.Findings, 1)
	require.Contains(t, result.Findings[0].Message, "Rate limited (429)")
	require.Contains(t, result.Findings[0].Message, "7")
}

func TestRetriesCheckLowRemaining(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-ratelimit-remaining", "5")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	}))
	defer server.Close()

	result := probe.RetriesCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusWarn, result.Status)
	require.Equal(t, "5", result.Metrics["ratelimit_remaining"])

	var low bool
	for _, f := range result.Findings {
		if f.Severity == types.SeverityWarning {
			require.Contains(t, f.Message, "Low rate limit remaining: 5")
			low = true
		}
	}
	require.True(t, low)
}

func TestRetriesCheckHeadersNotObservable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	}))
	defer server.Close()

	result := probe.RetriesCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusPass, result.Status)
	require.Contains(t, result.NotObservable, "x-ratelimit-remaining header")
	// The recommendations always ship.
	require.GreaterOrEqual(t, len(result.Findings), 3)
}

func TestCostCheckOffline(t *testing.T) {
	// No server: the cost check must not touch the network.
	result := probe.CostCheck{}.Run(context.Background(), probe.Config{Model: "gpt-4"})

	require.Equal(t, probe.StatusWarn, result.Status)
	require.Equal(t, 30.0, result.Metrics["input_price_per_1m"])
	require.Equal(t, 60.0, result.Metrics["output_price_per_1m"])
	require.NotEmpty(t, result.Findings)
}

func TestCostCheckPrefixPrecedence(t *testing.T) {
	mini := probe.CostCheck{}.Run(context.Background(), probe.Config{Model: "gpt-4o-mini-2024"})
	require.Equal(t, 0.15, mini.Metrics["input_price_per_1m"])

	unknown := probe.CostCheck{}.Run(context.Background(), probe.Config{Model: "custom-model"})
	require.Equal(t, 0.50, unknown.Metrics["input_price_per_1m"])
}

func TestTraceCheckProviderID(t *testing.T) {
	var receivedID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedID = r.Header.Get("X-Request-ID")
		w.Header().Set("x-request-id", "prov-abc-123")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	}))
	defer server.Close()

	result := probe.TraceCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusPass, result.Status)
	require.NotEmpty(t, receivedID)
	require.Equal(t, receivedID, result.Metrics["sent_request_id"])
	require.Equal(t, "prov-abc-123", result.Metrics["provider_request_id"])
	require.Len(t, result.Metrics["request_hash"], 16)
	require.Empty(t, result.NotDetected)
}

func TestTraceCheckNoProviderID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, completionBody)
	}))
	defer server.Close()

	result := probe.TraceCheck{}.Run(context.Background(), testConfig(server.URL))

	require.Equal(t, probe.StatusWarn, result.Status)
	require.Contains(t, result.NotDetected, "provider request ID header")
}
