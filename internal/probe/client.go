package probe

import (
	"net/http"
	"strings"
	"sync"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-3.5-turbo"
	requestTimeout = 30 * time.Second
)

// captureTransport injects a correlation header on every request and records
// the status and headers of the last response. The capture is what lets
// probes read Retry-After and rate-limit headers even when the client
// library surfaces the response only as an error value.
type captureTransport struct {
	base      http.RoundTripper
	requestID string

	mu         sync.Mutex
	lastStatus int
	lastHeader http.Header
}

func (t *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.requestID != "" {
		req.Header.Set("X-Request-ID", t.requestID)
	}
	resp, err := t.base.RoundTrip(req)
	if resp != nil {
		t.mu.Lock()
		t.lastStatus = resp.StatusCode
		t.lastHeader = resp.Header.Clone()
		t.mu.Unlock()
	}
	return resp, err
}

// Last returns the status code and headers of the most recent response,
// or (0, nil) when no response was seen.
func (t *captureTransport) Last() (int, http.Header) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastStatus, t.lastHeader
}

// newClient builds an OpenAI-compatible client for cfg, routing all traffic
// through the given transport.
func newClient(cfg Config, rt http.RoundTripper) *openai.Client {
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		base := strings.TrimSuffix(cfg.BaseURL, "/")
		if !strings.HasSuffix(base, "/v1") {
			base += "/v1"
		}
		oc.BaseURL = base
	}
	oc.HTTPClient = &http.Client{
		Transport: rt,
		Timeout:   requestTimeout,
	}
	return openai.NewClientWithConfig(oc)
}

func newCaptureTransport(requestID string) *captureTransport {
	return &captureTransport{
		base:      http.DefaultTransport,
		requestID: requestID,
	}
}

func modelOrDefault(cfg Config) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return defaultModel
}

// headerValue looks up the first present header among names,
// case-insensitively.
func headerValue(h http.Header, names ...string) string {
	if h == nil {
		return ""
	}
	for _, name := range names {
		if v := h.Get(name); v != "" {
			return v
		}
	}
	return ""
}
