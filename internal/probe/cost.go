package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// modelPricing holds approximate USD prices per 1M tokens. Kept static on
// purpose: the probe must not depend on a pricing API being reachable.
type modelPricing struct {
	input  float64
	output float64
}

var pricingTable = []struct {
	prefix string
	modelPricing
}{
	{"gpt-4o-mini", modelPricing{0.15, 0.60}},
	{"gpt-4o", modelPricing{2.5, 10.0}},
	{"gpt-4-turbo", modelPricing{10.0, 30.0}},
	{"gpt-4", modelPricing{30.0, 60.0}},
	{"gpt-3.5-turbo", modelPricing{0.50, 1.50}},
}

var fallbackPricing = modelPricing{0.50, 1.50}

// CostCheck estimates per-token cost exposure for the configured model.
// It never makes a network request; cost controls have to hold even when
// the endpoint is down. The status is always at least warn because cost
// caps are something every caller should re-verify.
type CostCheck struct{}

func (CostCheck) Name() string { return "cost" }

func (CostCheck) Run(_ context.Context, cfg Config) CheckResult {
	result := CheckResult{Name: "cost", Metrics: map[string]any{}}

	pricing := pricingFor(modelOrDefault(cfg))
	result.Metrics["input_price_per_1m"] = pricing.input
	result.Metrics["output_price_per_1m"] = pricing.output

	result.Findings = append(result.Findings,
		Finding{
			Severity: types.SeverityInfo,
			Message:  fmt.Sprintf("Model pricing: $%.2f/1M input, $%.2f/1M output tokens", pricing.input, pricing.output),
		},
		Finding{Severity: types.SeverityInfo, Message: "Set a max_tokens cap to prevent runaway costs (e.g. max_tokens: 2000)"},
		Finding{Severity: types.SeverityInfo, Message: "Monitor for tool/function call loops that can burn tokens quickly"},
		Finding{Severity: types.SeverityInfo, Message: "Consider per-user or per-session token budgets"},
		Finding{
			Severity: types.SeverityWarning,
			Message:  "No prompt size validation detected. Large prompts can cause cost spikes.",
		},
	)

	result.Status = StatusWarn
	return result
}

func pricingFor(model string) modelPricing {
	for _, entry := range pricingTable {
		if strings.HasPrefix(model, entry.prefix) {
			return entry.modelPricing
		}
	}
	return fallbackPricing
}
