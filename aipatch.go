// Package aipatch provides a public API for statically scanning source
// trees for AI API integration defects: missing retries, absent timeouts,
// unhandled rate limits, unsafe streaming, unbounded cost, and missing
// request correlation.
//
// This is the library entry point. For the CLI tool, see cmd/ai-patch-doctor/.
package aipatch

import (
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/engine/lint"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/scanner"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Re-export core types from internal/types so consumers don't need to
// import internal packages.
type (
	Severity   = types.Severity
	Category   = types.Category
	Issue      = types.Issue
	ScanResult = types.ScanResult
)

const (
	SeverityInfo    = types.SeverityInfo
	SeverityWarning = types.SeverityWarning
	SeverityError   = types.SeverityError
)

const (
	CategoryStreaming    = types.CategoryStreaming
	CategoryRetry        = types.CategoryRetry
	CategoryTimeout      = types.CategoryTimeout
	CategoryRateLimit    = types.CategoryRateLimit
	CategoryCost         = types.CategoryCost
	CategoryTraceability = types.CategoryTraceability
)

// Categories returns every detector category in execution order.
func Categories() []Category {
	return types.Categories()
}

// Scan scans a file or directory on disk for AI integration issues.
// A missing root yields an empty result, not an error.
func Scan(path string, opts ...Option) (*ScanResult, error) {
	cfg := applyOpts(opts)
	return buildScanner(cfg).Scan(path)
}

// --- internal helpers ---

func applyOpts(opts []Option) *scanConfig {
	cfg := &scanConfig{}
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// buildScanner creates a fully wired Scanner from the resolved options.
func buildScanner(cfg *scanConfig) *scanner.Scanner {
	s := scanner.New()
	if len(cfg.excludeDirs) > 0 {
		s.SetExcludedDirs(cfg.excludeDirs)
	}
	if len(cfg.categories) > 0 {
		enabled := make(map[Category]bool, len(cfg.categories))
		for _, c := range cfg.categories {
			enabled[c] = true
		}
		var detectors []lint.Detector
		for _, det := range lint.Detectors() {
			if enabled[det.Category] {
				detectors = append(detectors, det)
			}
		}
		s.SetDetectors(detectors)
	}
	return s
}
