// Package scanner orchestrates file discovery, the provider-call gate, and
// category detector execution, aggregating findings into a ScanResult.
package scanner

import (
	"time"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/engine/lint"
	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// Scanner runs the static scan. It owns no mutable state between runs:
// every Scan call builds a fresh ScanResult.
type Scanner struct {
	discovery *TargetDiscovery
	detectors []lint.Detector
}

// New creates a Scanner with the default discovery configuration and the
// full detector set in its fixed order.
func New() *Scanner {
	return &Scanner{
		discovery: NewTargetDiscovery(),
		detectors: lint.Detectors(),
	}
}

// SetExcludedDirs adds directory names to the discovery exclusion set.
func (s *Scanner) SetExcludedDirs(names []string) {
	for _, name := range names {
		s.discovery.ExcludedDirs[name] = true
	}
}

// SetDetectors replaces the detector set. Callers that filter by category
// must preserve the original relative order.
func (s *Scanner) SetDetectors(detectors []lint.Detector) {
	s.detectors = detectors
}

// Scan walks root and runs every detector over every file that passes the
// provider-call gate. The pass is fully sequential: one file in memory at
// a time, detectors in fixed order, so two scans of an unchanged tree
// produce identical results.
//
// Unreadable files are skipped and excluded from FilesScanned. Files that
// fail the provider-call gate still count as scanned but contribute no
// issues.
func (s *Scanner) Scan(root string) (*types.ScanResult, error) {
	start := time.Now()

	targets, err := s.discovery.Discover(root)
	if err != nil {
		return nil, err
	}

	result := &types.ScanResult{Target: root}
	for _, target := range targets {
		if err := target.LoadContent(); err != nil {
			continue
		}
		result.FilesScanned++

		lines := target.Lines()
		target.Content = nil // release before the next file

		if !lint.CallsProviderAPI(lines) {
			continue
		}
		for _, det := range s.detectors {
			for _, issue := range det.Run(target.RelPath, lines) {
				if issue.LocallyFixable {
					result.Issues = append(result.Issues, issue)
				} else {
					result.GatewayLayerIssues = append(result.GatewayLayerIssues, issue)
				}
			}
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}
