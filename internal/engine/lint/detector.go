package lint

import "github.com/michaelbrinkworth/ai-patch-doctor/internal/types"

// Detector runs one category's checks over a single file.
type Detector struct {
	Category types.Category
	Run      func(path string, lines []string) []types.Issue
}

// Detectors returns all category detectors in their fixed execution order.
// The order is part of the output contract: issue lists are ordered by file
// discovery order first, then by this detector order.
func Detectors() []Detector {
	return []Detector{
		{Category: types.CategoryStreaming, Run: DetectStreaming},
		{Category: types.CategoryRetry, Run: DetectRetry},
		{Category: types.CategoryTimeout, Run: DetectTimeout},
		{Category: types.CategoryRateLimit, Run: DetectRateLimit},
		{Category: types.CategoryCost, Run: DetectCost},
		{Category: types.CategoryTraceability, Run: DetectTrace},
	}
}
