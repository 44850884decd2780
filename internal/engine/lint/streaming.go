package lint

import (
	"strings"

	"github.com/michaelbrinkworth/ai-patch-doctor/internal/types"
)

// streamEnableMarkers are the spellings that turn on streaming mode in the
// Python and JS SDKs.
var streamEnableMarkers = []string{
	"stream=True",
	"stream = True",
	"stream: true",
	"stream:true",
}

var sseHeaderMarkers = []string{
	"text/event-stream",
	"X-Accel-Buffering",
}

var flushMarkers = []string{
	".flush(",
	"flush()",
	"flush=True",
	"flushHeaders",
}

// streamHeaderWindow is how many lines after a stream-enabling line we look
// for SSE header configuration before flagging it as missing.
const streamHeaderWindow = 10

// DetectStreaming flags streaming-mode calls that lack SSE headers or
// explicit flushing. It only produces findings when streaming is actually
// enabled somewhere in the file.
func DetectStreaming(path string, lines []string) []types.Issue {
	var issues []types.Issue
	firstStream := 0

	for i, line := range lines {
		if !enablesStreaming(line) {
			continue
		}
		if firstStream == 0 {
			firstStream = i + 1
		}

		end := i + streamHeaderWindow
		if end > len(lines) {
			end = len(lines)
		}
		if containsAnyFold(lines[i:end], sseHeaderMarkers...) == 0 {
			issues = append(issues, types.Issue{
				Category:       types.CategoryStreaming,
				Severity:       types.SeverityWarning,
				File:           path,
				Line:           i + 1,
				Message:        "Streaming enabled without SSE headers; intermediary proxies may buffer the response",
				Suggestion:     `Set "Content-Type: text/event-stream" and "X-Accel-Buffering: no" on the streaming response`,
				LocallyFixable: true,
			})
		}
	}

	if firstStream == 0 {
		return nil
	}

	if containsAnyFold(lines, flushMarkers...) == 0 {
		issues = append(issues, types.Issue{
			Category:       types.CategoryStreaming,
			Severity:       types.SeverityInfo,
			File:           path,
			Line:           firstStream,
			Message:        "Streaming enabled without explicit flush calls; chunks may sit in output buffers",
			Suggestion:     "Flush the response writer after each streamed chunk",
			LocallyFixable: true,
		})
	}

	return issues
}

func enablesStreaming(line string) bool {
	for _, marker := range streamEnableMarkers {
		if strings.Contains(line, marker) && !IsNonCode(line, marker) {
			return true
		}
	}
	return false
}
