// Package lint implements the static detection engine: a gate that decides
// whether a file calls an AI provider API at all, a line-local heuristic for
// suppressing matches in strings and comments, and one detector per issue
// category. Detectors are pure functions of (path, lines); they hold no
// state between files.
package lint

import "strings"

// apiCallSignatures mark a file as making AI chat/completion requests.
// Covers the OpenAI, Anthropic, and Gemini SDK surfaces in both Python
// and JavaScript/TypeScript.
var apiCallSignatures = []string{
	"chat.completions.create",
	"completions.create",
	"messages.create",
	"generate_content",
	"generateContent",
	"createChatCompletion",
	"new OpenAI",
	"new Anthropic",
	"new GoogleGenerativeAI",
	"OpenAI(",
	"Anthropic(",
	"AsyncOpenAI(",
	"AsyncAnthropic(",
	"GenerativeModel(",
	"genai.configure",
}

// CallsProviderAPI reports whether any line plausibly invokes a recognized
// AI provider chat/completion call. Files that fail this gate contribute no
// issues regardless of what else they contain.
func CallsProviderAPI(lines []string) bool {
	return FirstCallLine(lines) > 0
}

// FirstCallLine returns the 1-based line number of the first provider call
// signature found in executable context, or 0 when the file has none.
// Detectors use it as the anchor for "no X found" findings; a finding with
// no anchor is suppressed.
func FirstCallLine(lines []string) int {
	for i, line := range lines {
		for _, sig := range apiCallSignatures {
			if strings.Contains(line, sig) && !IsNonCode(line, sig) {
				return i + 1
			}
		}
	}
	return 0
}
