package lint

import (
	"regexp"
	"strings"
)

// markupLineRe matches a line that is entirely markup text
// (<tag>...</tag>), e.g. documentation embedded in JSX or HTML strings.
var markupLineRe = regexp.MustCompile(`^\s*<[^>]+>.*</[^>]+>\s*$`)

// quotedTermRes match the sensitive detector keywords when they appear fully
// inside a quoted string, e.g. log("retry later") or a user-facing message
// mentioning a timeout. One pattern per term keeps them auditable.
var quotedTermRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)['"` + "`" + `][^'"` + "`" + `]*retr(y|ies)[^'"` + "`" + `]*['"` + "`" + `]`),
	regexp.MustCompile(`(?i)['"` + "`" + `][^'"` + "`" + `]*timeout[^'"` + "`" + `]*['"` + "`" + `]`),
	regexp.MustCompile(`(?i)['"` + "`" + `][^'"` + "`" + `]*max_tokens[^'"` + "`" + `]*['"` + "`" + `]`),
}

var commentMarkers = []string{"//", "#", "*"}

// IsNonCode reports whether the first occurrence of keyword on line sits in
// non-executable context: a string literal, template, comment, URL, or
// markup text. Detectors use it to suppress false positives from
// documentation and log messages.
//
// The heuristic is line-local and stateless. It does not track multi-line
// strings or block comments; a keyword inside a docstring body will still
// look like code. That blind spot is accepted in exchange for not needing
// a lexer per language.
func IsNonCode(line, keyword string) bool {
	if markupLineRe.MatchString(line) {
		return true
	}

	idx := strings.Index(strings.ToLower(line), strings.ToLower(keyword))
	if idx < 0 {
		return false
	}

	// Odd quote count before the keyword means we are inside an open
	// quoted or templated region.
	var single, double, backtick int
	for _, r := range line[:idx] {
		switch r {
		case '\'':
			single++
		case '"':
			double++
		case '`':
			backtick++
		}
	}
	if single%2 == 1 || double%2 == 1 || backtick%2 == 1 {
		return true
	}

	for _, re := range quotedTermRes {
		if re.MatchString(line) {
			return true
		}
	}

	// Bare URLs are documentation or example text, not calls.
	stripped := strings.TrimLeft(line, " \t\"'`")
	if strings.HasPrefix(stripped, "http://") || strings.HasPrefix(stripped, "https://") {
		return true
	}

	trimmed := strings.TrimSpace(line)
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}

	return false
}

// containsCode reports whether any of the given lines contains keyword in
// executable context, returning the 1-based line number of the first
// occurrence (0 when none).
func containsCode(lines []string, keyword string) int {
	lower := strings.ToLower(keyword)
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), lower) && !IsNonCode(line, keyword) {
			return i + 1
		}
	}
	return 0
}

// containsAnyFold reports whether any line contains any of the keywords,
// case-insensitively, with no code-context filtering. Used for presence
// checks where the marker legitimately lives inside a string literal
// (header names, status codes).
func containsAnyFold(lines []string, keywords ...string) int {
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return i + 1
			}
		}
	}
	return 0
}

// anyLineMatches returns the 1-based line number of the first line matching
// re, or 0 when no line matches.
func anyLineMatches(lines []string, re *regexp.Regexp) int {
	for i, line := range lines {
		if re.MatchString(line) {
			return i + 1
		}
	}
	return 0
}
