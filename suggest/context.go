package suggest

import (
	"strings"
	"unicode/utf8"
)

// DefaultMinKeyLen is the minimum trimmed dedupe-key length worth a request.
// Shorter contexts are rejected before anything is scheduled.
const DefaultMinKeyLen = 3

// Context carries the document text around the cursor at extraction time.
//
// Prefix and Suffix are unbounded; length policy belongs to the backend
// layer. A Context is immutable: every keystroke produces a new value.
type Context struct {
	Prefix string
	Suffix string
}

// Extract splits fullText at the cursor's byte offset. Offsets outside
// [0, len(fullText)] are clamped.
func Extract(fullText string, cursorOffset int) Context {
	if cursorOffset < 0 {
		cursorOffset = 0
	}
	if cursorOffset > len(fullText) {
		cursorOffset = len(fullText)
	}
	return Context{
		Prefix: fullText[:cursorOffset],
		Suffix: fullText[cursorOffset:],
	}
}

// DedupeKey derives the fingerprint used to coalesce requests: the line the
// user is typing on. If the current line is blank the nearest non-blank
// prior line stands in, and a fully blank prefix falls back to the prefix
// itself. The key decides whether a request is necessary; it is never sent
// as payload.
func DedupeKey(prefix string) string {
	rest := prefix
	for {
		i := strings.LastIndexByte(rest, '\n')
		line := rest[i+1:]
		if strings.TrimSpace(line) != "" {
			return line
		}
		if i < 0 {
			return prefix
		}
		rest = rest[:i]
	}
}

func keyMeetsPolicy(key string, minLen int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(key)) >= minLen
}
