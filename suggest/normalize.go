package suggest

import (
	"strings"
	"unicode/utf8"
)

// DefaultMaxLines caps how many lines of a completion survive cleaning.
// Longer continuations are visually disruptive as ghost text.
const DefaultMaxLines = 3

// Protocol artifacts of common prompting formats. Never meaningful content.
var protocolMarkers = []string{
	"<|fim_prefix|>", "<|fim_suffix|>", "<|fim_middle|>", "<|fim_pad|>",
	"<PRE>", "<SUF>", "<MID>", "<EOT>",
	"<|endoftext|>", "<|eot_id|>", "<|im_start|>", "<|im_end|>",
	"<|assistant|>", "<|user|>", "<|system|>",
	"<s>", "</s>",
}

var roleHeads = []string{"assistant:", "user:", "system:"}

// Closing quote per opening quote, for one symmetric layer of unwrapping.
var quotePairs = map[rune]rune{
	'"':      '"',
	'\'':     '\'',
	'`':      '`',
	'“': '”', // curly double
	'‘': '’', // curly single
}

// Clean normalizes raw model output into a presentable suggestion string
// using the default line cap. See CleanMax.
func Clean(raw string, stopSequences []string) string {
	return CleanMax(raw, stopSequences, DefaultMaxLines)
}

// CleanMax is pure and total: truncate at the earliest stop sequence, strip
// protocol markers and one symmetric quote layer, drop blank lines, cap at
// maxLines, and trim trailing whitespace. An empty result means "no usable
// suggestion" and must never be displayed.
func CleanMax(raw string, stopSequences []string, maxLines int) string {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	s := truncateAtStop(raw, stopSequences)
	for _, m := range protocolMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	s = stripRoleHead(s)
	s = stripQuoteLayer(s)

	lines := make([]string, 0, maxLines)
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if len(lines) == maxLines {
			break
		}
	}

	return strings.TrimRight(strings.Join(lines, "\n"), " \t\n")
}

// truncateAtStop cuts raw at the first occurrence of any stop sequence;
// the earliest match across all sequences wins.
func truncateAtStop(raw string, stopSequences []string) string {
	cut := len(raw)
	for _, stop := range stopSequences {
		if stop == "" {
			continue
		}
		if i := strings.Index(raw, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	return raw[:cut]
}

// stripRoleHead removes leading role/turn labels some chat-tuned backends
// prepend, e.g. "assistant: actual text".
func stripRoleHead(s string) string {
	for {
		trimmed := strings.TrimLeft(s, " \t\n")
		stripped := false
		for _, head := range roleHeads {
			if len(trimmed) >= len(head) && strings.EqualFold(trimmed[:len(head)], head) {
				s = strings.TrimLeft(trimmed[len(head):], " \t")
				stripped = true
				break
			}
		}
		if !stripped {
			return s
		}
	}
}

// stripQuoteLayer unwraps a single layer of surrounding quotes when both
// ends match; some backends wrap their output in quotes.
func stripQuoteLayer(s string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}

	first, firstSize := utf8.DecodeRuneInString(trimmed)
	closing, ok := quotePairs[first]
	if !ok {
		return s
	}
	last, lastSize := utf8.DecodeLastRuneInString(trimmed)
	if last != closing || len(trimmed) < firstSize+lastSize {
		return s
	}
	return trimmed[firstSize : len(trimmed)-lastSize]
}
