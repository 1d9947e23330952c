// Package grapheme provides grapheme-cluster helpers for column math.
//
// Document columns count grapheme clusters, not runes or bytes, so that a
// combining sequence or an emoji ZWJ family moves as one unit.
package grapheme

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Split returns grapheme clusters for text in visual order.
func Split(text string) []string {
	if text == "" {
		return nil
	}
	g := uniseg.NewGraphemes(text)
	out := make([]string, 0, len([]rune(text)))
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	n := 0
	for g.Next() {
		n++
	}
	return n
}

// Slice returns the grapheme-safe substring for cluster indexes [start, end).
func Slice(text string, start, end int) string {
	if text == "" {
		return ""
	}
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	g := uniseg.NewGraphemes(text)
	idx := 0
	var sb strings.Builder
	for g.Next() {
		if idx >= end {
			break
		}
		if idx >= start {
			sb.WriteString(g.Str())
		}
		idx++
	}
	if start >= idx {
		return ""
	}
	return sb.String()
}

// ByteOffset returns the byte offset of cluster index col within text.
// Columns past the end map to len(text).
func ByteOffset(text string, col int) int {
	if col <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	off := 0
	for g.Next() {
		if idx >= col {
			return off
		}
		off += len(g.Str())
		idx++
	}
	return len(text)
}

// ColAt returns the cluster index containing byte offset off within text.
// Offsets inside a cluster snap to the cluster start; offsets past the end
// map to Count(text).
func ColAt(text string, off int) int {
	if off <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(text)
	idx := 0
	pos := 0
	for g.Next() {
		next := pos + len(g.Str())
		if off < next {
			return idx
		}
		pos = next
		idx++
	}
	return idx
}
