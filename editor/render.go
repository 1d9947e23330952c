package editor

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	graphemeutil "github.com/Kidjing/text-copilot/internal/grapheme"
)

const tabWidth = 4

func (m *Model) renderContent() string {
	if m.doc == nil {
		return ""
	}

	lineCount := m.doc.LineCount()
	cursor := m.doc.Cursor()
	digitCount := 0
	if m.cfg.ShowLineNums {
		digitCount = gutterDigits(lineCount)
	}

	inline, block := m.ghostLines()

	out := make([]string, 0, lineCount+len(block))
	for row := 0; row < lineCount; row++ {
		line := m.doc.Line(row)

		var sb strings.Builder
		if m.cfg.ShowLineNums {
			numStyle := m.cfg.Style.LineNum
			if m.focused && row == cursor.Row {
				numStyle = m.cfg.Style.LineNumActive
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d", digitCount, row+1)))
			sb.WriteString(m.cfg.Style.Gutter.Render(" "))
		}

		if m.focused && row == cursor.Row {
			sb.WriteString(m.renderCursorLine(line, cursor.Col, inline))
		} else if line != "" {
			text, _ := expandFrom(line, 0)
			sb.WriteString(m.cfg.Style.Text.Render(text))
		}
		out = append(out, sb.String())

		// Ghost continuation lines become extra rows directly below the
		// cursor row, starting at column 0.
		if m.focused && row == cursor.Row {
			for _, g := range block {
				out = append(out, m.renderGhostRow(g, digitCount))
			}
		}
	}

	return strings.Join(out, "\n")
}

// renderCursorLine renders the row under the cursor. The cursor is a
// reverse-video cell: the grapheme cluster it sits on, or a 1-cell
// placeholder space at end of line. The first ghost line renders in the
// ghost style at the cursor's position, before the line's remaining
// text.
func (m *Model) renderCursorLine(line string, col int, ghost string) string {
	st := m.cfg.Style
	total := graphemeutil.Count(line)
	col = clampInt(col, 0, total)

	var sb strings.Builder
	cells := 0
	if before := graphemeutil.Slice(line, 0, col); before != "" {
		text, end := expandFrom(before, 0)
		sb.WriteString(st.Text.Render(text))
		cells = end
	}

	if col == total {
		// Cursor placeholder sits immediately before ghost text at EOL.
		sb.WriteString(st.Cursor.Render(" "))
		if ghost != "" {
			text, _ := expandFrom(ghost, cells+1)
			sb.WriteString(st.Ghost.Inherit(st.Text).Render(text))
		}
		return sb.String()
	}

	if ghost != "" {
		text, end := expandFrom(ghost, cells)
		sb.WriteString(st.Ghost.Inherit(st.Text).Render(text))
		cells = end
	}

	under := graphemeutil.Slice(line, col, col+1)
	underText, end := expandFrom(under, cells)
	sb.WriteString(st.Cursor.Render(underText))
	cells = end

	if after := graphemeutil.Slice(line, col+1, total); after != "" {
		text, _ := expandFrom(after, cells)
		sb.WriteString(st.Text.Render(text))
	}
	return sb.String()
}

func (m *Model) renderGhostRow(text string, digitCount int) string {
	var sb strings.Builder
	if m.cfg.ShowLineNums {
		sb.WriteString(m.cfg.Style.Gutter.Render(strings.Repeat(" ", digitCount+1)))
	}
	if text != "" {
		expanded, _ := expandFrom(text, 0)
		sb.WriteString(m.cfg.Style.Ghost.Inherit(m.cfg.Style.Text).Render(expanded))
	}
	return sb.String()
}

// ghostLines splits the displayed suggestion into the part rendered
// inline on the cursor row and the continuation rows below it.
func (m *Model) ghostLines() (inline string, block []string) {
	if !m.focused || m.overlay == nil {
		return "", nil
	}
	sug, ok := m.overlay.Showing()
	if !ok {
		return "", nil
	}
	parts := strings.Split(sug.Text, "\n")
	return parts[0], parts[1:]
}

// expandFrom expands tabs in s to tab stops, starting at cell column
// start. It returns the expanded text and the column after it.
func expandFrom(s string, start int) (string, int) {
	if start < 0 {
		start = 0
	}
	col := start
	var sb strings.Builder
	for _, g := range graphemeutil.Split(s) {
		if g == "\t" {
			adv := tabAdvance(col, tabWidth)
			sb.WriteString(strings.Repeat(" ", adv))
			col += adv
			continue
		}
		sb.WriteString(g)
		col += graphemeCellWidth(g)
	}
	return sb.String(), col
}

func graphemeCellWidth(text string) int {
	w := runewidth.StringWidth(text)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(text)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

func tabAdvance(visualCol, width int) int {
	if width <= 0 {
		width = 4
	}
	mod := visualCol % width
	adv := width - mod
	if adv < 1 {
		return 1
	}
	return adv
}

func gutterDigits(lineCount int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	return len(fmt.Sprintf("%d", lineCount))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
