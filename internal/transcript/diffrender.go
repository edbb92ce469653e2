package transcript

import (
	"fmt"
	"strings"

	"codeterm/internal/linediff"
)

const (
	// DefaultDiffCollapse bounds how many rendered diff lines a collapsed
	// tool-call block shows before the expand hint.
	DefaultDiffCollapse = 25

	// diffContextRadius is the number of context lines kept around each
	// change.
	diffContextRadius = 3

	// minNumberWidth keeps line-number columns aligned across small files.
	minNumberWidth = 3
)

// Markers consumed by the rendering layer for color; a removed line
// carries [R]-, an added line [A]+, context lines a blank marker column.
const (
	markerRemoved = "[R]-"
	markerAdded   = "[A]+"
	markerContext = "   "
)

// RenderDiff renders a classified line sequence with line numbers, a
// bounded context window around each change, gap placeholders for hidden
// runs, and a final expand hint when the result still exceeds the
// collapse threshold. startLine is 1-based.
func RenderDiff(lines []linediff.Line, startLine, collapse int) string {
	if len(lines) == 0 {
		return ""
	}
	if collapse <= 0 {
		collapse = DefaultDiffCollapse
	}
	if startLine < 1 {
		startLine = 1
	}

	changed := changedIndices(lines)
	if len(changed) == 0 {
		return renderPlainContext(lines, startLine, collapse)
	}

	show := make(map[int]bool, len(changed)*(2*diffContextRadius+1))
	for _, c := range changed {
		lo := c - diffContextRadius
		if lo < 0 {
			lo = 0
		}
		hi := c + diffContextRadius
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}
		for i := lo; i <= hi; i++ {
			show[i] = true
		}
	}

	width := numberWidth(startLine + len(lines) - 1)
	var out []string
	prev := -1
	for idx := range lines {
		if !show[idx] {
			continue
		}
		if idx > prev+1 {
			out = append(out, gapLine(idx-prev-1))
		}
		out = append(out, renderDiffLine(width, startLine+idx, lines[idx]))
		prev = idx
	}
	if prev < len(lines)-1 {
		out = append(out, gapLine(len(lines)-1-prev))
	}

	return collapseLines(out, collapse)
}

// RenderDiffFull renders every line with the same numbering and marker
// scheme but no context windowing, gaps, or truncation. Stored as a
// block's FullContent for expansion.
func RenderDiffFull(lines []linediff.Line, startLine int) string {
	if len(lines) == 0 {
		return ""
	}
	if startLine < 1 {
		startLine = 1
	}
	width := numberWidth(startLine + len(lines) - 1)
	out := make([]string, 0, len(lines))
	for idx, line := range lines {
		out = append(out, renderDiffLine(width, startLine+idx, line))
	}
	return strings.Join(out, "\n")
}

func changedIndices(lines []linediff.Line) []int {
	var changed []int
	for i, l := range lines {
		if l.Type != linediff.Context {
			changed = append(changed, i)
		}
	}
	return changed
}

func renderPlainContext(lines []linediff.Line, startLine, visible int) string {
	width := numberWidth(startLine + len(lines) - 1)
	out := make([]string, 0, visible+1)
	for idx, line := range lines {
		if idx >= visible {
			break
		}
		out = append(out, renderDiffLine(width, startLine+idx, line))
	}
	if len(lines) > visible {
		out = append(out, expandHint(len(lines)-visible))
	}
	return strings.Join(out, "\n")
}

func renderDiffLine(width, number int, line linediff.Line) string {
	marker := markerContext
	switch line.Type {
	case linediff.Removed:
		marker = markerRemoved
	case linediff.Added:
		marker = markerAdded
	}
	return fmt.Sprintf("%*d %4s %s", width, number, marker, line.Content)
}

func gapLine(n int) string {
	return fmt.Sprintf("... (%d lines)", n)
}

func expandHint(n int) string {
	return fmt.Sprintf("... +%d lines (ctrl+o to expand)", n)
}

func collapseLines(out []string, collapse int) string {
	if len(out) > collapse {
		n := len(out) - collapse
		out = append(out[:collapse], expandHint(n))
	}
	return strings.Join(out, "\n")
}

func numberWidth(max int) int {
	width := len(fmt.Sprintf("%d", max))
	if width < minNumberWidth {
		width = minNumberWidth
	}
	return width
}
