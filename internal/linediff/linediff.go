// Package linediff classifies the lines of two texts as context, added,
// or removed. It is a thin adapter over go-difflib's sequence matcher;
// the transcript engine consumes the classified lines and owns all
// presentation concerns.
package linediff

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

type LineType string

const (
	Context LineType = "context"
	Added   LineType = "added"
	Removed LineType = "removed"
)

// Line is one classified line of a diff. Content has no trailing newline.
type Line struct {
	Content string
	Type    LineType
}

// Diff returns the classified line sequence between two texts. Within a
// replaced region removals precede additions.
func Diff(oldText, newText string) []Line {
	a := splitLines(oldText)
	b := splitLines(newText)
	m := difflib.NewMatcher(a, b)

	var out []Line
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for _, l := range a[op.I1:op.I2] {
				out = append(out, Line{Content: l, Type: Context})
			}
		case 'd':
			for _, l := range a[op.I1:op.I2] {
				out = append(out, Line{Content: l, Type: Removed})
			}
		case 'i':
			for _, l := range b[op.J1:op.J2] {
				out = append(out, Line{Content: l, Type: Added})
			}
		case 'r':
			for _, l := range a[op.I1:op.I2] {
				out = append(out, Line{Content: l, Type: Removed})
			}
			for _, l := range b[op.J1:op.J2] {
				out = append(out, Line{Content: l, Type: Added})
			}
		}
	}
	return out
}

// Additions classifies every line of text as added. Used for write-style
// tools where there is no previous version to diff against.
func Additions(text string) []Line {
	lines := splitLines(text)
	out := make([]Line, 0, len(lines))
	for _, l := range lines {
		out = append(out, Line{Content: l, Type: Added})
	}
	return out
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
