package transcript

import (
	"fmt"
	"strings"
	"testing"
)

func TestFormatToolOutput_WithinThreshold(t *testing.T) {
	got := FormatToolOutput("one\ntwo\nthree", DefaultOutputCollapse)
	want := "L one\n  two\n  three"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatToolOutput_CollapsesLongOutput(t *testing.T) {
	var lines []string
	for i := 0; i < 12; i++ {
		lines = append(lines, fmt.Sprintf("row-%02d", i))
	}
	got := FormatToolOutput(strings.Join(lines, "\n"), DefaultOutputCollapse)

	rendered := strings.Split(got, "\n")
	if len(rendered) != DefaultOutputCollapse+1 {
		t.Fatalf("want %d lines plus hint, got %d:\n%s", DefaultOutputCollapse, len(rendered), got)
	}
	if rendered[0] != "L row-00" {
		t.Fatalf("first line = %q", rendered[0])
	}
	if want := "  ... +4 lines (ctrl+o to expand)"; rendered[len(rendered)-1] != want {
		t.Fatalf("hint = %q, want %q", rendered[len(rendered)-1], want)
	}
}

func TestFormatToolOutputFull_NeverTruncates(t *testing.T) {
	var lines []string
	for i := 0; i < 40; i++ {
		lines = append(lines, fmt.Sprintf("row-%02d", i))
	}
	got := FormatToolOutputFull(strings.Join(lines, "\n"))
	if strings.Contains(got, "+") && strings.Contains(got, "expand") {
		t.Fatalf("full render truncated:\n%s", got)
	}
	if len(strings.Split(got, "\n")) != 40 {
		t.Fatalf("full render dropped lines:\n%s", got)
	}
}

func TestFormatToolOutput_NormalizesTabs(t *testing.T) {
	got := FormatToolOutput("a\tb", DefaultOutputCollapse)
	if got != "L a  b" {
		t.Fatalf("got %q", got)
	}
}

func TestAppendProgress_ConcatenatesPartialLines(t *testing.T) {
	body := appendProgress("", "par", false, DefaultProgressWindow)
	if body != "L par" {
		t.Fatalf("first chunk body = %q", body)
	}
	body = appendProgress(body, "tial line\nnext", false, DefaultProgressWindow)
	want := "L partial line\n  next"
	if body != want {
		t.Fatalf("got %q, want %q", body, want)
	}
}

func TestAppendProgress_WindowKeepsTrailingLines(t *testing.T) {
	body := ""
	for i := 0; i < 8; i++ {
		body = appendProgress(body, fmt.Sprintf("l%d\n", i), false, 3)
	}
	raw := extractRawOutput(body)
	if strings.Contains(raw, "l0\n") {
		t.Fatalf("window kept stale lines: %q", raw)
	}
	if !strings.Contains(raw, "l7") {
		t.Fatalf("window dropped latest line: %q", raw)
	}
	if got := len(strings.Split(raw, "\n")); got > 3 {
		t.Fatalf("window holds %d lines, want <= 3", got)
	}
}

func TestExtractRawOutput_RoundTrip(t *testing.T) {
	raw := "alpha\nbeta\ngamma"
	rendered := treePrefix(strings.Split(raw, "\n"))
	if got := extractRawOutput(rendered); got != raw {
		t.Fatalf("round trip got %q, want %q", got, raw)
	}
}
