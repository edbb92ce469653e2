package transcript

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSummarizeToolArgs(t *testing.T) {
	cases := []struct {
		name  string
		tool  string
		input string
		want  string
	}{
		{"command first", "bash", `{"command":"ls -la","timeout":5}`, "ls -la"},
		{"file path", "read", `{"file_path":"cmd/main.go"}`, "cmd/main.go"},
		{"pattern", "grep", `{"pattern":"func main"}`, "func main"},
		{"command beats file path", "bash", `{"command":"make","file_path":"Makefile"}`, "make"},
		{"web search query", "web_search", `{"action":"search","query":"go generics"}`, "search go generics"},
		{"web search url", "web_search", `{"action":"fetch","url":"https://go.dev"}`, "fetch https://go.dev"},
		{"first entry fallback", "mystery", `{"b":"later","a":"first"}`, "a: first"},
		{"non-string value", "mystery", `{"count":3}`, "count: 3"},
		{"empty object", "mystery", `{}`, ""},
		{"opaque input", "bash", `ls -la`, "ls -la"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			parsed := parseToolInput(tc.input)
			if got := summarizeToolArgs(tc.tool, parsed, tc.input); got != tc.want {
				t.Fatalf("summarizeToolArgs(%s, %s) = %q, want %q", tc.tool, tc.input, got, tc.want)
			}
		})
	}
}

func TestSummarizeToolArgs_TruncatesLongValues(t *testing.T) {
	long := strings.Repeat("x", 80)
	got := summarizeToolArgs("mystery", map[string]any{"note": long}, "")
	want := "note: " + strings.Repeat("x", argValueLimit) + "..."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestTruncateArg_KeepsMultibyteRunesIntact(t *testing.T) {
	long := strings.Repeat("é", 80)
	got := truncateArg(long)
	want := strings.Repeat("é", argValueLimit) + "..."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
}
