package tui

import (
	"strings"
	"testing"

	"codeterm/internal/stream"
)

func TestRenderStatusBar(t *testing.T) {
	theme := NewNoColorTheme()
	got := RenderStatusBar(theme, StatusBarData{
		SessionName:   "main",
		SessionStatus: "running",
		Tokens:        stream.TokenTracker{InputTokens: 15300, OutputTokens: 420, TokensPerSecond: 41.2},
		ContextFill:   35,
		CompactionPct: -1,
		PendingTools:  1,
	}, 0)

	for _, want := range []string{"main running", "↑15.3k ↓420", "41.2 tok/s", "ctx 35%", "1 tool(s) running"} {
		if !strings.Contains(got, want) {
			t.Fatalf("status bar missing %q: %q", want, got)
		}
	}
	if strings.Contains(got, "compacting") {
		t.Fatalf("idle compaction shown: %q", got)
	}
}

func TestRenderStatusBar_Compacting(t *testing.T) {
	got := RenderStatusBar(NewNoColorTheme(), StatusBarData{
		SessionName:   "main",
		SessionStatus: "running",
		CompactionPct: 40,
	}, 0)
	if !strings.Contains(got, "compacting 40%") {
		t.Fatalf("compaction progress missing: %q", got)
	}
}

func TestFormatTokens(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{950, "950"},
		{1500, "1.5k"},
		{12345, "12.3k"},
		{2_400_000, "2.4M"},
	}
	for _, tc := range cases {
		if got := formatTokens(tc.n); got != tc.want {
			t.Fatalf("formatTokens(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
