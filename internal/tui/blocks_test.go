package tui

import (
	"strings"
	"testing"

	"codeterm/internal/transcript"
)

func plainRenderer() *BlockRenderer {
	return NewBlockRenderer(NewNoColorTheme())
}

func TestRenderUserInput(t *testing.T) {
	got := plainRenderer().Render(transcript.Block{
		Kind:    transcript.KindUserInput,
		Content: "list the files",
	}, 80, false, "")
	if got != "> list the files" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderWatcherInput(t *testing.T) {
	got := plainRenderer().Render(transcript.Block{
		Kind:    transcript.KindWatcherInput,
		Content: "[W] reviewer> Check the diff.",
	}, 80, false, "")
	if got != "[W] reviewer> Check the diff." {
		t.Fatalf("got %q", got)
	}
}

func TestRenderToolCall_StripsStderrMarker(t *testing.T) {
	got := plainRenderer().Render(transcript.Block{
		Kind:    transcript.KindToolCall,
		Content: "● bash(make)\nL building\n  " + transcript.StderrMarker + "warning: unused var",
	}, 80, false, "")
	want := "● bash(make)\nL building\n  warning: unused var"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRenderToolCall_ExpandedUsesFullContent(t *testing.T) {
	b := transcript.Block{
		Kind:        transcript.KindToolCall,
		Content:     "● bash(ls)\nL a\n  ... +2 lines (ctrl+o to expand)",
		FullContent: "● bash(ls)\nL a\n  b\n  c",
	}
	r := plainRenderer()
	if got := r.Render(b, 80, false, ""); !strings.Contains(got, "ctrl+o") {
		t.Fatalf("collapsed render missing hint: %q", got)
	}
	if got := r.Render(b, 80, true, ""); got != "● bash(ls)\nL a\n  b\n  c" {
		t.Fatalf("expanded render = %q", got)
	}
}

func TestRenderCorrelationHighlight(t *testing.T) {
	b := transcript.Block{
		Kind:          transcript.KindAssistantText,
		Content:       "done",
		CorrelationID: "ev-1",
	}
	r := plainRenderer()
	if got := r.Render(b, 80, false, "ev-1"); !strings.HasPrefix(got, "◆ ") {
		t.Fatalf("matching id not highlighted: %q", got)
	}
	if got := r.Render(b, 80, false, "ev-2"); strings.HasPrefix(got, "◆ ") {
		t.Fatalf("non-matching id highlighted: %q", got)
	}
}

func TestRenderObservedHighlight(t *testing.T) {
	b := transcript.Block{
		Kind:                   transcript.KindWatcherInput,
		Content:                "[W] reviewer> Saw it.",
		ObservedCorrelationIDs: []string{"ev-7"},
	}
	got := plainRenderer().Render(b, 80, false, "ev-7")
	if !strings.HasPrefix(got, "◆ ") {
		t.Fatalf("observed id not highlighted: %q", got)
	}
}

func TestRenderStatus(t *testing.T) {
	r := plainRenderer()
	cases := []struct {
		content string
	}{
		{"⚠ Interrupted"},
		{"API Error: overloaded"},
		{"Retrying request"},
	}
	for _, tc := range cases {
		got := r.Render(transcript.Block{Kind: transcript.KindStatus, Content: tc.content}, 80, false, "")
		if got != tc.content {
			t.Fatalf("status %q rendered as %q", tc.content, got)
		}
	}
}
