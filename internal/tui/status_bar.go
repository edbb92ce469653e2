package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/reflow/truncate"

	"codeterm/internal/stream"
)

// StatusBarData is everything the bottom bar displays, extracted from
// session and transcript state each frame.
type StatusBarData struct {
	SessionName   string
	SessionStatus string
	Tokens        stream.TokenTracker
	ContextFill   int
	CompactionPct int
	PendingTools  int
}

// RenderStatusBar renders the single-line status bar, truncated to
// width with an ellipsis when it does not fit.
func RenderStatusBar(theme Theme, d StatusBarData, width int) string {
	parts := []string{
		theme.StatusBarKey.Render(d.SessionName) + " " + theme.StatusBar.Render(d.SessionStatus),
		theme.StatusBar.Render(fmt.Sprintf("↑%s ↓%s", formatTokens(d.Tokens.InputTokens), formatTokens(d.Tokens.OutputTokens))),
	}
	if d.Tokens.TokensPerSecond > 0 {
		parts = append(parts, theme.StatusBar.Render(fmt.Sprintf("%.1f tok/s", d.Tokens.TokensPerSecond)))
	}
	if d.ContextFill > 0 {
		style := theme.StatusBar
		if d.ContextFill >= 80 {
			style = theme.StatusBarWarn
		}
		parts = append(parts, style.Render(fmt.Sprintf("ctx %d%%", d.ContextFill)))
	}
	if d.CompactionPct >= 0 {
		parts = append(parts, theme.StatusBarWarn.Render(fmt.Sprintf("compacting %d%%", d.CompactionPct)))
	}
	if d.PendingTools > 0 {
		parts = append(parts, theme.StatusBar.Render(fmt.Sprintf("%d tool(s) running", d.PendingTools)))
	}

	line := strings.Join(parts, theme.StatusBar.Render(" │ "))
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "…")
	}
	return line
}

// formatTokens renders token counts compactly: 950, 12.3k, 1.2M.
func formatTokens(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1000:
		return fmt.Sprintf("%.1fk", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}
