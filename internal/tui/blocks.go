package tui

import (
	"strings"

	"codeterm/internal/transcript"
)

// BlockRenderer turns transcript blocks into styled terminal text. The
// reducer keeps markers in the content ([R]-/[A]+ diff markers, the
// stderr tag); this layer maps them to color and strips the ones that
// are not meant to be displayed.
type BlockRenderer struct {
	theme    Theme
	markdown *MarkdownRenderer
}

func NewBlockRenderer(theme Theme) *BlockRenderer {
	return &BlockRenderer{theme: theme, markdown: NewMarkdownRenderer()}
}

// Render renders one block. expanded selects FullContent when the block
// has one; highlightID marks blocks correlated with the given event.
func (br *BlockRenderer) Render(b transcript.Block, width int, expanded bool, highlightID string) string {
	content := b.Content
	if expanded && b.FullContent != "" {
		content = b.FullContent
	}

	var out string
	switch b.Kind {
	case transcript.KindUserInput:
		out = br.theme.UserPrompt.Render("> ") + br.theme.Assistant.Render(content)
	case transcript.KindWatcherInput:
		out = br.renderWatcherInput(content)
	case transcript.KindAssistantText:
		out = br.renderAssistantText(content, width, b.IsStreaming)
	case transcript.KindThinking:
		out = br.theme.Thinking.Render(content)
	case transcript.KindToolCall:
		out = br.renderToolCall(content, b.IsError)
	case transcript.KindStatus:
		out = br.renderStatus(content)
	default:
		out = content
	}

	if highlightID != "" && blockCorrelated(b, highlightID) {
		out = br.theme.Correlated.Render("◆") + " " + out
	}
	return out
}

func blockCorrelated(b transcript.Block, id string) bool {
	if b.CorrelationID == id {
		return true
	}
	for _, o := range b.ObservedCorrelationIDs {
		if o == id {
			return true
		}
	}
	return false
}

func (br *BlockRenderer) renderWatcherInput(content string) string {
	// "[W] <role>> <message>" when the session layer prefix parsed;
	// anything else renders as plain muted text.
	if strings.HasPrefix(content, "[W] ") {
		rest := content[len("[W] "):]
		if idx := strings.Index(rest, "> "); idx >= 0 {
			tag := "[W] " + rest[:idx] + ">"
			return br.theme.WatcherTag.Render(tag) + " " + br.theme.Assistant.Render(rest[idx+2:])
		}
	}
	return br.theme.StatusLine.Render(content)
}

func (br *BlockRenderer) renderAssistantText(content string, width int, streaming bool) string {
	if streaming {
		// Raw text while streaming; markdown is rendered once the block
		// finalizes so partial syntax never flickers through the renderer.
		return br.theme.Assistant.Render(content)
	}
	return br.markdown.Render(content, width)
}

func (br *BlockRenderer) renderToolCall(content string, isError bool) string {
	lines := strings.Split(content, "\n")
	headerStyle := br.theme.ToolHeader
	if isError {
		headerStyle = br.theme.ToolErr
	}
	out := make([]string, 0, len(lines))
	out = append(out, headerStyle.Render(lines[0]))
	for _, line := range lines[1:] {
		out = append(out, br.renderToolBodyLine(line))
	}
	return strings.Join(out, "\n")
}

// renderToolBodyLine colors one body line of a tool-call block. Diff
// lines keep their marker, stderr lines lose the tag but keep the color.
func (br *BlockRenderer) renderToolBodyLine(line string) string {
	switch {
	case strings.Contains(line, " "+diffMarkerRemoved+" "):
		return br.theme.DiffRemoved.Render(line)
	case strings.Contains(line, " "+diffMarkerAdded+" "):
		return br.theme.DiffAdded.Render(line)
	case strings.HasPrefix(line, "... ("):
		return br.theme.DiffGap.Render(line)
	case strings.HasPrefix(line, "... +"):
		return br.theme.ExpandHint.Render(line)
	case line == "⚠ Interrupted":
		return br.theme.Interrupt.Render(line)
	}
	if stripped, ok := stripStderrMarker(line); ok {
		return br.theme.Stderr.Render(stripped)
	}
	return br.theme.ToolBody.Render(line)
}

const (
	diffMarkerRemoved = "[R]-"
	diffMarkerAdded   = "[A]+"
)

// stripStderrMarker removes the reducer's stderr tag wherever it occurs
// after the tree connector prefix.
func stripStderrMarker(line string) (string, bool) {
	idx := strings.Index(line, transcript.StderrMarker)
	if idx < 0 {
		return line, false
	}
	return line[:idx] + line[idx+len(transcript.StderrMarker):], true
}

func (br *BlockRenderer) renderStatus(content string) string {
	switch {
	case content == "⚠ Interrupted":
		return br.theme.Interrupt.Render(content)
	case strings.HasPrefix(content, "API Error: "):
		return br.theme.ToolErr.Render(content)
	}
	return br.theme.StatusLine.Render(content)
}
