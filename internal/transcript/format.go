package transcript

import "strings"

const (
	// DefaultOutputCollapse bounds plain tool output before the expand
	// hint.
	DefaultOutputCollapse = 8

	// DefaultProgressWindow is the rolling-window size for streamed tool
	// progress: only the trailing lines are kept, which bounds memory and
	// render cost for noisy tools.
	DefaultProgressWindow = 10

	treeFirstPrefix = "L "
	treeContPrefix  = "  "
)

// StderrMarker tags stderr progress lines for downstream color
// rendering. The rendering layer strips it before display.
const StderrMarker = "[stderr] "

// FormatToolOutput renders plain (non-diff) tool output with tree
// connectors, truncated to the collapse threshold.
func FormatToolOutput(output string, collapse int) string {
	if collapse <= 0 {
		collapse = DefaultOutputCollapse
	}
	output = normalizeTabs(output)
	if output == "" {
		return ""
	}
	lines := strings.Split(output, "\n")
	if len(lines) <= collapse {
		return treePrefix(lines)
	}
	shown := treePrefix(lines[:collapse])
	return shown + "\n" + treeContPrefix + expandHint(len(lines)-collapse)
}

// FormatToolOutputFull renders every line tree-prefixed with no
// truncation. Stored as FullContent for expansion.
func FormatToolOutputFull(output string) string {
	output = normalizeTabs(output)
	if output == "" {
		return ""
	}
	return treePrefix(strings.Split(output, "\n"))
}

// appendProgress folds an incremental output chunk into the rendered
// progress body of an open tool-call block: recover the raw output,
// concatenate (chunks may split mid-line), keep only the trailing window,
// re-render. Stderr chunks get a per-line marker before concatenation.
func appendProgress(renderedBody, chunk string, isStderr bool, window int) string {
	if window <= 0 {
		window = DefaultProgressWindow
	}
	chunk = normalizeTabs(chunk)
	if isStderr {
		chunk = tagStderr(chunk)
	}
	raw := extractRawOutput(renderedBody) + chunk
	if raw == "" {
		return ""
	}
	lines := strings.Split(raw, "\n")
	if len(lines) > window {
		lines = lines[len(lines)-window:]
	}
	return treePrefix(lines)
}

// extractRawOutput strips tree-connector prefixes from a rendered
// progress body, recovering the underlying output text.
func extractRawOutput(renderedBody string) string {
	if renderedBody == "" {
		return ""
	}
	lines := strings.Split(renderedBody, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, treeFirstPrefix):
			lines[i] = line[len(treeFirstPrefix):]
		case strings.HasPrefix(line, treeContPrefix):
			lines[i] = line[len(treeContPrefix):]
		}
	}
	return strings.Join(lines, "\n")
}

func tagStderr(chunk string) string {
	if chunk == "" {
		return ""
	}
	segments := strings.Split(chunk, "\n")
	for i, seg := range segments {
		if seg != "" && !strings.HasPrefix(seg, StderrMarker) {
			segments[i] = StderrMarker + seg
		}
	}
	return strings.Join(segments, "\n")
}

func treePrefix(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		if i == 0 {
			b.WriteString(treeFirstPrefix)
		} else {
			b.WriteString("\n")
			b.WriteString(treeContPrefix)
		}
		b.WriteString(line)
	}
	return b.String()
}

func normalizeTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "  ")
}
