package app

import (
	"os"
	"strings"
)

// FileLine locates the 1-based line number where content now appears in
// the file at path, so edit diffs can number lines from their real
// position. Any failure (missing file, content not found) falls back to
// 1; the transcript renders either way.
func FileLine(path, content string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		return 1
	}
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return 1
	}
	idx := strings.Index(string(data), content)
	if idx < 0 {
		// Fall back to the first line of the content; partial matches
		// happen when the engine re-indents on write.
		first := content
		if nl := strings.IndexByte(first, '\n'); nl >= 0 {
			first = first[:nl]
		}
		idx = strings.Index(string(data), first)
		if idx < 0 {
			return 1
		}
	}
	return 1 + strings.Count(string(data[:idx]), "\n")
}
