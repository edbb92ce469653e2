package transcript

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const argValueLimit = 50

// summarizeToolArgs builds the short argument preview shown in a
// tool-call header. Lookup order is tool-family specific: web-search
// tools get a dedicated extraction, everything else falls through a
// fixed field-priority list, then to the first object entry. New tool
// families are new lookup entries, not new types.
func summarizeToolArgs(name string, input map[string]any, raw string) string {
	if input == nil {
		return truncateArg(strings.TrimSpace(raw))
	}

	if isWebSearchTool(name) {
		if s := webSearchSummary(input); s != "" {
			return s
		}
	}

	for _, key := range []string{"command", "file_path", "pattern"} {
		if v, ok := stringField(input, key); ok {
			return truncateArg(v)
		}
	}

	// Fall back to the alphabetically first entry so replay stays
	// deterministic regardless of JSON object order.
	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	k := keys[0]
	return fmt.Sprintf("%s: %s", k, renderArgValue(input[k]))
}

func isWebSearchTool(name string) bool {
	switch strings.ToLower(name) {
	case "web_search", "websearch":
		return true
	}
	return false
}

func webSearchSummary(input map[string]any) string {
	action, _ := stringField(input, "action")
	for _, key := range []string{"query", "url", "pattern"} {
		if v, ok := stringField(input, key); ok {
			if action == "" {
				return truncateArg(v)
			}
			return action + " " + truncateArg(v)
		}
	}
	return action
}

func stringField(input map[string]any, key string) (string, bool) {
	v, ok := input[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func renderArgValue(v any) string {
	if s, ok := v.(string); ok {
		return truncateArg(s)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return truncateArg(fmt.Sprintf("%v", v))
	}
	return truncateArg(string(data))
}

func truncateArg(s string) string {
	// Rune-based so multibyte values are never cut mid-character.
	runes := []rune(s)
	if len(runes) <= argValueLimit {
		return s
	}
	return string(runes[:argValueLimit]) + "..."
}
