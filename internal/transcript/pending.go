package transcript

import "encoding/json"

// PendingToolCall bridges a ToolCall chunk to its later ToolResult.
// Entries are turn-scoped: created when the call is announced, removed
// when the result arrives or the turn is interrupted. An entry that is
// never resolved (truncated stream) is simply dropped with the state.
type PendingToolCall struct {
	Name string
	// Input is the parsed argument object, nil when the input string was
	// not a JSON object.
	Input map[string]any
	// RawInput preserves the original encoding for opaque display.
	RawInput string
}

// pendingTable maps tool-call id to its pending info. Mutating methods
// return a fresh map so State values stay independent.
type pendingTable map[string]PendingToolCall

func (t pendingTable) put(id string, info PendingToolCall) pendingTable {
	next := make(pendingTable, len(t)+1)
	for k, v := range t {
		next[k] = v
	}
	next[id] = info
	return next
}

func (t pendingTable) delete(id string) pendingTable {
	if _, ok := t[id]; !ok {
		return t
	}
	next := make(pendingTable, len(t))
	for k, v := range t {
		if k != id {
			next[k] = v
		}
	}
	return next
}

func (t pendingTable) get(id string) (PendingToolCall, bool) {
	info, ok := t[id]
	return info, ok
}

func (t pendingTable) has(id string) bool {
	_, ok := t[id]
	return ok
}

// parseToolInput decodes a tool call's JSON input. Anything that is not a
// JSON object is treated as opaque (nil map); display falls back to the
// raw string.
func parseToolInput(raw string) map[string]any {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil
	}
	return parsed
}
