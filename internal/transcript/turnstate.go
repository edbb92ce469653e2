package transcript

// Turn-scoped position helpers. A turn spans the chunks between one
// user/watcher input and the next; thinking-block reuse and the open
// streaming block are both bounded by the current turn, which these
// helpers derive from the block sequence itself so that live streaming
// and replay agree by construction.

func lastIndexOf(blocks []Block, kind BlockKind) int {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].Kind == kind {
			return i
		}
	}
	return -1
}

// streamingIndex returns the index of the open streaming block, or -1.
// The reducer maintains at most one.
func streamingIndex(blocks []Block) int {
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].IsStreaming {
			return i
		}
	}
	return -1
}

// currentThinkingIndex returns the thinking block belonging to the
// current turn, or -1. A thinking block is reusable only if it appears
// after the most recent tool call and after the most recent user or
// watcher input; a ToolCall chunk therefore implicitly resets thinking
// accumulation for the rest of the turn.
func currentThinkingIndex(blocks []Block) int {
	ti := lastIndexOf(blocks, KindThinking)
	if ti < 0 {
		return -1
	}
	if ti < lastIndexOf(blocks, KindToolCall) {
		return -1
	}
	if ti < lastIndexOf(blocks, KindUserInput) {
		return -1
	}
	if ti < lastIndexOf(blocks, KindWatcherInput) {
		return -1
	}
	return ti
}
