// Package transcript materializes an ordered chunk stream into a
// renderable conversation transcript. The same reducer serves live
// streaming (one chunk at a time) and bulk replay of a buffered chunk
// log; both produce identical transcripts.
package transcript

type BlockKind string

const (
	KindUserInput     BlockKind = "user-input"
	KindWatcherInput  BlockKind = "watcher-input"
	KindAssistantText BlockKind = "assistant-text"
	KindThinking      BlockKind = "thinking"
	KindToolCall      BlockKind = "tool-call"
	KindStatus        BlockKind = "status"
)

// Block is one unit of the materialized transcript.
type Block struct {
	Kind    BlockKind `json:"kind"`
	Content string    `json:"content"`

	// FullContent holds the uncollapsed rendering for blocks that support
	// expansion (tool-call blocks with large output). Empty otherwise.
	FullContent string `json:"full_content,omitempty"`

	// ToolCallID links a tool-call block back to the invocation that
	// produced it.
	ToolCallID string `json:"tool_call_id,omitempty"`

	// IsStreaming is true while the block is still receiving appended
	// content. At most one block in a transcript is streaming at a time.
	IsStreaming bool `json:"is_streaming,omitempty"`

	// IsError marks a failed tool invocation.
	IsError bool `json:"is_error,omitempty"`

	// CorrelationID is set by the first chunk that carried one and never
	// reassigned. ObservedCorrelationIDs grows by set union as further
	// chunks merge into the block.
	CorrelationID          string   `json:"correlation_id,omitempty"`
	ObservedCorrelationIDs []string `json:"observed_correlation_ids,omitempty"`
}
