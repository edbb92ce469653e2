package stream

// Chunk types emitted by the agent engine. The transcript reducer treats
// unknown types as no-ops, so new types can be added without breaking
// older clients.
const (
	TypeUserInput         = "UserInput"
	TypeWatcherInput      = "WatcherInput"
	TypeText              = "Text"
	TypeThinking          = "Thinking"
	TypeToolCall          = "ToolCall"
	TypeToolResult        = "ToolResult"
	TypeToolProgress      = "ToolProgress"
	TypeStatus            = "Status"
	TypeTokenUpdate       = "TokenUpdate"
	TypeContextFillUpdate = "ContextFillUpdate"
	TypeDone              = "Done"
	TypeInterrupted       = "Interrupted"
	TypeError             = "Error"
)

// ToolCallInfo describes a tool invocation. Input is the JSON-encoded
// argument object exactly as the engine produced it.
type ToolCallInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Input string `json:"input"`
}

// ToolResultInfo carries the final output of a tool invocation.
type ToolResultInfo struct {
	ToolCallID string `json:"tool_call_id"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error"`
}

// ToolProgressInfo carries incremental output while a tool is still
// running. OutputChunk may start or end mid-line.
type ToolProgressInfo struct {
	ToolCallID  string `json:"tool_call_id"`
	ToolName    string `json:"tool_name"`
	OutputChunk string `json:"output_chunk"`
	IsStderr    bool   `json:"is_stderr"`
}

// TokenTracker mirrors the engine's token accounting.
type TokenTracker struct {
	InputTokens              int     `json:"input_tokens"`
	OutputTokens             int     `json:"output_tokens"`
	CacheReadInputTokens     int     `json:"cache_read_input_tokens,omitempty"`
	CacheCreationInputTokens int     `json:"cache_creation_input_tokens,omitempty"`
	TokensPerSecond          float64 `json:"tokens_per_second,omitempty"`
	CumulativeBilledInput    int     `json:"cumulative_billed_input,omitempty"`
	CumulativeBilledOutput   int     `json:"cumulative_billed_output,omitempty"`
}

// ContextFillInfo reports context-window usage. FillPercentage can exceed
// 100 shortly before the engine compacts.
type ContextFillInfo struct {
	FillPercentage  int     `json:"fill_percentage"`
	EffectiveTokens float64 `json:"effective_tokens"`
	Threshold       float64 `json:"threshold"`
	ContextWindow   float64 `json:"context_window"`
}

// Chunk is one event in the ordered protocol stream. Exactly one payload
// field is populated, selected by Type.
type Chunk struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	Thinking     string            `json:"thinking,omitempty"`
	ToolCall     *ToolCallInfo     `json:"tool_call,omitempty"`
	ToolResult   *ToolResultInfo   `json:"tool_result,omitempty"`
	ToolProgress *ToolProgressInfo `json:"tool_progress,omitempty"`
	Status       string            `json:"status,omitempty"`
	Tokens       *TokenTracker     `json:"tokens,omitempty"`
	ContextFill  *ContextFillInfo  `json:"context_fill,omitempty"`
	Error        string            `json:"error,omitempty"`

	// CorrelationID identifies this event for cross-pane highlighting.
	// ObservedCorrelationIDs lists parent-session events this chunk was
	// conditioned on (watcher sessions only).
	CorrelationID          string   `json:"correlation_id,omitempty"`
	ObservedCorrelationIDs []string `json:"observed_correlation_ids,omitempty"`
}

func UserInput(text string) Chunk {
	return Chunk{Type: TypeUserInput, Text: text}
}

func WatcherInput(text string) Chunk {
	return Chunk{Type: TypeWatcherInput, Text: text}
}

func Text(text string) Chunk {
	return Chunk{Type: TypeText, Text: text}
}

func Thinking(text string) Chunk {
	return Chunk{Type: TypeThinking, Thinking: text}
}

func ToolCall(id, name, input string) Chunk {
	return Chunk{Type: TypeToolCall, ToolCall: &ToolCallInfo{ID: id, Name: name, Input: input}}
}

func ToolResult(toolCallID, content string, isError bool) Chunk {
	return Chunk{Type: TypeToolResult, ToolResult: &ToolResultInfo{ToolCallID: toolCallID, Content: content, IsError: isError}}
}

func ToolProgress(toolCallID, toolName, output string, isStderr bool) Chunk {
	return Chunk{Type: TypeToolProgress, ToolProgress: &ToolProgressInfo{
		ToolCallID:  toolCallID,
		ToolName:    toolName,
		OutputChunk: output,
		IsStderr:    isStderr,
	}}
}

func Status(message string) Chunk {
	return Chunk{Type: TypeStatus, Status: message}
}

func TokenUpdate(tokens TokenTracker) Chunk {
	return Chunk{Type: TypeTokenUpdate, Tokens: &tokens}
}

func ContextFillUpdate(info ContextFillInfo) Chunk {
	return Chunk{Type: TypeContextFillUpdate, ContextFill: &info}
}

func Done() Chunk {
	return Chunk{Type: TypeDone}
}

func Interrupted() Chunk {
	return Chunk{Type: TypeInterrupted}
}

func Error(message string) Chunk {
	return Chunk{Type: TypeError, Error: message}
}

// WithCorrelation returns a copy of the chunk carrying a correlation id.
func (c Chunk) WithCorrelation(id string) Chunk {
	c.CorrelationID = id
	return c
}

// WithObserved returns a copy of the chunk carrying observed correlation ids.
func (c Chunk) WithObserved(ids ...string) Chunk {
	c.ObservedCorrelationIDs = ids
	return c
}

// EndsTurn reports whether the chunk terminates the current turn for
// control-flow purposes. Error ends the turn like Done and Interrupted
// even though the reducer only renders it as a status block.
func (c Chunk) EndsTurn() bool {
	switch c.Type {
	case TypeDone, TypeInterrupted, TypeError:
		return true
	}
	return false
}
