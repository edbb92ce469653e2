package transcript

import (
	"regexp"
	"strings"

	"codeterm/internal/linediff"
	"codeterm/internal/stream"
)

// toolHeaderMarker opens every tool-call block's header line.
const toolHeaderMarker = "● "

// interruptMarker is appended to an open tool call (or emitted as a
// standalone status block) when the turn is interrupted.
const interruptMarker = "⚠ Interrupted"

// DiagnosticLogger receives stream-integrity diagnostics (currently only
// unmatched tool results). It is a side channel: reducer output never
// depends on it, so replay parity is preserved with or without one.
type DiagnosticLogger interface {
	Warn(message string, fields map[string]interface{})
}

// Options tune rendering thresholds and inject the reducer's optional
// collaborators. The zero value is usable.
type Options struct {
	// ProgressWindow is the rolling-window size for ToolProgress output.
	ProgressWindow int
	// DiffCollapse and OutputCollapse are the collapse thresholds for
	// diff-rendered and plain tool output.
	DiffCollapse   int
	OutputCollapse int

	// FileLine resolves the 1-based starting line number of an edit diff
	// from the file path and the post-edit text. Nil or failing lookups
	// fall back to 1.
	FileLine func(path, content string) int

	// FinalizeText is applied exactly once to a streaming text block when
	// Done finalizes it (e.g. table realignment). Never applied on
	// intermediate Text chunks.
	FinalizeText func(string) string

	// Diagnostics, when set, receives stream-integrity warnings.
	Diagnostics DiagnosticLogger
}

// State is the reducer's complete materialized state: the transcript
// blocks plus the out-of-band numeric state extracted from
// Status/TokenUpdate/ContextFillUpdate chunks. State values are
// independent; Reduce never mutates its input.
type State struct {
	Blocks []Block

	Tokens      stream.TokenTracker
	ContextFill int
	// CompactionPct is the intercepted compaction progress, -1 when no
	// compaction is in flight.
	CompactionPct int

	pending pendingTable
}

// NewState returns an empty transcript state.
func NewState() State {
	return State{CompactionPct: -1, pending: pendingTable{}}
}

// PendingToolCalls reports how many announced tool calls have not yet
// received a result.
func (s State) PendingToolCalls() int {
	return len(s.pending)
}

// Reducer folds chunks into transcript state. Safe for sequential use on
// any number of independent states; a single state must only ever see
// its chunks in arrival order.
type Reducer struct {
	opts Options
}

// NewReducer applies defaults to opts.
func NewReducer(opts Options) *Reducer {
	if opts.ProgressWindow <= 0 {
		opts.ProgressWindow = DefaultProgressWindow
	}
	if opts.DiffCollapse <= 0 {
		opts.DiffCollapse = DefaultDiffCollapse
	}
	if opts.OutputCollapse <= 0 {
		opts.OutputCollapse = DefaultOutputCollapse
	}
	return &Reducer{opts: opts}
}

// ReduceAll replays an ordered chunk array through Reduce. Bulk replay
// and chunk-at-a-time live application produce identical states.
func (r *Reducer) ReduceAll(s State, chunks []stream.Chunk) State {
	for _, c := range chunks {
		s = r.Reduce(s, c)
	}
	return s
}

// Reduce applies one chunk and returns the successor state. It never
// fails: malformed input degrades to best-effort formatting and unknown
// chunk types are no-ops.
func (r *Reducer) Reduce(s State, c stream.Chunk) State {
	switch c.Type {
	case stream.TypeUserInput:
		return r.reduceInput(s, c, KindUserInput, c.Text)
	case stream.TypeWatcherInput:
		return r.reduceInput(s, c, KindWatcherInput, formatWatcherInput(c.Text))
	case stream.TypeText:
		return r.reduceText(s, c)
	case stream.TypeThinking:
		return r.reduceThinking(s, c)
	case stream.TypeToolCall:
		return r.reduceToolCall(s, c)
	case stream.TypeToolResult:
		return r.reduceToolResult(s, c)
	case stream.TypeToolProgress:
		return r.reduceToolProgress(s, c)
	case stream.TypeStatus:
		return r.reduceStatus(s, c)
	case stream.TypeTokenUpdate:
		if c.Tokens != nil {
			s.Tokens = *c.Tokens
		}
		return s
	case stream.TypeContextFillUpdate:
		if c.ContextFill != nil {
			s.ContextFill = c.ContextFill.FillPercentage
		}
		return s
	case stream.TypeDone:
		return r.reduceDone(s)
	case stream.TypeInterrupted:
		return r.reduceInterrupted(s, c)
	case stream.TypeError:
		return r.reduceError(s, c)
	default:
		return s
	}
}

func (r *Reducer) reduceInput(s State, c stream.Chunk, kind BlockKind, content string) State {
	b := stampCorrelation(Block{Kind: kind, Content: content}, c)
	s.Blocks = appendBlock(s.Blocks, b)
	return s
}

func (r *Reducer) reduceText(s State, c stream.Chunk) State {
	i := lastIndexOf(s.Blocks, KindAssistantText)
	if i >= 0 && s.Blocks[i].IsStreaming {
		b := s.Blocks[i]
		b.Content += c.Text
		b = mergeCorrelation(b, c)
		s.Blocks = setBlock(s.Blocks, i, b)
		return s
	}
	b := stampCorrelation(Block{Kind: KindAssistantText, Content: c.Text, IsStreaming: true}, c)
	s.Blocks = appendBlock(s.Blocks, b)
	return s
}

func (r *Reducer) reduceThinking(s State, c stream.Chunk) State {
	if i := currentThinkingIndex(s.Blocks); i >= 0 {
		b := s.Blocks[i]
		b.Content += c.Thinking
		b = mergeCorrelation(b, c)
		s.Blocks = setBlock(s.Blocks, i, b)
		return s
	}
	b := stampCorrelation(Block{Kind: KindThinking, Content: "[Thinking]\n" + c.Thinking}, c)
	if i := streamingIndex(s.Blocks); i >= 0 {
		s.Blocks = insertBlock(s.Blocks, i, b)
	} else {
		s.Blocks = appendBlock(s.Blocks, b)
	}
	return s
}

func (r *Reducer) reduceToolCall(s State, c stream.Chunk) State {
	call := c.ToolCall
	if call == nil {
		return s
	}

	parsed := parseToolInput(call.Input)
	s.pending = s.pending.put(call.ID, PendingToolCall{
		Name:     call.Name,
		Input:    parsed,
		RawInput: call.Input,
	})

	s.Blocks = settleStreamingText(s.Blocks)

	args := summarizeToolArgs(call.Name, parsed, call.Input)
	b := stampCorrelation(Block{
		Kind:       KindToolCall,
		Content:    toolHeaderMarker + call.Name + "(" + args + ")",
		ToolCallID: call.ID,
	}, c)
	s.Blocks = appendBlock(s.Blocks, b)
	return s
}

func (r *Reducer) reduceToolResult(s State, c stream.Chunk) State {
	result := c.ToolResult
	if result == nil {
		return s
	}

	info, known := s.pending.get(result.ToolCallID)
	ti := lastIndexOf(s.Blocks, KindToolCall)
	if !known || ti < 0 {
		// Stream-integrity problem: a result whose call is not open. It
		// must never attach to an already-resolved block, so it is dropped
		// from the transcript (replay parity) and reported.
		if r.opts.Diagnostics != nil {
			r.opts.Diagnostics.Warn("tool result without open tool call", map[string]interface{}{
				"tool_call_id": result.ToolCallID,
			})
		}
		return s
	}
	s.pending = s.pending.delete(result.ToolCallID)

	collapsed, full := r.renderToolResult(info, result.Content)

	s.Blocks = settleStreamingText(s.Blocks)
	// settleStreamingText can remove a block before ti; re-resolve.
	ti = lastIndexOf(s.Blocks, KindToolCall)

	b := s.Blocks[ti]
	header := headerLine(b.Content)
	b.Content = header
	if collapsed != "" {
		b.Content += "\n" + collapsed
	}
	if full != collapsed && full != "" {
		b.FullContent = header + "\n" + full
	}
	b.IsError = result.IsError
	b = mergeCorrelation(b, c)
	s.Blocks = setBlock(s.Blocks, ti, b)

	// Placeholder for the model's continuation after the tool result.
	placeholder := stampCorrelation(Block{Kind: KindAssistantText, IsStreaming: true}, c)
	s.Blocks = appendBlock(s.Blocks, placeholder)
	return s
}

// renderToolResult picks the rendering mode for a tool result: edit-style
// tools show a diff of old_string/new_string, write-style tools an
// all-additions diff of the written content, everything else plain
// collapsed output.
func (r *Reducer) renderToolResult(info PendingToolCall, content string) (collapsed, full string) {
	content = normalizeTabs(content)
	switch strings.ToLower(info.Name) {
	case "edit", "replace":
		oldStr, okOld := stringField(info.Input, "old_string")
		newStr, okNew := stringField(info.Input, "new_string")
		if okOld && okNew {
			lines := linediff.Diff(oldStr, newStr)
			start := r.diffStartLine(info, newStr)
			return RenderDiff(lines, start, r.opts.DiffCollapse), RenderDiffFull(lines, start)
		}
	case "write", "write_file":
		if written, ok := stringField(info.Input, "content"); ok {
			lines := linediff.Additions(written)
			return RenderDiff(lines, 1, r.opts.DiffCollapse), RenderDiffFull(lines, 1)
		}
	}
	return FormatToolOutput(content, r.opts.OutputCollapse), FormatToolOutputFull(content)
}

func (r *Reducer) diffStartLine(info PendingToolCall, newText string) int {
	if r.opts.FileLine == nil {
		return 1
	}
	path, ok := stringField(info.Input, "file_path")
	if !ok {
		return 1
	}
	if n := r.opts.FileLine(path, newText); n >= 1 {
		return n
	}
	return 1
}

func (r *Reducer) reduceToolProgress(s State, c stream.Chunk) State {
	progress := c.ToolProgress
	if progress == nil || len(s.Blocks) == 0 {
		return s
	}
	last := len(s.Blocks) - 1
	b := s.Blocks[last]
	if b.Kind != KindToolCall || !s.pending.has(b.ToolCallID) {
		return s
	}

	header := headerLine(b.Content)
	body := ""
	if idx := strings.IndexByte(b.Content, '\n'); idx >= 0 {
		body = b.Content[idx+1:]
	}
	body = appendProgress(body, progress.OutputChunk, progress.IsStderr, r.opts.ProgressWindow)
	b.Content = header
	if body != "" {
		b.Content += "\n" + body
	}
	b = mergeCorrelation(b, c)
	s.Blocks = setBlock(s.Blocks, last, b)
	return s
}

func (r *Reducer) reduceStatus(s State, c stream.Chunk) State {
	if pct, ok := compactionStatus(c.Status); ok {
		s.CompactionPct = pct
		return s
	}
	b := stampCorrelation(Block{Kind: KindStatus, Content: c.Status}, c)
	s.Blocks = appendBlock(s.Blocks, b)
	return s
}

func (r *Reducer) reduceDone(s State) State {
	i := streamingIndex(s.Blocks)
	if i < 0 {
		return s
	}
	b := s.Blocks[i]
	if b.Kind == KindAssistantText && b.Content == "" {
		s.Blocks = removeBlock(s.Blocks, i)
		return s
	}
	b.IsStreaming = false
	if b.Kind == KindAssistantText && r.opts.FinalizeText != nil {
		b.Content = r.opts.FinalizeText(b.Content)
	}
	s.Blocks = setBlock(s.Blocks, i, b)
	return s
}

func (r *Reducer) reduceInterrupted(s State, c stream.Chunk) State {
	if i := streamingIndex(s.Blocks); i >= 0 && s.Blocks[i].Kind == KindAssistantText && s.Blocks[i].Content == "" {
		s.Blocks = removeBlock(s.Blocks, i)
	}

	ti := lastIndexOf(s.Blocks, KindToolCall)
	if ti >= 0 && s.pending.has(s.Blocks[ti].ToolCallID) {
		// The tool call never got a result; mark it inline.
		b := s.Blocks[ti]
		b.Content += "\n" + interruptMarker
		s.Blocks = setBlock(s.Blocks, ti, b)
		s.pending = s.pending.delete(b.ToolCallID)
	} else {
		b := stampCorrelation(Block{Kind: KindStatus, Content: interruptMarker}, c)
		s.Blocks = appendBlock(s.Blocks, b)
	}

	if i := streamingIndex(s.Blocks); i >= 0 {
		b := s.Blocks[i]
		b.IsStreaming = false
		s.Blocks = setBlock(s.Blocks, i, b)
	}
	return s
}

func (r *Reducer) reduceError(s State, c stream.Chunk) State {
	if i := streamingIndex(s.Blocks); i >= 0 && s.Blocks[i].Kind == KindAssistantText && s.Blocks[i].Content == "" {
		s.Blocks = removeBlock(s.Blocks, i)
	}
	b := stampCorrelation(Block{Kind: KindStatus, Content: "API Error: " + c.Error}, c)
	s.Blocks = appendBlock(s.Blocks, b)
	return s
}

// settleStreamingText closes out the open streaming text block at a tool
// boundary: an empty block is pruned, a non-empty one finalized. Text and
// tool-call blocks never interleave mid-stream.
func settleStreamingText(blocks []Block) []Block {
	i := streamingIndex(blocks)
	if i < 0 || blocks[i].Kind != KindAssistantText {
		return blocks
	}
	if blocks[i].Content == "" {
		return removeBlock(blocks, i)
	}
	b := blocks[i]
	b.IsStreaming = false
	return setBlock(blocks, i, b)
}

func headerLine(content string) string {
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		return content[:idx]
	}
	return content
}

// Compaction statuses are metadata about context management, not
// conversation content; they update the numeric indicator instead of the
// transcript. A bare completion status clears it.
var compactingStatusRe = regexp.MustCompile(`^Compacting context(?:\.\.\.)?(?:\s*(\d+)%)?$`)

func compactionStatus(status string) (pct int, intercepted bool) {
	status = strings.TrimSpace(status)
	if status == "Context compacted" {
		return -1, true
	}
	m := compactingStatusRe.FindStringSubmatch(status)
	if m == nil {
		return 0, false
	}
	pct = 0
	if m[1] != "" {
		for _, r := range m[1] {
			pct = pct*10 + int(r-'0')
		}
	}
	return pct, true
}

// Pure block-slice transformations. Each returns a fresh slice so prior
// State values remain valid, which is what makes fold/replay equivalence
// hold.

func appendBlock(blocks []Block, b Block) []Block {
	out := make([]Block, len(blocks)+1)
	copy(out, blocks)
	out[len(blocks)] = b
	return out
}

func setBlock(blocks []Block, i int, b Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	out[i] = b
	return out
}

func removeBlock(blocks []Block, i int) []Block {
	out := make([]Block, 0, len(blocks)-1)
	out = append(out, blocks[:i]...)
	out = append(out, blocks[i+1:]...)
	return out
}

func insertBlock(blocks []Block, i int, b Block) []Block {
	out := make([]Block, 0, len(blocks)+1)
	out = append(out, blocks[:i]...)
	out = append(out, b)
	out = append(out, blocks[i:]...)
	return out
}
