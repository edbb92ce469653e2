package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"codeterm/internal/stream"
)

// MockEngine simulates the external agent engine so the client runs
// without a real backend. It feeds scripted chunk sequences through a
// BackgroundSession, exercising the same streaming path a live engine
// would.
type MockEngine struct {
	session *BackgroundSession
	// Delay between emitted chunks; zero emits synchronously (tests).
	Delay time.Duration
}

func NewMockEngine(session *BackgroundSession) *MockEngine {
	return &MockEngine{session: session, Delay: 25 * time.Millisecond}
}

// Send runs one scripted turn for the given input. It returns once all
// chunks for the turn have been handed to the session.
func (e *MockEngine) Send(input string) {
	for _, c := range e.scriptTurn(input) {
		if e.session.Interrupted() {
			e.session.HandleOutput(stream.Interrupted())
			e.session.ResetInterrupt()
			return
		}
		e.session.HandleOutput(c)
		if e.Delay > 0 {
			time.Sleep(e.Delay)
		}
	}
}

func (e *MockEngine) scriptTurn(input string) []stream.Chunk {
	callID := uuid.NewString()
	lower := strings.ToLower(input)

	chunks := []stream.Chunk{
		stream.UserInput(input).WithCorrelation(uuid.NewString()),
		stream.Thinking("The user wants: " + input + ". "),
		stream.Thinking("I will run a command to find out."),
	}

	switch {
	case strings.Contains(lower, "list") || strings.Contains(lower, "files"):
		chunks = append(chunks,
			stream.ToolCall(callID, "bash", `{"command":"ls"}`),
			stream.ToolProgress(callID, "bash", "README.md\n", false),
			stream.ToolProgress(callID, "bash", "go.mod\nmain.go\n", false),
			stream.ToolResult(callID, "README.md\ngo.mod\nmain.go", false),
			stream.Text("The directory contains README.md, go.mod and main.go."),
		)
	case strings.Contains(lower, "edit"):
		chunks = append(chunks,
			stream.ToolCall(callID, "edit", `{"file_path":"main.go","old_string":"println(\"hi\")","new_string":"fmt.Println(\"hi\")"}`),
			stream.ToolResult(callID, "ok", false),
			stream.Text("Switched to fmt.Println."),
		)
	case strings.Contains(lower, "fail"):
		chunks = append(chunks,
			stream.ToolCall(callID, "bash", `{"command":"false"}`),
			stream.ToolResult(callID, "exit status 1", true),
			stream.Text("The command failed."),
		)
	default:
		chunks = append(chunks,
			stream.Text(fmt.Sprintf("Echo: %s", input)),
		)
	}

	chunks = append(chunks,
		stream.TokenUpdate(stream.TokenTracker{
			InputTokens:     120 + len(input),
			OutputTokens:    48,
			TokensPerSecond: 35.5,
		}),
		stream.ContextFillUpdate(stream.ContextFillInfo{FillPercentage: 12}),
		stream.Done(),
	)
	return chunks
}
