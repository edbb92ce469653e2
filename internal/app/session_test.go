package app

import (
	"testing"

	"codeterm/internal/stream"
	"codeterm/internal/transcript"
)

func TestBackgroundSession_BufferReplayMatchesLive(t *testing.T) {
	s := NewBackgroundSession("main", 0, nil)
	eng := NewMockEngine(s)
	eng.Delay = 0

	ch, cancel := s.Subscribe()
	defer cancel()

	eng.Send("list the files")

	r := transcript.NewReducer(transcript.Options{})

	live := transcript.NewState()
	for len(ch) > 0 {
		live = r.Reduce(live, <-ch)
	}

	replayed := r.ReduceAll(transcript.NewState(), s.BufferedOutput(0))

	if len(live.Blocks) != len(replayed.Blocks) {
		t.Fatalf("live produced %d blocks, replay %d", len(live.Blocks), len(replayed.Blocks))
	}
	for i := range live.Blocks {
		if live.Blocks[i].Content != replayed.Blocks[i].Content {
			t.Fatalf("block %d differs:\nlive:   %q\nreplay: %q",
				i, live.Blocks[i].Content, replayed.Blocks[i].Content)
		}
	}
	if live.Tokens != replayed.Tokens {
		t.Fatalf("token state differs: %+v vs %+v", live.Tokens, replayed.Tokens)
	}
}

func TestBackgroundSession_BufferedOutputLimit(t *testing.T) {
	s := NewBackgroundSession("main", 0, nil)
	for i := 0; i < 5; i++ {
		s.HandleOutput(stream.Text("x"))
	}
	if got := len(s.BufferedOutput(3)); got != 3 {
		t.Fatalf("limited buffer length = %d, want 3", got)
	}
	if got := len(s.BufferedOutput(0)); got != 5 {
		t.Fatalf("full buffer length = %d, want 5", got)
	}
}

func TestBackgroundSession_BufferTrimsAtLimit(t *testing.T) {
	s := NewBackgroundSession("main", 3, nil)
	for i := 0; i < 10; i++ {
		s.HandleOutput(stream.UserInput(string(rune('a' + i))))
	}
	buf := s.BufferedOutput(0)
	if len(buf) != 3 {
		t.Fatalf("buffer length = %d, want 3", len(buf))
	}
	if buf[0].Text != "h" || buf[2].Text != "j" {
		t.Fatalf("buffer kept wrong tail: %q .. %q", buf[0].Text, buf[2].Text)
	}
}

func TestBackgroundSession_StatusTransitions(t *testing.T) {
	s := NewBackgroundSession("main", 0, nil)
	if s.Info().Status != StatusIdle {
		t.Fatal("new session not idle")
	}
	s.HandleOutput(stream.Text("hi"))
	if s.Info().Status != StatusRunning {
		t.Fatal("text chunk should mark session running")
	}
	s.HandleOutput(stream.Done())
	if s.Info().Status != StatusDone {
		t.Fatal("done chunk should mark session done")
	}
	s.HandleOutput(stream.Error("boom"))
	if s.Info().Status != StatusFailed {
		t.Fatal("error chunk should mark session failed")
	}
}

func TestBackgroundSession_PendingObservedStamping(t *testing.T) {
	s := NewBackgroundSession("watcher", 0, nil)
	s.SetPendingObservedCorrelationIDs([]string{"parent-1", "parent-2"})

	s.HandleOutput(stream.Text("I noticed something"))
	s.HandleOutput(stream.Text("unrelated"))

	buf := s.BufferedOutput(0)
	if got := buf[0].ObservedCorrelationIDs; len(got) != 2 || got[0] != "parent-1" || got[1] != "parent-2" {
		t.Fatalf("first chunk observed ids = %v", got)
	}
	if len(buf[1].ObservedCorrelationIDs) != 0 {
		t.Fatalf("stamp leaked onto second chunk: %v", buf[1].ObservedCorrelationIDs)
	}
}

func TestBackgroundSession_SubscribeCancel(t *testing.T) {
	s := NewBackgroundSession("main", 0, nil)
	ch, cancel := s.Subscribe()
	s.HandleOutput(stream.Text("one"))
	if c := <-ch; c.Text != "one" {
		t.Fatalf("subscriber got %q", c.Text)
	}
	cancel()
	if _, open := <-ch; open {
		t.Fatal("channel still open after cancel")
	}
	// Delivering after cancel must not panic.
	s.HandleOutput(stream.Text("two"))
}

func TestBackgroundSession_InterruptFlagAndRole(t *testing.T) {
	s := NewBackgroundSession("main", 0, nil)

	s.Interrupt()
	if !s.Interrupted() {
		t.Fatal("interrupt flag not set")
	}
	s.ResetInterrupt()
	if s.Interrupted() {
		t.Fatal("interrupt flag not cleared")
	}

	role, err := NewSessionRole("reviewer", "reviews diffs", AuthoritySupervisor)
	if err != nil {
		t.Fatal(err)
	}
	s.SetRole(role)
	got, ok := s.Role()
	if !ok || got.Name != "reviewer" || got.Authority != AuthoritySupervisor {
		t.Fatalf("role round-trip failed: %+v %v", got, ok)
	}
	s.ClearRole()
	if _, ok := s.Role(); ok {
		t.Fatal("role not cleared")
	}
}

func TestWatcherMessageRendersThroughTranscript(t *testing.T) {
	msg := FormatWatcherMessage(WatcherMessage{
		SourceSessionID: "abc",
		RoleName:        "code-reviewer",
		Authority:       AuthorityPeer,
		Message:         "Consider a table here.",
	})

	r := transcript.NewReducer(transcript.Options{})
	st := r.Reduce(transcript.NewState(), stream.WatcherInput(msg))

	if len(st.Blocks) != 1 {
		t.Fatalf("got %d blocks", len(st.Blocks))
	}
	want := "[W] code-reviewer> Consider a table here."
	if st.Blocks[0].Content != want {
		t.Fatalf("rendered %q, want %q", st.Blocks[0].Content, want)
	}
}
