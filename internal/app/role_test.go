package app

import "testing"

func TestParseInterjection(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     Interjection
		ok       bool
	}{
		{
			"valid urgent",
			"[INTERJECT]\nurgent: true\ncontent: Security issue in auth.go\n[/INTERJECT]",
			Interjection{Urgent: true, Content: "Security issue in auth.go"},
			true,
		},
		{
			"valid non-urgent multiline",
			"[INTERJECT]\nurgent: false\ncontent: First line\nsecond line\n[/INTERJECT]",
			Interjection{Urgent: false, Content: "First line\nsecond line"},
			true,
		},
		{
			"continue wins",
			"[CONTINUE]\nall good\n[/CONTINUE]",
			Interjection{},
			false,
		},
		{
			"missing urgent",
			"[INTERJECT]\ncontent: hello\n[/INTERJECT]",
			Interjection{},
			false,
		},
		{
			"invalid urgent value",
			"[INTERJECT]\nurgent: yes\ncontent: hello\n[/INTERJECT]",
			Interjection{},
			false,
		},
		{
			"empty content",
			"[INTERJECT]\nurgent: true\ncontent:\n[/INTERJECT]",
			Interjection{},
			false,
		},
		{
			"no block",
			"looks fine to me",
			Interjection{},
			false,
		},
		{
			"unclosed block",
			"[INTERJECT]\nurgent: true\ncontent: hello",
			Interjection{},
			false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseInterjection(tc.response)
			if ok != tc.ok {
				t.Fatalf("ok = %v, want %v", ok, tc.ok)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestFormatWatcherMessage(t *testing.T) {
	got := FormatWatcherMessage(WatcherMessage{
		SourceSessionID: "s-42",
		RoleName:        "code-reviewer",
		Authority:       AuthoritySupervisor,
		Message:         "Check error handling.",
	})
	want := "[WATCHER: code-reviewer | Authority: Supervisor | Session: s-42]\nCheck error handling."
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestParseAuthority(t *testing.T) {
	if a, ok := ParseAuthority("supervisor"); !ok || a != AuthoritySupervisor {
		t.Fatalf("supervisor parse failed: %v %v", a, ok)
	}
	if a, ok := ParseAuthority("Peer"); !ok || a != AuthorityPeer {
		t.Fatalf("peer parse failed: %v %v", a, ok)
	}
	if _, ok := ParseAuthority("boss"); ok {
		t.Fatal("invalid authority accepted")
	}
}

func TestNewSessionRole_RejectsEmptyName(t *testing.T) {
	if _, err := NewSessionRole("", "", AuthorityPeer); err == nil {
		t.Fatal("empty role name accepted")
	}
}
