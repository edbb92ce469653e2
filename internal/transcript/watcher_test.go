package transcript

import "testing"

func TestFormatWatcherInput(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{
			"supervisor with newline",
			"[WATCHER: code-reviewer | Authority: Supervisor | Session: abc-123]\nLooks wrong.",
			"[W] code-reviewer> Looks wrong.",
		},
		{
			"peer with space",
			"[WATCHER: tester | Authority: Peer | Session: s-9] Run the suite.",
			"[W] tester> Run the suite.",
		},
		{
			"multiline content",
			"[WATCHER: tester | Authority: Peer | Session: s-9]\nline one\nline two",
			"[W] tester> line one\nline two",
		},
		{
			"unknown authority falls open",
			"[WATCHER: x | Authority: Boss | Session: s]\nhello",
			"[WATCHER: x | Authority: Boss | Session: s]\nhello",
		},
		{
			"plain text passes through",
			"just a note",
			"just a note",
		},
		{
			"empty string",
			"",
			"",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatWatcherInput(tc.in); got != tc.want {
				t.Fatalf("formatWatcherInput(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
