package transcript

import "regexp"

// Watcher inputs arrive with a structured prefix injected by the session
// layer:
//
//	[WATCHER: <role> | Authority: <Supervisor|Peer> | Session: <id>]
//	<content>
//
// The parser is fail-open: a message that does not match is displayed
// verbatim rather than dropped.
var watcherPrefixRe = regexp.MustCompile(
	`^\[WATCHER: ([^|\]]+?) \| Authority: (Supervisor|Peer) \| Session: ([^\]]+)\][ \n]`,
)

// formatWatcherInput renders a watcher message as "[W] <role>> <content>"
// when the structured prefix parses, or returns the raw text unmodified.
func formatWatcherInput(text string) string {
	m := watcherPrefixRe.FindStringSubmatch(text)
	if m == nil {
		return text
	}
	content := text[len(m[0]):]
	return "[W] " + m[1] + "> " + content
}
