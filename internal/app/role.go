package app

import (
	"errors"
	"fmt"
	"strings"
)

// RoleAuthority is the authority level a watcher session holds over the
// session it observes.
type RoleAuthority int

const (
	AuthorityPeer RoleAuthority = iota
	AuthoritySupervisor
)

func ParseAuthority(s string) (RoleAuthority, bool) {
	switch strings.ToLower(s) {
	case "peer":
		return AuthorityPeer, true
	case "supervisor":
		return AuthoritySupervisor, true
	}
	return AuthorityPeer, false
}

func (a RoleAuthority) String() string {
	if a == AuthoritySupervisor {
		return "Supervisor"
	}
	return "Peer"
}

// SessionRole describes what a watcher session is for and how much
// weight its interjections carry.
type SessionRole struct {
	Name        string
	Description string
	Authority   RoleAuthority

	// AutoInject sends parsed interjections into the parent session
	// automatically; when false they are surfaced for manual review.
	AutoInject bool
}

func NewSessionRole(name, description string, authority RoleAuthority) (SessionRole, error) {
	if name == "" {
		return SessionRole{}, errors.New("role name cannot be empty")
	}
	return SessionRole{
		Name:        name,
		Description: description,
		Authority:   authority,
		AutoInject:  true,
	}, nil
}

// WatcherMessage is a message a watcher injects into its parent session.
type WatcherMessage struct {
	SourceSessionID string
	RoleName        string
	Authority       RoleAuthority
	Message         string
}

// FormatWatcherMessage renders the structured prefix the transcript
// engine parses on WatcherInput chunks.
func FormatWatcherMessage(m WatcherMessage) string {
	return fmt.Sprintf("[WATCHER: %s | Authority: %s | Session: %s]\n%s",
		m.RoleName, m.Authority, m.SourceSessionID, m.Message)
}

// Interjection is a watcher's decision to interrupt or message the
// parent session.
type Interjection struct {
	// Urgent interjections interrupt the parent mid-stream instead of
	// waiting for the next turn boundary.
	Urgent  bool
	Content string
}

// ParseInterjection extracts an [INTERJECT] block from a watcher
// response. A [CONTINUE] block, a missing block, or malformed fields all
// mean no interjection. Parsing is strict: lowercase field names,
// urgent must be exactly true or false, content must be non-empty.
func ParseInterjection(response string) (Interjection, bool) {
	if strings.Contains(response, "[CONTINUE]") && strings.Contains(response, "[/CONTINUE]") {
		return Interjection{}, false
	}

	start := strings.Index(response, "[INTERJECT]")
	if start < 0 {
		return Interjection{}, false
	}
	rest := response[start+len("[INTERJECT]"):]
	end := strings.Index(rest, "[/INTERJECT]")
	if end < 0 {
		return Interjection{}, false
	}
	body := rest[:end]

	urgent, ok := parseUrgentField(body)
	if !ok {
		return Interjection{}, false
	}

	content, ok := parseContentField(body)
	if !ok {
		return Interjection{}, false
	}

	return Interjection{Urgent: urgent, Content: content}, true
}

func parseUrgentField(body string) (bool, bool) {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "urgent:") {
			continue
		}
		value := strings.TrimSpace(strings.TrimPrefix(trimmed, "urgent:"))
		switch value {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return false, false
	}
	return false, false
}

func parseContentField(body string) (string, bool) {
	lines := strings.Split(body, "\n")
	start := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "content:") {
			start = i
			break
		}
	}
	if start < 0 {
		return "", false
	}

	first := strings.TrimSpace(lines[start])
	parts := []string{strings.TrimLeft(strings.TrimPrefix(first, "content:"), " ")}
	for _, line := range lines[start+1:] {
		// A duplicate urgent field means the block is malformed past this
		// point; keep what we have.
		if strings.HasPrefix(strings.TrimSpace(line), "urgent:") {
			break
		}
		parts = append(parts, line)
	}

	content := strings.TrimSpace(strings.Join(parts, "\n"))
	if content == "" {
		return "", false
	}
	return content, true
}
