package app

import (
	"sync"

	"github.com/google/uuid"

	"codeterm/internal/stream"
)

type SessionStatus int

const (
	StatusIdle SessionStatus = iota
	StatusRunning
	StatusInterrupted
	StatusDone
	StatusFailed
)

func (s SessionStatus) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusInterrupted:
		return "interrupted"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// SessionInfo is a point-in-time snapshot for session pickers and the
// status bar.
type SessionInfo struct {
	ID            uuid.UUID
	Name          string
	Status        SessionStatus
	Tokens        stream.TokenTracker
	BufferedCount int
	Attached      bool
	Role          *SessionRole
}

// BackgroundSession owns one chunk stream from the external engine. It
// buffers the trailing chunks so a client that detaches (or restarts)
// can replay them through the transcript reducer and land in the same
// state live streaming would have produced, and it fans chunks out to
// any number of subscribers (the TUI, watcher sessions).
type BackgroundSession struct {
	mu sync.Mutex

	id     uuid.UUID
	name   string
	status SessionStatus
	role   *SessionRole

	buffer      []stream.Chunk
	bufferLimit int

	subs    map[int]chan stream.Chunk
	nextSub int

	attached    bool
	interrupted bool

	// pendingObserved is stamped onto the next outgoing chunks so a
	// watcher's response can be traced back to the parent events it was
	// conditioned on.
	pendingObserved []string

	tokens stream.TokenTracker

	logger *Logger
}

func NewBackgroundSession(name string, bufferLimit int, logger *Logger) *BackgroundSession {
	if bufferLimit <= 0 {
		bufferLimit = 10000
	}
	return &BackgroundSession{
		id:          uuid.New(),
		name:        name,
		status:      StatusIdle,
		bufferLimit: bufferLimit,
		subs:        make(map[int]chan stream.Chunk),
		logger:      logger,
	}
}

func (s *BackgroundSession) ID() uuid.UUID { return s.id }

// HandleOutput ingests one chunk from the engine: stamp any pending
// observed correlation ids, buffer it, update session-level state, and
// fan out. Subscribers that cannot keep up lose chunks rather than
// blocking the stream; the buffer is what they recover from.
func (s *BackgroundSession) HandleOutput(c stream.Chunk) {
	s.mu.Lock()

	if len(s.pendingObserved) > 0 {
		c.ObservedCorrelationIDs = append(append([]string(nil), c.ObservedCorrelationIDs...), s.pendingObserved...)
		s.pendingObserved = nil
	}

	s.buffer = append(s.buffer, c)
	if over := len(s.buffer) - s.bufferLimit; over > 0 {
		s.buffer = append([]stream.Chunk(nil), s.buffer[over:]...)
	}

	switch c.Type {
	case stream.TypeDone:
		s.status = StatusDone
	case stream.TypeInterrupted:
		s.status = StatusInterrupted
	case stream.TypeError:
		s.status = StatusFailed
	case stream.TypeTokenUpdate:
		if c.Tokens != nil {
			s.tokens = *c.Tokens
		}
		s.status = StatusRunning
	default:
		s.status = StatusRunning
	}

	subs := make([]chan stream.Chunk, 0, len(s.subs))
	for _, ch := range s.subs {
		subs = append(subs, ch)
	}
	s.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- c:
		default:
			s.logger.Warn("dropping chunk for slow subscriber", map[string]interface{}{
				"session": s.name,
				"type":    c.Type,
			})
		}
	}
}

// BufferedOutput returns up to limit trailing chunks, oldest first.
// limit <= 0 returns the whole buffer. Replaying the result through the
// reducer reconstructs the transcript.
func (s *BackgroundSession) BufferedOutput(limit int) []stream.Chunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := s.buffer
	if limit > 0 && len(buf) > limit {
		buf = buf[len(buf)-limit:]
	}
	out := make([]stream.Chunk, len(buf))
	copy(out, buf)
	return out
}

// Subscribe returns a channel of future chunks and a cancel func. The
// channel is buffered; callers combine it with BufferedOutput for a
// gap-free attach.
func (s *BackgroundSession) Subscribe() (<-chan stream.Chunk, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	ch := make(chan stream.Chunk, 256)
	s.subs[id] = ch
	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
}

func (s *BackgroundSession) Attach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = true
}

func (s *BackgroundSession) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached = false
}

func (s *BackgroundSession) Attached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attached
}

func (s *BackgroundSession) Interrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted = true
}

func (s *BackgroundSession) ResetInterrupt() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interrupted = false
}

func (s *BackgroundSession) Interrupted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interrupted
}

func (s *BackgroundSession) SetRole(role SessionRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = &role
}

func (s *BackgroundSession) Role() (SessionRole, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.role == nil {
		return SessionRole{}, false
	}
	return *s.role, true
}

func (s *BackgroundSession) ClearRole() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.role = nil
}

// SetPendingObservedCorrelationIDs records which parent events the next
// outgoing chunks were conditioned on.
func (s *BackgroundSession) SetPendingObservedCorrelationIDs(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingObserved = append([]string(nil), ids...)
}

func (s *BackgroundSession) Info() SessionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	var role *SessionRole
	if s.role != nil {
		r := *s.role
		role = &r
	}
	return SessionInfo{
		ID:            s.id,
		Name:          s.name,
		Status:        s.status,
		Tokens:        s.tokens,
		BufferedCount: len(s.buffer),
		Attached:      s.attached,
		Role:          role,
	}
}
