package app

import (
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Logger writes one JSON object per line. It satisfies the transcript
// package's DiagnosticLogger interface, so stream-integrity warnings
// land in the same log as everything else. A nil Logger discards.
type Logger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

type logEntry struct {
	TS     string                 `json:"ts"`
	Level  string                 `json:"level"`
	Msg    string                 `json:"msg"`
	Fields map[string]interface{} `json:"fields,omitempty"`
}

func NewLogger(out io.Writer) *Logger {
	if out == nil {
		return nil
	}
	return &Logger{enc: json.NewEncoder(out)}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) { l.emit("debug", msg, fields) }
func (l *Logger) Info(msg string, fields map[string]interface{})  { l.emit("info", msg, fields) }
func (l *Logger) Warn(msg string, fields map[string]interface{})  { l.emit("warn", msg, fields) }
func (l *Logger) Error(msg string, fields map[string]interface{}) { l.emit("error", msg, fields) }

func (l *Logger) emit(level, msg string, fields map[string]interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.enc.Encode(logEntry{
		TS:     time.Now().UTC().Format(time.RFC3339Nano),
		Level:  level,
		Msg:    msg,
		Fields: fields,
	})
}
