package app

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestLogger_EmitsOneJSONObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.Info("session started", map[string]interface{}{"session": "main"})
	l.Warn("dropping chunk", nil)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var entry struct {
		TS     string                 `json:"ts"`
		Level  string                 `json:"level"`
		Msg    string                 `json:"msg"`
		Fields map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(lines[0], &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Level != "info" || entry.Msg != "session started" {
		t.Fatalf("first entry = %+v", entry)
	}
	if entry.TS == "" {
		t.Fatal("timestamp missing")
	}
	if entry.Fields["session"] != "main" {
		t.Fatalf("fields = %v", entry.Fields)
	}

	if err := json.Unmarshal(lines[1], &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Level != "warn" {
		t.Fatalf("second entry level = %q", entry.Level)
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var l *Logger
	l.Debug("nothing", nil)
	l.Error("nothing", nil)
	if NewLogger(nil) != nil {
		t.Fatal("NewLogger(nil) should return a nil logger")
	}
}
