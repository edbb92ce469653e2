package stream

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// ReadLog decodes a JSON-lines chunk log. Blank lines are skipped. The
// returned slice preserves arrival order, which is what replay relies on.
func ReadLog(r io.Reader) ([]Chunk, error) {
	var chunks []Chunk
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var c Chunk
		if err := json.Unmarshal([]byte(line), &c); err != nil {
			return nil, fmt.Errorf("chunk log line %d: %w", lineNo, err)
		}
		chunks = append(chunks, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read chunk log: %w", err)
	}
	return chunks, nil
}

// WriteLog encodes chunks as JSON lines in order.
func WriteLog(w io.Writer, chunks []Chunk) error {
	enc := json.NewEncoder(w)
	for i, c := range chunks {
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("chunk log entry %d: %w", i, err)
		}
	}
	return nil
}
