package replay

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestWriteCast(t *testing.T) {
	frames := []Frame{
		{Content: "one\ntwo", Delay: 500 * time.Millisecond},
		{Content: "three", Delay: time.Second},
	}

	var buf bytes.Buffer
	if err := WriteCast(&buf, frames, 80, 24, "demo"); err != nil {
		t.Fatalf("WriteCast() error = %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 events, got %d lines", len(lines))
	}

	var header castHeader
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		t.Fatalf("header is not JSON: %v", err)
	}
	if header.Version != 2 || header.Width != 80 || header.Height != 24 {
		t.Errorf("unexpected header %+v", header)
	}

	var event []any
	if err := json.Unmarshal([]byte(lines[2]), &event); err != nil {
		t.Fatalf("event is not JSON: %v", err)
	}
	if at, _ := event[0].(float64); at != 1.5 {
		t.Errorf("second frame time = %v, want cumulative 1.5", event[0])
	}

	json.Unmarshal([]byte(lines[1]), &event)
	if data, _ := event[2].(string); !strings.Contains(data, "one\r\ntwo") {
		t.Errorf("frame data should use CRLF, got %q", data)
	}
}
