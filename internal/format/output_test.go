package format

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, map[string]any{"ok": true}, false); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"ok":true}` {
		t.Fatalf("unexpected output: %q", got)
	}

	buf.Reset()
	if err := WriteJSON(&buf, map[string]any{"ok": true}, true); err != nil {
		t.Fatalf("WriteJSON pretty: %v", err)
	}
	if !strings.Contains(buf.String(), "\n  \"ok\"") {
		t.Fatalf("expected indented output, got %q", buf.String())
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, nil, "xml", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf,
		[]string{"ID", "STATUS"},
		[][]string{
			{"a1", "open"},
			{"a-long-id", "completed"},
		})
	if err != nil {
		t.Fatalf("WriteTable: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	// Columns align under their headers.
	if !strings.HasPrefix(lines[0], "ID        ") || !strings.Contains(lines[2], "a-long-id  completed") {
		t.Fatalf("unexpected alignment:\n%s", buf.String())
	}
}
