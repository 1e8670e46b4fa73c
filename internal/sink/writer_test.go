package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriterWrite(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter error: %v", err)
	}

	path, err := w.Write(map[string]any{"total": 42.5})
	if err != nil {
		t.Fatalf("Write error: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasPrefix(name, "report_") || !strings.HasSuffix(name, ".json") {
		t.Errorf("unexpected file name %q", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read written report: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("written report is not valid JSON: %v", err)
	}
	if payload["total"] != 42.5 {
		t.Errorf("total = %v, want 42.5", payload["total"])
	}
}

func TestWriterDistinctNames(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter error: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		path, err := w.Write(map[string]int{"i": i})
		if err != nil {
			t.Fatalf("Write error: %v", err)
		}
		if seen[path] {
			t.Fatalf("duplicate report path %q", path)
		}
		seen[path] = true
	}
}

func TestNewWriterCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	if _, err := NewWriter(dir); err != nil {
		t.Fatalf("NewWriter error: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("directory was not created: %v", err)
	}
}

func TestWriterUnmarshalablePayload(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	if err != nil {
		t.Fatalf("NewWriter error: %v", err)
	}
	if _, err := w.Write(make(chan int)); err == nil {
		t.Error("expected an error for an unmarshalable payload")
	}
}
