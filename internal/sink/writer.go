// Package sink persists generated report payloads as timestamped JSON files.
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Writer saves report payloads under a directory. Persistence is best-effort
// from the caller's point of view: a failed write never fails the report.
type Writer struct {
	dir string
}

// NewWriter creates a writer rooted at dir, creating the directory if needed.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create reports directory: %w", err)
	}
	return &Writer{dir: dir}, nil
}

// Write marshals the payload and saves it as report_<timestamp>.json,
// returning the full path of the written file. Microseconds in the name keep
// reports generated within the same second from colliding.
func (w *Writer) Write(payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	now := time.Now()
	name := fmt.Sprintf("report_%s_%06d.json",
		now.Format("20060102_150405"), now.Nanosecond()/1000)
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report file: %w", err)
	}
	return path, nil
}
