// Package storage writes the report document to its durable JSON artifact.
//
// The write is atomic at the filesystem level: the document is marshaled and
// written to a temporary file in the target directory, then renamed over the
// destination, so a dashboard reading the file never observes a partially
// written document. The previous artifact can be loaded for run-over-run
// comparison before it is replaced.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// Writer persists report documents to a fixed path.
type Writer struct {
	filePath        string
	filePermissions os.FileMode
	dirPermissions  os.FileMode
}

// NewWriter creates a Writer targeting filePath.
func NewWriter(filePath string) *Writer {
	return &Writer{
		filePath:        filePath,
		filePermissions: 0o644,
		dirPermissions:  0o755,
	}
}

// Write marshals the report as pretty-printed UTF-8 JSON with a trailing
// newline and atomically replaces the artifact at the configured path.
func (w *Writer) Write(report *models.Report) error {
	dir := filepath.Dir(w.filePath)
	if err := os.MkdirAll(dir, w.dirPermissions); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	jsonData = append(jsonData, '\n')

	tempPath := w.filePath + ".tmp"
	if err := os.WriteFile(tempPath, jsonData, w.filePermissions); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	if err := os.Rename(tempPath, w.filePath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename report file: %w", err)
	}

	return nil
}

// LoadPrevious reads the artifact written by a prior run. A missing file is
// not an error; it returns (nil, nil) so first runs proceed without history.
func (w *Writer) LoadPrevious() (*models.Report, error) {
	jsonData, err := os.ReadFile(w.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read previous report: %w", err)
	}

	var report models.Report
	if err := json.Unmarshal(jsonData, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal previous report: %w", err)
	}
	return &report, nil
}

// Path returns the artifact path.
func (w *Writer) Path() string {
	return w.filePath
}
