// Package testutil provides reusable fixtures for log store tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// DataDir is a temporary data directory for testing.
type DataDir struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewDataDir creates a new data directory builder.
// Call Build() to create the actual directory.
func NewDataDir(t *testing.T) *DataDir {
	t.Helper()
	return &DataDir{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file relative to the data directory root.
func (d *DataDir) WithFile(path, content string) *DataDir {
	d.files[path] = content
	return d
}

// WithMaster seeds the master document.
func (d *DataDir) WithMaster(content string) *DataDir {
	return d.WithFile(MasterFile, content)
}

// Build creates the directory and all configured files.
func (d *DataDir) Build() *DataDir {
	d.t.Helper()

	d.Path = d.t.TempDir()
	for path, content := range d.files {
		d.WriteFile(path, content)
	}
	return d
}

// WriteFile writes a file, creating directories as needed.
func (d *DataDir) WriteFile(relPath, content string) {
	d.t.Helper()
	fullPath := filepath.Join(d.Path, relPath)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		d.t.Fatalf("failed to create directory %s: %v", dir, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		d.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file from the data directory.
func (d *DataDir) ReadFile(relPath string) string {
	d.t.Helper()
	fullPath := filepath.Join(d.Path, relPath)
	content, err := os.ReadFile(fullPath)
	if err != nil {
		d.t.Fatalf("failed to read file %s: %v", fullPath, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the data directory.
func (d *DataDir) FileExists(relPath string) bool {
	d.t.Helper()
	_, err := os.Stat(filepath.Join(d.Path, relPath))
	return err == nil
}

// Default document names, relative to the data directory.
const (
	MasterFile = "workout_db.md"
	RecentFile = "recent_workouts.md"
)

// MonthlyFile returns the relative path of a monthly document.
func MonthlyFile(month string) string {
	return filepath.Join("logs", month+".md")
}
