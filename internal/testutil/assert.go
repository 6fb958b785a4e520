package testutil

import (
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (d *DataDir) AssertFileExists(relPath string) {
	d.t.Helper()
	if !d.FileExists(relPath) {
		d.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (d *DataDir) AssertFileNotExists(relPath string) {
	d.t.Helper()
	if d.FileExists(relPath) {
		d.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileEquals fails the test if the file content differs from want.
func (d *DataDir) AssertFileEquals(relPath, want string) {
	d.t.Helper()
	got := d.ReadFile(relPath)
	if got != want {
		d.t.Errorf("file %s:\n%q\nwant:\n%q", relPath, got, want)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (d *DataDir) AssertFileContains(relPath, substr string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		d.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (d *DataDir) AssertFileNotContains(relPath, substr string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	if strings.Contains(content, substr) {
		d.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertBefore fails the test unless first appears before second in the file.
func (d *DataDir) AssertBefore(relPath, first, second string) {
	d.t.Helper()
	content := d.ReadFile(relPath)
	i, j := strings.Index(content, first), strings.Index(content, second)
	if i < 0 || j < 0 || i >= j {
		d.t.Errorf("expected %q before %q in %s, got:\n%s", first, second, relPath, content)
	}
}
