// Package testutil provides small helpers for exercising jbsync
// packages against the in-memory filesystem.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/ideutil/jbsync/pkg/types"
)

// WriteFile writes content to path on fsys, creating parent
// directories first. It fails the test on error.
func WriteFile(t *testing.T, fsys types.FS, path, content string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fsys.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

// MkDir creates a directory (and parents) on fsys.
// It fails the test on error.
func MkDir(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if err := fsys.MkdirAll(path, 0755); err != nil {
		t.Fatalf("Failed to create directory %s: %v", path, err)
	}
}

// ReadFile reads path from fsys and returns its content as a string.
// It fails the test on error.
func ReadFile(t *testing.T, fsys types.FS, path string) string {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(data)
}

// FileExists reports whether path exists on fsys and is not a directory.
func FileExists(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListDir returns the entry names of a directory on fsys, failing the
// test on error.
func ListDir(t *testing.T, fsys types.FS, path string) []string {
	t.Helper()

	entries, err := fsys.ReadDir(path)
	if err != nil {
		t.Fatalf("Failed to read directory %s: %v", path, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}
