package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteHive writes data to a file named name inside a per-test temporary
// directory and returns its path.
func WriteHive(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write hive %s: %v", path, err)
	}
	return path
}
