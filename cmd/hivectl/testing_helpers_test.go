package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/joshuapare/hiveparse/internal/source"
	"github.com/joshuapare/hiveparse/internal/testutil"
)

// testScrambled is the class-name key written into the test SYSTEM hive.
const testScrambled = "00112233445566778899aabbccddeeff"

// testBootKey is bootkey.Format of the descrambled testScrambled.
const testBootKey = "88-55-44-22-BB-99-DD-33-00-66-11-CC-EE-AA-FF-77"

// testHivePath writes a synthetic SYSTEM hive named name (its extension picks
// the compression) and returns its path.
func testHivePath(t *testing.T, name string) string {
	t.Helper()
	img := testutil.Build(testutil.SystemKey(1, testScrambled))
	data, err := source.Compress(img.Bytes, source.Detect(name))
	if err != nil {
		t.Fatalf("compress test hive: %v", err)
	}
	return testutil.WriteHive(t, name, data)
}

// resetFlags restores global flags and config between test cases.
func resetFlags(t *testing.T) {
	t.Helper()
	quiet = false
	verbose = false
	jsonOut = false
	cfg = defaultConfig()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	// Save original stdout
	origStdout := os.Stdout

	// Create a pipe to capture output
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}

	// Redirect stdout to pipe
	os.Stdout = w

	// Run function
	fnErr := fn()

	// Close write end and restore stdout
	w.Close()
	os.Stdout = origStdout

	// Read captured output
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	return buf.String(), fnErr
}

// assertJSON checks that output is valid JSON
func assertJSON(t *testing.T, output string) {
	t.Helper()
	var result interface{}
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Errorf("invalid JSON output: %v\nOutput: %s", err, output)
	}
}

// assertContains checks that output contains all expected strings
func assertContains(t *testing.T, output string, expected []string) {
	t.Helper()
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("output missing expected string %q\nGot: %s", want, output)
		}
	}
}

// assertNotContains checks that output doesn't contain unwanted strings
func assertNotContains(t *testing.T, output string, unwanted []string) {
	t.Helper()
	for _, dont := range unwanted {
		if strings.Contains(output, dont) {
			t.Errorf("output contains unwanted string %q\nGot: %s", dont, output)
		}
	}
}

// chdir changes the working directory to dir and restores it when the test
// ends (equivalent to testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(orig); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
