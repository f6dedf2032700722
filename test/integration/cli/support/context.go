// Package support holds godog step definitions and shared state for the
// black-box CLI test suite, adapted from the teacher's TestContext
// pattern (original_source-free here: this is a Go idiom, not a spec
// module) but trimmed to the text-only surface correctocr exposes.
package support

import (
	"fmt"
	"os"
	"path/filepath"
)

// TestContext holds command-execution state shared across step
// definitions for one scenario.
type TestContext struct {
	BinPath string

	LastOutput   string
	LastStderr   string
	LastExitCode int
	LastErr      error

	WorkingDir string
	TempDir    string

	CreatedFiles []string
}

// NewTestContext creates a fresh context with its own temp directory.
func NewTestContext(binPath string) (*TestContext, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getwd: %w", err)
	}
	tempDir, err := os.MkdirTemp("", "correctocr-cli-test-*")
	if err != nil {
		return nil, fmt.Errorf("mkdtemp: %w", err)
	}
	return &TestContext{
		BinPath:    binPath,
		WorkingDir: workingDir,
		TempDir:    tempDir,
	}, nil
}

// Cleanup removes the scenario's temp directory and any tracked files.
func (tc *TestContext) Cleanup() error {
	for _, f := range tc.CreatedFiles {
		_ = os.Remove(f)
	}
	return os.RemoveAll(tc.TempDir)
}

// TempPath returns an absolute path under the scenario's temp
// directory, tracking it for cleanup.
func (tc *TestContext) TempPath(name string) string {
	p := filepath.Join(tc.TempDir, name)
	tc.CreatedFiles = append(tc.CreatedFiles, p)
	return p
}

// WriteTempFile writes content to a tracked temp file and returns its
// path.
func (tc *TestContext) WriteTempFile(name, content string) (string, error) {
	p := tc.TempPath(name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil { //nolint:gosec // scenario-local test fixture
		return "", err
	}
	return p, nil
}
