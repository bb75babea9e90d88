package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	booklet "github.com/alnah/go-booklet"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock collaborators writing readable placeholder files
// ---------------------------------------------------------------------------

// mockRenderer writes "R(<source name>)"; failOn names a source to reject.
type mockRenderer struct {
	failOn string
}

func (m *mockRenderer) Render(_ context.Context, src, dst string) error {
	if m.failOn != "" && filepath.Base(src) == m.failOn {
		return &booklet.CommandError{Command: "inkscape " + src, ExitCode: 1, Err: errors.New("exit status 1")}
	}
	return os.WriteFile(dst, []byte("R("+filepath.Base(src)+")"), 0o644)
}

// mockCompositor writes "S(<left>+<right>)".
type mockCompositor struct{}

func (m *mockCompositor) Compose(_ context.Context, left, right, dst string) error {
	l, err := os.ReadFile(left)
	if err != nil {
		return err
	}
	r, err := os.ReadFile(right)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, []byte("S("+string(l)+"+"+string(r)+")"), 0o644)
}

// mockConcatenator joins its inputs with newlines.
type mockConcatenator struct{}

func (m *mockConcatenator) Concat(_ context.Context, inputs []string, dst string) error {
	parts := make([]string, len(inputs))
	for i, in := range inputs {
		data, err := os.ReadFile(in)
		if err != nil {
			return err
		}
		parts[i] = string(data)
	}
	return os.WriteFile(dst, []byte(strings.Join(parts, "\n")), 0o644)
}

// mockReducer prefixes the content with the profile and records profiles.
type mockReducer struct {
	mu       sync.Mutex
	profiles []booklet.Profile
}

func (m *mockReducer) Reduce(_ context.Context, profile booklet.Profile, src, dst string) error {
	m.mu.Lock()
	m.profiles = append(m.profiles, profile)
	m.mu.Unlock()

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, append([]byte(string(profile)+":"), data...), 0o644)
}

// noTools fails every PATH lookup.
func noTools(name string) (string, error) {
	return "", fmt.Errorf("%s: %w", name, os.ErrNotExist)
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	reducer *mockReducer
}

// newTestEnv returns an environment whose builder never runs a real tool.
func newTestEnv(extra ...booklet.Option) *testEnv {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	reducer := &mockReducer{}
	opts := []booklet.Option{
		booklet.WithRenderer(&mockRenderer{}),
		booklet.WithCompositor(&mockCompositor{}),
		booklet.WithConcatenator(&mockConcatenator{}),
		booklet.WithReducer(reducer),
	}
	return &testEnv{
		Environment: &Environment{
			Now:      func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
			Stdout:   stdout,
			Stderr:   stderr,
			LookPath: noTools,
			Options:  append(opts, extra...),
		},
		stdout:  stdout,
		stderr:  stderr,
		reducer: reducer,
	}
}

// writePages creates p0.svg .. p<n-1>.svg plus extra files in a temp dir.
func writePages(t *testing.T, n int, extra ...string) string {
	t.Helper()
	dir := t.TempDir()
	for i := range n {
		writeFile(t, filepath.Join(dir, fmt.Sprintf("p%d.svg", i)), "<svg/>")
	}
	for _, name := range extra {
		writeFile(t, filepath.Join(dir, name), "<svg/>")
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}
