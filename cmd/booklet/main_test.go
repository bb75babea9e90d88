package main

// Notes:
// - runMain: we test command dispatch and exit codes. Builds run against
//   mock collaborators injected through Environment.Options.
// - isCommand: we test command name matching.
// - wantsVerbose: we test flag detection; the env fallback is covered by
//   loadEnvConfig tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	booklet "github.com/alnah/go-booklet"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	t.Run("version", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runMain([]string{"booklet", "version"}, env.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if got := env.stdout.String(); got != "booklet "+Version+"\n" {
			t.Errorf("stdout = %q, want version line", got)
		}
	})

	t.Run("help", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		if code := runMain([]string{"booklet", "help"}, env.Environment); code != ExitSuccess {
			t.Errorf("exit code = %d, want %d", code, ExitSuccess)
		}
		if !strings.Contains(env.stdout.String(), "Usage: booklet [command]") {
			t.Errorf("stdout = %q, want usage", env.stdout.String())
		}
	})

	t.Run("directory argument runs build", func(t *testing.T) {
		t.Parallel()

		dir := writePages(t, 4)
		env := newTestEnv()

		if code := runMain([]string{"booklet", dir}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
		}
		want := "Done, check " + filepath.Join(dir, booklet.DefaultOutputDirName)
		if !strings.Contains(env.stdout.String(), want) {
			t.Errorf("stdout = %q, want %q", env.stdout.String(), want)
		}
	})

	t.Run("explicit build command", func(t *testing.T) {
		t.Parallel()

		dir := writePages(t, 2)
		env := newTestEnv()

		if code := runMain([]string{"booklet", "build", dir, "-q"}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
		}
	})

	t.Run("plan command", func(t *testing.T) {
		t.Parallel()

		dir := writePages(t, 2)
		env := newTestEnv()

		if code := runMain([]string{"booklet", "plan", dir}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), "2 pages in") {
			t.Errorf("stdout = %q, want plan", env.stdout.String())
		}
	})

	t.Run("missing source directory", func(t *testing.T) {
		t.Parallel()

		env := newTestEnv()
		missing := filepath.Join(t.TempDir(), "nope")

		if code := runMain([]string{"booklet", missing}, env.Environment); code != ExitIO {
			t.Errorf("exit code = %d, want %d; stderr: %s", code, ExitIO, env.stderr.String())
		}
	})
}

// ---------------------------------------------------------------------------
// TestIsCommand - Command name matching
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want bool
	}{
		{"build", true},
		{"plan", true},
		{"doctor", true},
		{"version", true},
		{"help", true},
		{"./drawings", false},
		{"Build", false},
		{"-v", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := isCommand(tt.name); got != tt.want {
				t.Errorf("isCommand(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRunMain_DirectoryNamedLikeCommand - Commands win, build reaches the directory
// ---------------------------------------------------------------------------

func TestRunMain_DirectoryNamedLikeCommand(t *testing.T) {
	clearEnv(t)
	root := t.TempDir()
	src := filepath.Join(root, cmdPlan)
	if err := os.Mkdir(src, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"p0.svg", "p1.svg", "p2.svg"} {
		writeFile(t, filepath.Join(src, name), "<svg/>")
	}
	t.Chdir(root)

	t.Run("bare name runs the command and notes the directory", func(t *testing.T) {
		env := newTestEnv()
		if code := runMain([]string{"booklet", cmdPlan}, env.Environment); code == ExitSuccess {
			// plan runs on "." which holds no drawings
			t.Fatalf("exit code = %d, want failure for the empty working directory", code)
		}
		if !strings.Contains(env.stderr.String(), "booklet build plan") {
			t.Errorf("stderr = %q, want build hint", env.stderr.String())
		}
	})

	t.Run("build command reaches the directory", func(t *testing.T) {
		env := newTestEnv()
		if code := runMain([]string{"booklet", cmdBuild, cmdPlan}, env.Environment); code != ExitSuccess {
			t.Fatalf("exit code = %d, want %d; stderr: %s", code, ExitSuccess, env.stderr.String())
		}
		if !strings.Contains(env.stdout.String(), filepath.Join(cmdPlan, booklet.DefaultOutputDirName)) {
			t.Errorf("stdout = %q, want output under %s", env.stdout.String(), cmdPlan)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWantsVerbose - Early verbose detection
// ---------------------------------------------------------------------------

func TestWantsVerbose(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"short flag", []string{"build", "-v"}, true},
		{"long flag", []string{"./drawings", "--verbose"}, true},
		{"no flag", []string{"build", "./drawings"}, false},
		{"quiet only", []string{"-q"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wantsVerbose(tt.args); got != tt.want {
				t.Errorf("wantsVerbose(%v) = %v, want %v", tt.args, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsDir / TestIsTerminal - File checks behind dispatch and progress
// ---------------------------------------------------------------------------

func TestIsDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "p0.svg")
	writeFile(t, file, "<svg/>")

	if !isDir(dir) {
		t.Errorf("isDir(%q) = false, want true", dir)
	}
	if isDir(file) {
		t.Errorf("isDir(%q) = true, want false", file)
	}
	if isDir(filepath.Join(dir, "missing")) {
		t.Error("isDir(missing) = true, want false")
	}
}

func TestIsTerminal(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "log.txt"))
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	if isTerminal(f) {
		t.Error("isTerminal(regular file) = true, want false")
	}
}
