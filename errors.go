package booklet

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Sentinel errors for library operations.
var (
	// Toolchain errors.
	ErrMissingTool     = errors.New("required external tool not found")
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrBrowserConnect  = errors.New("failed to connect to browser")
	ErrInvalidProfile  = errors.New("invalid quality profile")
	ErrInvalidPaper    = errors.New("invalid paper size")
	ErrInvalidMarker   = errors.New("ordinal marker cannot be empty")
	ErrUnsafeOutputDir = errors.New("output directory would remove the source pages")

	// Page set errors.
	ErrNoPages           = errors.New("no source pages found")
	ErrOrderKeyMissing   = errors.New("page file name has no ordinal")
	ErrDuplicateOrderKey = errors.New("duplicate page ordinal")
	ErrOrdinalGap        = errors.New("page ordinals are not contiguous")
	ErrTooFewPages       = errors.New("a booklet needs at least two pages")

	// Pipeline stage errors. Each wraps the failing command and its exit code.
	ErrRenderFailed  = errors.New("page rendering failed")
	ErrComposeFailed = errors.New("sheet composition failed")
	ErrConcatFailed  = errors.New("document concatenation failed")
	ErrReduceFailed  = errors.New("size reduction failed")

	// ErrPlanCoverage signals a defect in plan computation: a page index
	// is missing from a plan or referenced more than once.
	ErrPlanCoverage = errors.New("sheet plan does not cover every page exactly once")
)

// Stage names a step of the build pipeline.
type Stage string

// Pipeline stages in execution order.
const (
	StageRender  Stage = "render"
	StageCompose Stage = "compose"
	StageConcat  Stage = "concat"
	StageReduce  Stage = "reduce"
)

// sentinel returns the error matched by errors.Is for a failure in s.
func (s Stage) sentinel() error {
	switch s {
	case StageRender:
		return ErrRenderFailed
	case StageCompose:
		return ErrComposeFailed
	case StageConcat:
		return ErrConcatFailed
	case StageReduce:
		return ErrReduceFailed
	}
	return nil
}

// StageError reports a failed pipeline step.
// It matches both the stage sentinel (e.g. ErrRenderFailed) and the
// underlying cause with errors.Is.
type StageError struct {
	Stage   Stage
	Subject string // page file name, sheet description or target name
	Err     error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.Subject, e.Err)
}

// Unwrap exposes the stage sentinel and the cause.
func (e *StageError) Unwrap() []error {
	return []error{e.Stage.sentinel(), e.Err}
}

// ExitCode returns the exit status of the failing external command,
// or -1 when the failure did not come from a process exit.
func (e *StageError) ExitCode() int {
	var cmdErr *CommandError
	if errors.As(e.Err, &cmdErr) {
		return cmdErr.ExitCode
	}
	return -1
}

// CommandError describes an external command that exited unsuccessfully.
type CommandError struct {
	Command  string // full command line
	ExitCode int    // -1 if the process did not start or was killed
	Stderr   string
	Err      error
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s: exit code %d", e.Command, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + lastLine(stderr)
	}
	return msg
}

func (e *CommandError) Unwrap() error { return e.Err }

// newCommandError builds a CommandError from an exec failure.
func newCommandError(name string, args []string, stderr string, err error) *CommandError {
	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &CommandError{
		Command:  strings.Join(append([]string{name}, args...), " "),
		ExitCode: code,
		Stderr:   stderr,
		Err:      err,
	}
}

// lastLine keeps error messages on one line; tools tend to print banners first.
func lastLine(s string) string {
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// ToolError lists every required tool missing from PATH.
type ToolError struct {
	Tools []string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingTool, strings.Join(e.Tools, ", "))
}

func (e *ToolError) Unwrap() error { return ErrMissingTool }

// PageError ties a page set failure to the offending file.
type PageError struct {
	File  string
	Other string // conflicting file, for duplicate ordinals
	Err   error
}

func (e *PageError) Error() string {
	if e.Other != "" {
		return fmt.Sprintf("%v: %s and %s", e.Err, e.Other, e.File)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.File)
}

func (e *PageError) Unwrap() error { return e.Err }
