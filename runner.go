package booklet

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/alnah/go-booklet/internal/process"
)

// Runner abstracts command execution to enable testing without real subprocesses.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr string, err error)
}

// ExecRunner implements Runner using os/exec.
// Canceling ctx kills the command and every process it spawned.
type ExecRunner struct{}

// Compile-time interface check.
var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- tool names come from configuration
	process.Isolate(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// runTool runs one external tool invocation and converts failures to *CommandError.
func runTool(ctx context.Context, r Runner, name string, args ...string) error {
	_, stderr, err := r.Run(ctx, name, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return newCommandError(name, args, stderr, err)
	}
	return nil
}
