package main

import (
	"io"
	"os"
	"os/exec"
	"time"

	booklet "github.com/alnah/go-booklet"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, tool lookup and extra builder options.
type Environment struct {
	Now      func() time.Time
	Stdout   io.Writer
	Stderr   io.Writer
	LookPath func(string) (string, error)
	Options  []booklet.Option // applied after the options built from flags and config
	Progress bool             // print stage progress to Stderr at the default level
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:      time.Now,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		LookPath: exec.LookPath,
		Progress: isTerminal(os.Stderr),
	}
}

// isTerminal reports whether f is an interactive terminal. CI runs never are.
func isTerminal(f *os.File) bool {
	if os.Getenv("CI") != "" {
		return false
	}
	info, err := f.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
