package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Command names.
const (
	cmdBuild   = "build"
	cmdPlan    = "plan"
	cmdDoctor  = "doctor"
	cmdVersion = "version"
	cmdHelp    = "help"
)

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if wantsVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is not a command name is the build source directory.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env.Stderr)

	if len(args) < 2 {
		return runBuildCmd(ctx, nil, env)
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		cmd, rest = cmdBuild, args[1:]
	} else if cmd != cmdBuild && isDir(cmd) {
		fmt.Fprintf(env.Stderr, "note: %q is a command; run 'booklet build %s' to build the directory\n", cmd, cmd)
	}

	switch cmd {
	case cmdPlan:
		return runPlanCmd(rest, env)
	case cmdDoctor:
		return runDoctorCmd(rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "booklet %s\n", Version)
		return ExitSuccess
	case cmdHelp:
		return runHelp(rest, env)
	default:
		return runBuildCmd(ctx, rest, env)
	}
}

// isCommand reports whether name is a subcommand rather than a directory.
func isCommand(name string) bool {
	switch name {
	case cmdBuild, cmdPlan, cmdDoctor, cmdVersion, cmdHelp:
		return true
	}
	return false
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// wantsVerbose reports whether debug output was requested before flags
// are parsed.
func wantsVerbose(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return loadEnvConfig().Debug
}
