package main

import (
	"errors"
	"os"

	booklet "github.com/alnah/go-booklet"
	"github.com/alnah/go-booklet/internal/config"
)

// Exit codes for the booklet CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Booklet built
	ExitGeneral = 1 // General error or missing external tool
	ExitUsage   = 2 // Invalid flags, config, or page set
	ExitIO      = 3 // File not found, permission denied
	ExitTool    = 4 // External tool or browser failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Missing tools are reported before any work starts (exit 1)
	if errors.Is(err, booklet.ErrMissingTool) {
		return ExitGeneral
	}

	// Stage failures first: they may wrap I/O causes (exit 4)
	if errors.Is(err, booklet.ErrRenderFailed) ||
		errors.Is(err, booklet.ErrComposeFailed) ||
		errors.Is(err, booklet.ErrConcatFailed) ||
		errors.Is(err, booklet.ErrReduceFailed) ||
		errors.Is(err, booklet.ErrBrowserConnect) {
		return ExitTool
	}

	// Usage/config/page set errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, booklet.ErrInvalidBackend) ||
		errors.Is(err, booklet.ErrInvalidProfile) ||
		errors.Is(err, booklet.ErrInvalidPaper) ||
		errors.Is(err, booklet.ErrInvalidMarker) ||
		errors.Is(err, booklet.ErrNoPages) ||
		errors.Is(err, booklet.ErrOrderKeyMissing) ||
		errors.Is(err, booklet.ErrDuplicateOrderKey) ||
		errors.Is(err, booklet.ErrOrdinalGap) ||
		errors.Is(err, booklet.ErrTooFewPages) ||
		errors.Is(err, booklet.ErrUnsafeOutputDir) ||
		errors.Is(err, ErrTooManyArgs) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrInvalidWorkerCount) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) {
		return ExitIO
	}

	return ExitGeneral
}
