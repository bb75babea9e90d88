package booklet

import "runtime"

// Worker sizing constants for the render stage.
const (
	// MinPoolSize ensures at least one page renders at a time.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent converters; Inkscape and Chrome tabs
	// each hold a full document in memory.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the converters' own threads.
	cpuDivisor = 2
)

// ResolvePoolSize determines how many pages render concurrently.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs in containers.
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
