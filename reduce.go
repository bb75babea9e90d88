package booklet

import (
	"context"
	"path/filepath"
)

// Reducer rewrites a document with a named quality profile.
type Reducer interface {
	Reduce(ctx context.Context, profile Profile, src, dst string) error
}

// Compile-time interface check.
var _ Reducer = (*ps2pdfReducer)(nil)

// Default profiles per target: size-optimized for screens, high fidelity for print.
const (
	DefaultWebProfile   = ProfileEbook
	DefaultPrintProfile = ProfilePrinter
)

// reduce writes the final artifact of target next to its raw document.
// The raw document is left in place whatever the outcome.
func reduce(ctx context.Context, r Reducer, target Target, profile Profile, raw string) (string, error) {
	dst := filepath.Join(filepath.Dir(raw), finalName(target))
	if err := r.Reduce(ctx, profile, raw, dst); err != nil {
		return "", &StageError{Stage: StageReduce, Subject: string(target), Err: err}
	}
	return dst, nil
}
