package booklet

import (
	"context"
	"path/filepath"
)

// Concatenator joins documents, in order, into one.
type Concatenator interface {
	Concat(ctx context.Context, inputs []string, dst string) error
}

// Compile-time interface checks.
var (
	_ Concatenator = (*pdfuniteConcatenator)(nil)
	_ Concatenator = (*nativeConcatenator)(nil)
)

// rawName is the concatenated, not yet reduced, document of a target.
func rawName(t Target) string { return string(t) + "_raw.pdf" }

// finalName is the reduced artifact of a target.
func finalName(t Target) string { return string(t) + ".pdf" }

// assemble concatenates the sheets of target into <dir>/<target>_raw.pdf.
// The sheet order is kept exactly as given.
func assemble(ctx context.Context, c Concatenator, target Target, sheets []string, dir string) (string, error) {
	dst := filepath.Join(dir, rawName(target))
	if err := c.Concat(ctx, sheets, dst); err != nil {
		return "", &StageError{Stage: StageConcat, Subject: string(target), Err: err}
	}
	return dst, nil
}
