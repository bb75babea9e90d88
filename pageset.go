package booklet

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Source discovery defaults.
const (
	DefaultMarker  = "p"     // ordinal follows this token: "p12.svg", "cover-p1.svg"
	DefaultPattern = "*.svg" // source drawings
)

// ParseOrdinal extracts the page ordinal from a file name.
//
// Rule: drop any directory and the extension, find the first occurrence of
// marker, then read the run of ASCII digits immediately after it.
// "p3.svg" -> 3, "zine-p12.svg" -> 12, "p07-draft.svg" -> 7.
// A name without the marker, or with no digit right after it, has no ordinal.
func ParseOrdinal(name, marker string) (int, error) {
	if marker == "" {
		return 0, ErrInvalidMarker
	}

	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	at := strings.Index(stem, marker)
	if at < 0 {
		return 0, &PageError{File: base, Err: ErrOrderKeyMissing}
	}

	rest := stem[at+len(marker):]
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, &PageError{File: base, Err: ErrOrderKeyMissing}
	}

	n, err := strconv.Atoi(rest[:end])
	if err != nil {
		return 0, &PageError{File: base, Err: fmt.Errorf("%w: %v", ErrOrderKeyMissing, err)}
	}
	return n, nil
}

// OrderPages sorts file names by ordinal and assigns contiguous indices.
// It touches no filesystem. The sort is stable, duplicate ordinals are
// rejected with both names, and ordinals must be consecutive integers.
func OrderPages(names []string, marker string) ([]Page, error) {
	if len(names) == 0 {
		return nil, ErrNoPages
	}

	pages := make([]Page, len(names))
	for i, name := range names {
		ord, err := ParseOrdinal(name, marker)
		if err != nil {
			return nil, err
		}
		pages[i] = Page{Ordinal: ord, Name: filepath.Base(name), Source: name}
	}

	sort.SliceStable(pages, func(i, j int) bool {
		return pages[i].Ordinal < pages[j].Ordinal
	})

	for i := range pages {
		pages[i].Index = i
		if i == 0 {
			continue
		}
		prev := pages[i-1]
		switch {
		case pages[i].Ordinal == prev.Ordinal:
			return nil, &PageError{File: pages[i].Name, Other: prev.Name, Err: ErrDuplicateOrderKey}
		case pages[i].Ordinal != prev.Ordinal+1:
			return nil, &PageError{
				File: pages[i].Name,
				Err:  fmt.Errorf("%w: %d follows %d", ErrOrdinalGap, pages[i].Ordinal, prev.Ordinal),
			}
		}
	}

	if len(pages) < MinPages {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPages, len(pages))
	}
	return pages, nil
}

// LoadPages lists the regular files in dir matching pattern and orders them.
func LoadPages(dir, pattern, marker string) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading source directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		ok, err := filepath.Match(pattern, e.Name())
		if err != nil {
			return nil, fmt.Errorf("invalid source pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, filepath.Join(dir, e.Name()))
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s in %s", ErrNoPages, pattern, dir)
	}
	return OrderPages(names, marker)
}
