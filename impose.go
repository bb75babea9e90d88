package booklet

import (
	"fmt"
	"sort"
	"strings"
)

// SignaturePlan returns the saddle-stitch ordering for n pages.
// Sheet i pairs page i with page n-1-i, so the outermost sheet carries the
// covers and every nested sheet restores reading order once folded.
// For odd n the middle page is emitted last, on its own sheet.
func SignaturePlan(n int) (SheetPlan, error) {
	if n < MinPages {
		return SheetPlan{}, fmt.Errorf("%w: got %d", ErrTooFewPages, n)
	}

	plan := SheetPlan{Target: TargetPrint, Sheets: make([]SheetSpec, 0, (n+1)/2)}
	for i := 0; i < n/2; i++ {
		plan.add(Spread(i, n-1-i))
	}
	if n%2 == 1 {
		plan.add(Cover((n - 1) / 2))
	}

	return plan, plan.Verify(n)
}

// ReaderPlan returns the on-screen ordering for n pages.
// The front and back covers stand alone; interior pages are paired
// (1,2), (3,4), ... and an odd interior page out stands alone before the back cover.
func ReaderPlan(n int) (SheetPlan, error) {
	if n < MinPages {
		return SheetPlan{}, fmt.Errorf("%w: got %d", ErrTooFewPages, n)
	}

	last := n - 1
	plan := SheetPlan{Target: TargetWeb, Sheets: make([]SheetSpec, 0, n/2+2)}
	plan.add(Cover(0))

	i := 1
	for ; i+1 < last; i += 2 {
		plan.add(Spread(i, i+1))
	}
	if i < last {
		plan.add(Cover(i))
	}

	plan.add(Cover(last))

	return plan, plan.Verify(n)
}

// Impose computes both plans for an ordered page sequence.
// Pages must be indexed 0..len(pages)-1 in order.
func Impose(pages []Page) (*Plans, error) {
	for i, p := range pages {
		if p.Index != i {
			return nil, fmt.Errorf("%w: page %s has index %d at position %d", ErrPlanCoverage, p.Name, p.Index, i)
		}
	}

	n := len(pages)
	reader, err := ReaderPlan(n)
	if err != nil {
		return nil, err
	}
	signature, err := SignaturePlan(n)
	if err != nil {
		return nil, err
	}

	return &Plans{Pages: n, Reader: reader, Signature: signature}, nil
}

// Verify checks that the plan references every index 0..n-1 exactly once,
// that covers carry one page, spreads two, and positions follow plan order.
func (p SheetPlan) Verify(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %s plan checked against %d pages", ErrPlanCoverage, p.Target, n)
	}
	seen := make([]int, n)
	var outOfRange []int

	for pos, s := range p.Sheets {
		if s.Position != pos {
			return fmt.Errorf("%w: %s plan sheet %d has position %d", ErrPlanCoverage, p.Target, pos, s.Position)
		}
		want := 1
		if s.Kind == SpreadSheet {
			want = 2
		}
		if len(s.Pages) != want {
			return fmt.Errorf("%w: %s plan sheet %s carries %d pages", ErrPlanCoverage, p.Target, s, len(s.Pages))
		}
		for _, idx := range s.Pages {
			if idx < 0 || idx >= n {
				outOfRange = append(outOfRange, idx)
				continue
			}
			seen[idx]++
		}
	}

	var missing, duplicated []int
	for idx, count := range seen {
		switch {
		case count == 0:
			missing = append(missing, idx)
		case count > 1:
			duplicated = append(duplicated, idx)
		}
	}

	if len(missing) == 0 && len(duplicated) == 0 && len(outOfRange) == 0 {
		return nil
	}

	var details []string
	if len(missing) > 0 {
		details = append(details, "missing "+formatIndices(missing))
	}
	if len(duplicated) > 0 {
		details = append(details, "duplicated "+formatIndices(duplicated))
	}
	if len(outOfRange) > 0 {
		sort.Ints(outOfRange)
		details = append(details, "out of range "+formatIndices(outOfRange))
	}
	return fmt.Errorf("%w: %s plan: %s", ErrPlanCoverage, p.Target, strings.Join(details, "; "))
}

func formatIndices(indices []int) string {
	parts := make([]string, len(indices))
	for i, idx := range indices {
		parts[i] = fmt.Sprint(idx)
	}
	return strings.Join(parts, ",")
}
