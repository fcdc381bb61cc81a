package richtext

import (
	"sort"

	"github.com/foldline/richtext/style"
)

// StyleRun is a maximal half-open codepoint range sharing one sealed
// Style Descriptor.
type StyleRun struct {
	Start, End int32
	Style      *style.Style
}

func (r StyleRun) Len() int32 { return r.End - r.Start }

// StyleRunTable is the ordered, gapless, non-overlapping tiling of a
// Codepoint Buffer's range into Style Runs (§4.2). Callers append runs
// in order and guarantee coverage; Validate performs the fail-fast
// check before layout proceeds.
type StyleRunTable struct {
	runs []StyleRun
}

// NewStyleRunTable returns an empty table.
func NewStyleRunTable() *StyleRunTable {
	return &StyleRunTable{}
}

// AddRun appends a run. Callers are responsible for supplying runs in
// left-to-right order that tile the buffer without gaps or overlaps;
// Validate catches violations before layout runs.
func (t *StyleRunTable) AddRun(start, end int32, st *style.Style) {
	t.runs = append(t.runs, StyleRun{Start: start, End: end, Style: st})
}

// Iter returns the runs in order. The returned slice must not be
// mutated by the caller.
func (t *StyleRunTable) Iter() []StyleRun {
	return t.runs
}

// Len returns the number of runs in the table.
func (t *StyleRunTable) Len() int {
	return len(t.runs)
}

// StyleAt returns the Style Descriptor covering codepoint index i via
// binary search over run boundaries.
func (t *StyleRunTable) StyleAt(i int32) *style.Style {
	n := len(t.runs)
	idx := sort.Search(n, func(k int) bool { return i < t.runs[k].End })
	if idx == n || t.runs[idx].Start > i {
		return nil
	}
	return t.runs[idx].Style
}

// Validate checks that the table exactly tiles [0, totalLen) with no
// gaps or overlaps (§4.2's "Invariant check (fail-fast)"). It is
// called once at layout entry (kind-3 error per §7).
func (t *StyleRunTable) Validate(totalLen int32) error {
	var want int32
	for _, r := range t.runs {
		if r.Start != want {
			if r.Start < want {
				return &MalformedStyleCoverageError{Reason: "overlapping style runs", At: r.Start}
			}
			return &MalformedStyleCoverageError{Reason: "gap in style run coverage", At: want}
		}
		if r.End <= r.Start {
			return &MalformedStyleCoverageError{Reason: "empty or inverted style run", At: r.Start}
		}
		want = r.End
	}
	if want != totalLen {
		return &MalformedStyleCoverageError{Reason: "style runs do not cover full buffer", At: want}
	}
	return nil
}
