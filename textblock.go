package richtext

import (
	"github.com/foldline/richtext/shape"
	"github.com/foldline/richtext/style"
)

// Affinity distinguishes a hit-test/caret result that lands on the
// leading vs. trailing edge of a codepoint (§4.6, spec.md S5).
type Affinity uint8

const (
	AffinityLeading Affinity = iota
	AffinityTrailing
)

// HitTestResult is the record returned by TextBlock.HitTest.
type HitTestResult struct {
	LineIndex int
	CPIndex   int32
	Affinity  Affinity
}

// CaretInfo is the record returned by TextBlock.CaretInfo.
type CaretInfo struct {
	X, Top, Bottom float64
}

// MeasuredSize is the record returned by TextBlock.MeasuredSize:
// Width/Height are the constrained box, MeasuredWidth/MeasuredHeight
// are the content's natural (unconstrained-by-wrap-result) extent.
type MeasuredSize struct {
	Width, Height               float64
	MeasuredWidth, MeasuredHeight float64
}

// DecorationRun is one coalesced span of equal-decoration Font Runs
// within a line (SPEC_FULL.md §4, grounded on the teacher's
// WalkDecorations).
type DecorationRun struct {
	Runs  []*FontRun
	Style *style.Style
}

// TextBlock is the top-level aggregate owning the Codepoint Buffer,
// Style Run Table, flat logical-order Font Run list, and Lines list
// (§3 Text Block). All cross-references are non-owning indices, never
// shared pointers into another Text Block's arrays.
type TextBlock struct {
	cb   *CodepointBuffer
	srt  *StyleRunTable
	deps Delegates
	pool *Pool

	frs   []*FontRun // flat logical order, valid after Layout
	lines []*Line

	params     LayoutParams
	Overflowed bool
}

// NewTextBlock creates an empty Text Block. deps supplies the four
// external collaborator functions (§6); pool may be nil, in which case
// Font Runs are allocated directly (no recycling).
func NewTextBlock(deps Delegates, pool *Pool) *TextBlock {
	return &TextBlock{
		cb:   NewCodepointBuffer(),
		srt:  NewStyleRunTable(),
		deps: deps,
		pool: pool,
	}
}

// AppendStyledText appends utf16Text to the Codepoint Buffer and
// records a Style Run covering it (§6 Inputs: "styled text append").
func (tb *TextBlock) AppendStyledText(utf16Text []uint16, st *style.Style) {
	start := tb.cb.Len()
	tb.cb.Append(utf16Text)
	end := tb.cb.Len()
	if end > start {
		tb.srt.AddRun(start, end, st)
	}
}

// AppendStyledString is the UTF-8 convenience form of AppendStyledText.
func (tb *TextBlock) AppendStyledString(s string, st *style.Style) {
	start := tb.cb.Len()
	tb.cb.AppendString(s)
	end := tb.cb.Len()
	if end > start {
		tb.srt.AddRun(start, end, st)
	}
}

// Layout rebuilds the Font Run and Line tables from the current
// Codepoint Buffer and Style Run Table contents (§4.6 layout).
// Returns a *MalformedStyleCoverageError (kind 3) if the Style Run
// Table does not exactly tile the buffer.
func (tb *TextBlock) Layout(params LayoutParams) error {
	if err := tb.srt.Validate(tb.cb.Len()); err != nil {
		return err
	}
	tb.params = params

	// Re-layout recycles the previous Font Runs through the Pool (§2
	// item 6) before building new ones. tb.frs entries that were split
	// during the previous Line Builder pass were already recycled at
	// that point (lineBuilder.recycle) and must not be put back twice;
	// tb.lines always holds the final, still-referenced set.
	if tb.pool != nil {
		for _, line := range tb.lines {
			for _, fr := range line.Runs {
				tb.pool.Put(fr)
			}
		}
	}

	n := tb.cb.Len()
	cps := make([]shape.Codepoint, n)
	for i := int32(0); i < n; i++ {
		cps[i] = shape.Codepoint(tb.cb.At(i))
	}

	var levels []int
	if tb.deps.BidiLevels != nil {
		levels = tb.deps.BidiLevels(cps, params.baseShapeDirection())
	} else {
		levels = make([]int, n)
	}
	tb.resolveDirectionOverrides(levels)

	var breaks []shape.LineBreakClass
	if tb.deps.LineBreakClass != nil {
		breaks = tb.deps.LineBreakClass(cps)
	} else {
		breaks = make([]shape.LineBreakClass, n)
	}

	frb := newFontRunBuilder(tb.cb, tb.deps, tb.pool)
	var frs []*FontRun
	for idx, run := range tb.srt.Iter() {
		built, err := frb.Build(run, idx, levels)
		if err != nil {
			return err
		}
		frs = append(frs, built...)
	}
	tb.frs = frs

	lb := newLineBuilder(tb.cb, tb.srt, tb.deps, params, tb.pool)
	lines, overflowed, err := lb.Build(frs, levels, breaks)
	if err != nil {
		return err
	}
	tb.lines = lines
	tb.Overflowed = overflowed

	for li, line := range tb.lines {
		for _, fr := range line.Runs {
			fr.LineIdx = li
		}
	}

	return nil
}

// resolveDirectionOverrides implements Open Question 2
// (SPEC_FULL.md §5): a Style Run whose Style carries
// DirectionOverride != Auto forces its codepoints' bidi level parity
// regardless of what the bidi delegate computed, leaving Auto runs at
// the delegate's level.
func (tb *TextBlock) resolveDirectionOverrides(levels []int) {
	for _, run := range tb.srt.Iter() {
		switch run.Style.Direction() {
		case style.DirectionLTR:
			for i := run.Start; i < run.End; i++ {
				if levels[i]%2 == 1 {
					levels[i]--
				}
			}
		case style.DirectionRTL:
			for i := run.Start; i < run.End; i++ {
				if levels[i]%2 == 0 {
					levels[i]++
				}
			}
		}
	}
}

// HitTest implements §4.6 hit_test: given a point, returns the line,
// codepoint index, and leading/trailing affinity of the closest
// caret position.
func (tb *TextBlock) HitTest(x, y float64) HitTestResult {
	if len(tb.lines) == 0 {
		return HitTestResult{LineIndex: 0, CPIndex: 0, Affinity: AffinityLeading}
	}
	li := 0
	for i, line := range tb.lines {
		if y < line.YCoord+line.Height || i == len(tb.lines)-1 {
			li = i
			break
		}
	}
	line := tb.lines[li]

	if len(line.Runs) == 0 {
		return HitTestResult{LineIndex: li, CPIndex: 0, Affinity: AffinityLeading}
	}
	first := line.Runs[0]
	if x <= first.XCoord {
		if first.Direction == shape.RTL {
			return HitTestResult{LineIndex: li, CPIndex: first.Start + first.Length, Affinity: AffinityTrailing}
		}
		return HitTestResult{LineIndex: li, CPIndex: first.Start, Affinity: AffinityLeading}
	}
	last := line.Runs[len(line.Runs)-1]
	if x >= last.XCoord+last.Width {
		if last.Direction == shape.RTL {
			return HitTestResult{LineIndex: li, CPIndex: last.Start, Affinity: AffinityLeading}
		}
		return HitTestResult{LineIndex: li, CPIndex: last.Start + last.Length, Affinity: AffinityTrailing}
	}

	for _, fr := range line.Runs {
		if x < fr.XCoord || x > fr.XCoord+fr.Width {
			continue
		}
		local := x - fr.XCoord
		for p := int32(0); p < fr.Length; p++ {
			lo, hi := fr.leadingWidth(p), fr.leadingWidth(p+1)
			if fr.Direction == shape.RTL {
				lo, hi = hi, lo
			}
			if local >= lo && local <= hi {
				// the leading edge is the left one for LTR, the right one for RTL
				nearLeft := local-lo < hi-local
				if nearLeft != (fr.Direction == shape.RTL) {
					return HitTestResult{LineIndex: li, CPIndex: fr.Start + p, Affinity: AffinityLeading}
				}
				return HitTestResult{LineIndex: li, CPIndex: fr.Start + p + 1, Affinity: AffinityTrailing}
			}
		}
	}
	return HitTestResult{LineIndex: li, CPIndex: last.Start + last.Length, Affinity: AffinityTrailing}
}

// CaretInfo implements §4.6 caret_info: the visual x position and
// vertical extent of the caret immediately before codepoint cpIndex.
func (tb *TextBlock) CaretInfo(cpIndex int32) (CaretInfo, error) {
	if cpIndex < 0 || cpIndex > tb.cb.Len() {
		return CaretInfo{}, &IndexOutOfRangeError{Op: "CaretInfo", Index: cpIndex, Low: 0, High: tb.cb.Len()}
	}
	for _, line := range tb.lines {
		for _, fr := range line.Runs {
			if cpIndex < fr.Start || cpIndex > fr.Start+fr.Length {
				continue
			}
			p := cpIndex - fr.Start
			w := fr.leadingWidth(p)
			return CaretInfo{X: fr.XCoord + w, Top: line.YCoord, Bottom: line.YCoord + line.Height}, nil
		}
	}
	if len(tb.lines) > 0 {
		last := tb.lines[len(tb.lines)-1]
		return CaretInfo{X: 0, Top: last.YCoord, Bottom: last.YCoord + last.Height}, nil
	}
	return CaretInfo{}, nil
}

// MeasuredSize implements §4.6 measured_size.
func (tb *TextBlock) MeasuredSize() MeasuredSize {
	var w, h float64
	for _, line := range tb.lines {
		lw := 0.0
		for _, fr := range line.Runs {
			if fr.Kind != FontRunTrailingWhitespace {
				lw = fr.XCoord + fr.Width
			}
		}
		if lw > w {
			w = lw
		}
		h += line.Height
	}
	width, height := w, h
	if tb.params.MaxWidth > 0 {
		width = tb.params.MaxWidth
	}
	if tb.params.MaxHeight > 0 {
		height = tb.params.MaxHeight
	}
	return MeasuredSize{Width: width, Height: height, MeasuredWidth: w, MeasuredHeight: h}
}

// GetSelectionRects implements §4.6 get_selection_rects: one rectangle
// per line the [cpStart, cpEnd) selection touches.
func (tb *TextBlock) GetSelectionRects(cpStart, cpEnd int32) []Rect {
	if cpEnd < cpStart {
		cpStart, cpEnd = cpEnd, cpStart
	}
	var rects []Rect
	for _, line := range tb.lines {
		var left, right float64
		touched := false
		for _, fr := range line.Runs {
			frEnd := fr.Start + fr.Length
			if frEnd <= cpStart || fr.Start >= cpEnd {
				continue
			}
			lo := maxInt32(fr.Start, cpStart)
			hi := minInt32(frEnd, cpEnd)
			wlo := fr.leadingWidth(lo - fr.Start)
			whi := fr.leadingWidth(hi - fr.Start)
			if wlo > whi {
				wlo, whi = whi, wlo
			}
			x0, x1 := fr.XCoord+wlo, fr.XCoord+whi
			if !touched {
				left, right = x0, x1
				touched = true
			} else {
				if x0 < left {
					left = x0
				}
				if x1 > right {
					right = x1
				}
			}
		}
		if touched {
			rects = append(rects, Rect{X: left, Y: line.YCoord, W: right - left, H: line.Height})
		}
	}
	return rects
}

func minInt32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

// FontsForLine returns the distinct typefaces used by a line's Font
// Runs (§4.6 fonts_for_line).
func (tb *TextBlock) FontsForLine(i int) []shape.Typeface {
	if i < 0 || i >= len(tb.lines) {
		return nil
	}
	seen := map[shape.Typeface]bool{}
	var out []shape.Typeface
	for _, fr := range tb.lines[i].Runs {
		if fr.Typeface != nil && !seen[fr.Typeface] {
			seen[fr.Typeface] = true
			out = append(out, fr.Typeface)
		}
	}
	return out
}

// RunsForLine returns the Font Runs of a line in visual order
// (§4.6 runs_for_line).
func (tb *TextBlock) RunsForLine(i int) []*FontRun {
	if i < 0 || i >= len(tb.lines) {
		return nil
	}
	return tb.lines[i].Runs
}

// LineCount returns the number of laid-out lines.
func (tb *TextBlock) LineCount() int { return len(tb.lines) }

// Buffer exposes the underlying Codepoint Buffer for callers that need
// direct UTF-16/UTF-32 offset translation.
func (tb *TextBlock) Buffer() *CodepointBuffer { return tb.cb }

// DecorationRuns coalesces adjacent Font Runs on a line that share an
// equal Style into continuous decoration spans (SPEC_FULL.md §4,
// grounded on the teacher's WalkDecorations).
func (tb *TextBlock) DecorationRuns(lineIndex int) []DecorationRun {
	if lineIndex < 0 || lineIndex >= len(tb.lines) {
		return nil
	}
	styles := tb.srt.Iter()
	var out []DecorationRun
	for _, fr := range tb.lines[lineIndex].Runs {
		if fr.StyleRunIndex < 0 || fr.StyleRunIndex >= len(styles) {
			continue
		}
		st := styles[fr.StyleRunIndex].Style
		if n := len(out); n > 0 && out[n-1].Style.Equals(st) {
			out[n-1].Runs = append(out[n-1].Runs, fr)
			continue
		}
		out = append(out, DecorationRun{Runs: []*FontRun{fr}, Style: st})
	}
	return out
}

// DominantStyle returns the Style covering the most codepoints across
// the whole buffer (SPEC_FULL.md §4, grounded on the teacher's
// MostCommonFontFace), or nil if the buffer is empty.
func (tb *TextBlock) DominantStyle() *style.Style {
	totals := map[*style.Style]int32{}
	var best *style.Style
	var bestLen int32
	for _, run := range tb.srt.Iter() {
		totals[run.Style] += run.Len()
		if l := totals[run.Style]; l > bestLen {
			bestLen = l
			best = run.Style
		}
	}
	return best
}
