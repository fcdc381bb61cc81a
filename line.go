package richtext

import (
	"unicode"

	"github.com/foldline/richtext/shape"
)

// Line is an ordered list of Font Runs in visual (left-to-right)
// order, with layout-assigned vertical metrics (§3 Line).
type Line struct {
	Runs     []*FontRun
	YCoord   float64
	Height   float64
	Baseline float64

	// LeftOverhang and RightOverhang approximate how far glyph ink
	// bounds exceed the line's advance-box edges (§4.5 step 9). Real
	// ink bounds require glyph outline access, which the shaping
	// delegate does not provide (Open Question 3, SPEC_FULL.md §5); a
	// zero/italic-heuristic approximation is used instead.
	LeftOverhang, RightOverhang float64

	// SoftWrapped is true when the line ended because content was
	// wrapped to fit MaxWidth, as opposed to a mandatory (LF) break or
	// the paragraph's last line. Only soft-wrapped lines are eligible
	// for AlignJustify's space distribution — a trailing or
	// hard-broken line is conventionally left-set instead.
	SoftWrapped bool
}

// italicOverhangFactor is the fixed heuristic used when exact glyph
// ink bounds are unavailable (SPEC_FULL.md §5, Open Question 3).
const italicOverhangFactor = 0.2

// lineBuilder implements §4.5: logical-order FR sequence -> Lines.
type lineBuilder struct {
	cb     *CodepointBuffer
	srt    *StyleRunTable
	deps   Delegates
	params LayoutParams
	pool   *Pool
}

func newLineBuilder(cb *CodepointBuffer, srt *StyleRunTable, deps Delegates, params LayoutParams, pool *Pool) *lineBuilder {
	return &lineBuilder{cb: cb, srt: srt, deps: deps, params: params, pool: pool}
}

// recycle returns a Font Run the Line Builder is discarding (because it
// was split into two replacements, or superseded by a trailing-
// whitespace split) to the Pool, if one was supplied (§2 item 6).
func (lb *lineBuilder) recycle(fr *FontRun) {
	if lb.pool != nil {
		lb.pool.Put(fr)
	}
}

// Build consumes the flat logical-order Font Run list (as produced by
// the Font Run Builder across all Style Runs) and the full-buffer bidi
// level array, and returns the formed Lines plus whether content
// overflowed max_lines (kind-5, §7); the flag is set whether or not an
// ellipsis was appended.
func (lb *lineBuilder) Build(frs []*FontRun, levels []int, breaks []shape.LineBreakClass) ([]*Line, bool, error) {
	var lines []*Line
	var cur []*FontRun
	overflowed := false

	flush := func(wrapped bool) {
		if len(cur) == 0 && len(lines) > 0 {
			return
		}
		lines = append(lines, &Line{Runs: cur, SoftWrapped: wrapped})
		cur = nil
	}

	i := 0
	for i < len(frs) {
		fr := frs[i]

		// A mandatory break (hard LF) may fall strictly inside fr when
		// the Font Run Builder merged several logical lines' worth of
		// codepoints into one run (it segments by bidi level and font
		// affinity only, not by line breaks). Split fr there first,
		// regardless of width, before applying the width-driven wrap.
		if q := lb.firstInternalMandatoryBreak(fr, breaks); q > 0 {
			left, right, err := fr.Split(q, lb.pool)
			if err != nil {
				return nil, false, err
			}
			cur = append(cur, left)
			flush(false)
			lb.recycle(fr)
			frs[i] = right
			continue
		}

		remaining := lb.params.MaxWidth - lb.lineWidth(cur)

		if lb.params.MaxWidth > 0 && fr.Width > remaining {
			// Step 3: accumulated width would exceed W placing fr whole.
			brk := lb.findBreakInRun(fr, remaining, breaks)
			if brk > 0 && brk < fr.Length {
				left, right, err := fr.Split(brk, lb.pool)
				if err != nil {
					return nil, false, err
				}
				cur = append(cur, left)
				flush(true)
				lb.recycle(fr)
				frs[i] = right // reprocess the remainder as the next FR
				continue
			}
			if len(cur) > 0 {
				// No permissible break inside fr, but the current line
				// already has content: flush it and retry fr on a fresh
				// line (word overflow without forcing a mid-word split).
				flush(true)
				continue
			}
			// Current line is empty and fr still doesn't fit anywhere:
			// emit it over-long rather than loop forever (§4.5 step 3's
			// "force" branch, with no smaller force-split point available).
		}

		mandatory := lb.hasMandatoryBreak(fr, breaks)
		cur = append(cur, fr)
		i++

		if mandatory {
			flush(false)
		}
	}
	flush(false)

	if lb.params.MaxLines > 0 && len(lines) > lb.params.MaxLines {
		extra := lines[lb.params.MaxLines:]
		lines = lines[:lb.params.MaxLines]
		if lb.params.Ellipsis && len(lines) > 0 {
			if err := lb.appendEllipsis(lines[len(lines)-1]); err != nil {
				return nil, false, err
			}
		}
		if len(extra) > 0 {
			overflowed = true
		}
	}

	lb.classifyTrailingWhitespace(lines)
	if lb.params.Align == AlignJustify {
		lb.splitForJustify(lines, breaks)
	}
	lb.reorderAndPosition(lines, levels)

	return lines, overflowed, nil
}

func (lb *lineBuilder) lineWidth(runs []*FontRun) float64 {
	var w float64
	for _, r := range runs {
		w += r.Width
	}
	return w
}

// hasMandatoryBreak reports whether the break-class array marks a
// mandatory break (hard LF) immediately after fr's last codepoint.
func (lb *lineBuilder) hasMandatoryBreak(fr *FontRun, breaks []shape.LineBreakClass) bool {
	last := fr.Start + fr.Length - 1
	if last < 0 || int(last) >= len(breaks) {
		return false
	}
	return breaks[last] == shape.BreakMandatory
}

// firstInternalMandatoryBreak returns the smallest codepoint offset q,
// strictly interior to fr (0 < q < fr.Length), at which a mandatory
// break occurs, or -1 if none.
func (lb *lineBuilder) firstInternalMandatoryBreak(fr *FontRun, breaks []shape.LineBreakClass) int32 {
	for q := int32(1); q < fr.Length; q++ {
		cpIdx := fr.Start + q - 1
		if int(cpIdx) < len(breaks) && breaks[cpIdx] == shape.BreakMandatory {
			return q
		}
	}
	return -1
}

// findBreakInRun implements find_break_position (§4.5): the largest
// codepoint offset within fr whose leading width is < maxWidth, at a
// permissible break boundary, or -1 when there is none. It never forces
// a mid-word split: when no permissible break fits, Build either moves
// fr to a fresh line or emits it over-long.
func (lb *lineBuilder) findBreakInRun(fr *FontRun, maxWidth float64, breaks []shape.LineBreakClass) int32 {
	best := int32(-1)
	for p := int32(1); p < fr.Length; p++ {
		cpIdx := fr.Start + p - 1
		if int(cpIdx) >= len(breaks) || breaks[cpIdx] == shape.BreakProhibited {
			continue
		}
		if fr.leadingWidth(p) < maxWidth {
			best = p
		}
	}
	return best
}

// classifyTrailingWhitespace implements §4.5 step 5: the final
// whitespace codepoints of each line are reclassified so they are
// excluded from width/overhang accounting. Whole Font Runs that are
// entirely whitespace are reclassified directly; a Font Run that mixes
// trailing whitespace with preceding content is split so only the
// whitespace tail changes kind.
func (lb *lineBuilder) classifyTrailingWhitespace(lines []*Line) {
	for _, line := range lines {
		for i := len(line.Runs) - 1; i >= 0; i-- {
			fr := line.Runs[i]
			if fr.Kind == FontRunEllipsis {
				continue
			}
			if lb.isAllWhitespace(fr) {
				fr.Kind = FontRunTrailingWhitespace
				fr.TrailingPadding = fr.Width
				continue
			}
			if n := lb.trailingWhitespaceLen(fr); n > 0 && n < fr.Length {
				// Split names its results by visual order; the logical
				// tail (the whitespace) is "right" for LTR but "left" for
				// RTL runs (§4.4's RTL mirror rule).
				a, b, err := fr.Split(fr.Length-n, lb.pool)
				if err == nil {
					content, tailRun := a, b
					if fr.Direction == shape.RTL {
						content, tailRun = b, a
					}
					tailRun.Kind = FontRunTrailingWhitespace
					tailRun.TrailingPadding = tailRun.Width
					line.Runs[i] = content
					rest := append([]*FontRun{tailRun}, line.Runs[i+1:]...)
					line.Runs = append(line.Runs[:i+1], rest...)
					lb.recycle(fr)
				}
			}
			break
		}
	}
}

func (lb *lineBuilder) isAllWhitespace(fr *FontRun) bool {
	for i := int32(0); i < fr.Length; i++ {
		if !unicode.IsSpace(rune(lb.cb.At(fr.Start + i))) {
			return false
		}
	}
	return fr.Length > 0
}

// trailingWhitespaceLen returns the number of whitespace codepoints at
// the logical end of fr.
func (lb *lineBuilder) trailingWhitespaceLen(fr *FontRun) int32 {
	var n int32
	for i := fr.Length - 1; i >= 0; i-- {
		if !unicode.IsSpace(rune(lb.cb.At(fr.Start + i))) {
			break
		}
		n++
	}
	return n
}

// splitForJustify implements AlignJustify's space distribution: each
// soft-wrapped line's runs are split at every interior permissible
// break position (a word gap), turning one Font Run that happens to
// span several words into one Font Run per word, so reorderAndPosition
// can distribute the line's leftover width evenly across those gaps.
// Operates on logical-order runs, before visual reordering.
func (lb *lineBuilder) splitForJustify(lines []*Line, breaks []shape.LineBreakClass) {
	for _, line := range lines {
		if !line.SoftWrapped {
			continue
		}
		var result []*FontRun
		for _, fr := range line.Runs {
			if fr.Kind != FontRunNormal {
				result = append(result, fr)
				continue
			}
			result = append(result, lb.splitRunAtBreaks(fr, breaks)...)
		}
		line.Runs = result
	}
}

// splitRunAtBreaks splits fr at every interior BreakAllowed codepoint,
// returning the pieces in logical order.
func (lb *lineBuilder) splitRunAtBreaks(fr *FontRun, breaks []shape.LineBreakClass) []*FontRun {
	var out []*FontRun
	cur := fr
	for {
		splitAt := int32(-1)
		for q := int32(1); q < cur.Length; q++ {
			cpIdx := cur.Start + q - 1
			if int(cpIdx) < len(breaks) && breaks[cpIdx] == shape.BreakAllowed {
				splitAt = q
				break
			}
		}
		if splitAt < 0 {
			out = append(out, cur)
			return out
		}
		left, right, err := cur.Split(splitAt, lb.pool)
		if err != nil {
			out = append(out, cur)
			return out
		}
		// Split names results by visual order; continue walking the
		// logical-later half regardless of which return value that is.
		logicalEarlier, logicalLater := left, right
		if cur.Direction == shape.RTL {
			logicalEarlier, logicalLater = right, left
		}
		out = append(out, logicalEarlier)
		lb.recycle(cur)
		cur = logicalLater
	}
}

// appendEllipsis implements §4.5 step 6: walk visual-end-inward
// removing FRs until an ellipsis FR fits, then append it.
func (lb *lineBuilder) appendEllipsis(line *Line) error {
	if len(line.Runs) == 0 || lb.deps.Shape == nil {
		return nil
	}
	last := line.Runs[len(line.Runs)-1]
	st := lb.srt.Iter()[last.StyleRunIndex].Style
	face, err := lb.deps.MatchFont(shape.Codepoint('…'), st)
	if err != nil {
		return nil // kind-4: give up on the ellipsis rather than fail layout
	}
	result, err := lb.deps.Shape([]shape.Codepoint{'…'}, face, st.FontSize(), shape.LTR, "")
	if err != nil {
		return nil
	}
	var advance float64
	if len(result.Advances) > 0 {
		advance = result.Advances[0]
	}

	budget := lb.params.MaxWidth
	for budget > 0 && lb.lineWidth(line.Runs)+advance > budget && len(line.Runs) > 0 {
		line.Runs = line.Runs[:len(line.Runs)-1]
	}

	ell := allocFontRun(lb.pool)
	ell.Kind = FontRunEllipsis
	ell.StyleRunIndex = last.StyleRunIndex
	ell.Start = last.Start + last.Length
	ell.Length = 1
	ell.Direction = shape.LTR
	ell.Typeface = face
	ell.Metrics = face.Metrics(st.FontSize())
	ell.GlyphIDs = result.GlyphIDs
	ell.Clusters = []uint32{0}
	ell.RelativeCPX = []float64{0, advance}
	ell.Width = advance
	line.Runs = append(line.Runs, ell)
	return nil
}

// reorderAndPosition implements §4.5 steps 7-9: UAX #9 visual
// reordering within each line, text_alignment-driven x_coord
// assignment, baseline and height computation, and overhang
// approximation (SPEC_FULL.md §2 Configuration / §6).
func (lb *lineBuilder) reorderAndPosition(lines []*Line, levels []int) {
	var y float64
	for _, line := range lines {
		line.Runs = visualReorder(line.Runs, levels)

		leading, gapAfter, gapExtra := lb.alignmentOffsets(line)

		x := leading
		var baseline, height float64
		for i, fr := range line.Runs {
			fr.XCoord = x
			x += fr.Width
			if gapAfter != nil && gapAfter[i] {
				x += gapExtra
			}
			if fr.Kind != FontRunTrailingWhitespace {
				if fr.Metrics.Ascent > baseline {
					baseline = fr.Metrics.Ascent
				}
				lh := fr.Metrics.Ascent + fr.Metrics.Descent + fr.Metrics.Leading
				if lh > height {
					height = lh
				}
			}
		}
		line.Baseline = baseline
		line.Height = height
		line.YCoord = y
		y += height

		lb.computeOverhang(line)
	}
}

// alignmentOffsets implements text_alignment (§6): AlignLeft keeps the
// existing zero-offset left-packed behavior, AlignRight/AlignCenter
// shift the whole line's block by the unused width, and AlignJustify
// distributes the unused width evenly across the word gaps a
// soft-wrapped line was split at (splitForJustify). A line that isn't
// soft-wrapped, or that already fills MaxWidth, is left-set regardless
// of Align — matching the usual convention that a paragraph's last (or
// hard-broken) line is not stretched to justify.
func (lb *lineBuilder) alignmentOffsets(line *Line) (leading float64, gapAfter []bool, gapExtra float64) {
	if lb.params.MaxWidth <= 0 {
		return 0, nil, 0
	}
	var used float64
	for _, fr := range line.Runs {
		if fr.Kind != FontRunTrailingWhitespace {
			used += fr.Width
		}
	}
	extra := lb.params.MaxWidth - used
	if extra <= 0 {
		return 0, nil, 0
	}
	switch lb.params.Align {
	case AlignRight:
		return extra, nil, 0
	case AlignCenter:
		return extra / 2, nil, 0
	case AlignJustify:
		if !line.SoftWrapped {
			return 0, nil, 0
		}
		gaps := lb.justifyGapPositions(line.Runs)
		if len(gaps) == 0 {
			return 0, nil, 0
		}
		gapAfter = make([]bool, len(line.Runs))
		for _, g := range gaps {
			gapAfter[g] = true
		}
		return 0, gapAfter, extra / float64(len(gaps))
	default:
		return 0, nil, 0
	}
}

// justifyGapPositions returns, for each eligible adjacent run pair in
// visual order, the index of the left run of that pair — the position
// after which extra space should be inserted. Gaps touching trailing
// whitespace or an ellipsis run are excluded since those are never
// stretched.
func (lb *lineBuilder) justifyGapPositions(runs []*FontRun) []int {
	var gaps []int
	for i := 0; i < len(runs)-1; i++ {
		if runs[i].Kind != FontRunNormal || runs[i+1].Kind != FontRunNormal {
			continue
		}
		gaps = append(gaps, i)
	}
	return gaps
}

// visualReorder applies a UAX #9-style reordering of runs by bidi
// level: find the highest level present, reverse maximal runs at that
// level, repeat for decreasing levels. Operates on the run's starting
// codepoint level (all codepoints of a Font Run share one level by
// construction, since FRB segments at level boundaries).
func visualReorder(runs []*FontRun, levels []int) []*FontRun {
	if len(runs) == 0 {
		return runs
	}
	runLevel := make([]int, len(runs))
	maxLevel := 0
	for i, fr := range runs {
		lvl := 0
		if int(fr.Start) < len(levels) {
			lvl = levels[fr.Start]
		}
		runLevel[i] = lvl
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	ordered := append([]*FontRun(nil), runs...)
	orderedLevel := append([]int(nil), runLevel...)
	for lvl := maxLevel; lvl >= 1; lvl-- {
		i := 0
		for i < len(ordered) {
			if orderedLevel[i] < lvl {
				i++
				continue
			}
			j := i
			for j < len(ordered) && orderedLevel[j] >= lvl {
				j++
			}
			reverseRuns(ordered[i:j])
			reverseInts(orderedLevel[i:j])
			i = j
		}
	}
	return ordered
}

func reverseRuns(s []*FontRun) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func reverseInts(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// computeOverhang implements the approximation documented in
// SPEC_FULL.md §5 Open Question 3: zero overhang by default, a fixed
// skew-based heuristic for italic styles at the line's visual edges.
func (lb *lineBuilder) computeOverhang(line *Line) {
	if len(line.Runs) == 0 {
		return
	}
	styles := lb.srt.Iter()

	firstIdx, lastIdx := 0, len(line.Runs)-1
	for firstIdx < lastIdx && line.Runs[firstIdx].Kind == FontRunTrailingWhitespace {
		firstIdx++
	}
	for lastIdx > firstIdx && line.Runs[lastIdx].Kind == FontRunTrailingWhitespace {
		lastIdx--
	}

	first := line.Runs[firstIdx]
	if int(first.StyleRunIndex) < len(styles) && styles[first.StyleRunIndex].Style.Italic() {
		line.LeftOverhang = italicOverhangFactor * styles[first.StyleRunIndex].Style.FontSize()
	}
	last := line.Runs[lastIdx]
	if int(last.StyleRunIndex) < len(styles) && styles[last.StyleRunIndex].Style.Italic() {
		line.RightOverhang = italicOverhangFactor * styles[last.StyleRunIndex].Style.FontSize()
	}
}
