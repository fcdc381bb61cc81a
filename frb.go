package richtext

import (
	"sort"
	"unicode"

	"github.com/foldline/richtext/shape"
	"github.com/foldline/richtext/style"
)

// superSubScale is the font-size scale factor applied to superscript
// and subscript runs (§4.3 step "super/sub-script").
const superSubScale = 0.65

// superOffset and subOffset are the paint-time vertical offsets (as a
// multiple of the unscaled font size) applied by callers; FRB records
// them on the FontRun's Metrics but does not itself move glyphs, since
// painting is an external collaborator.
const (
	superOffset = -0.35
	subOffset   = 0.10
)

// Delegates bundles the four external collaborator functions spec.md
// §6 requires a caller to provide. A TextBlock is constructed with one
// Delegates value and reuses it for every Layout call.
type Delegates struct {
	Shape          shape.ShapeFunc
	MatchFont      shape.FontMatcherFunc
	BidiLevels     shape.BidiLevelsFunc
	LineBreakClass shape.LineBreakClassFunc
}

// fontRunBuilder implements §4.3: CB slice + one Style Run + bidi
// levels in, one or more Font Runs out.
type fontRunBuilder struct {
	cb   *CodepointBuffer
	deps Delegates
	pool *Pool
}

func newFontRunBuilder(cb *CodepointBuffer, deps Delegates, pool *Pool) *fontRunBuilder {
	return &fontRunBuilder{cb: cb, deps: deps, pool: pool}
}

// Build runs the full algorithm for one Style Run, given the
// per-codepoint bidi levels for the *entire* buffer (levels are
// indexed globally, sliced here to the run's range).
func (b *fontRunBuilder) Build(run StyleRun, runIdx int, levels []int) ([]*FontRun, error) {
	st := run.Style
	var out []*FontRun

	// Step 1: segment by bidi level into directional sub-runs.
	segStart := run.Start
	for segStart < run.End {
		lvl := levels[segStart]
		segEnd := segStart + 1
		for segEnd < run.End && levels[segEnd] == lvl {
			segEnd++
		}
		dir := shape.LTR
		if lvl%2 == 1 {
			dir = shape.RTL
		}
		frs, err := b.buildDirectionalSegment(segStart, segEnd, runIdx, st, dir)
		if err != nil {
			return nil, err
		}
		out = append(out, frs...)
		segStart = segEnd
	}
	return out, nil
}

// buildDirectionalSegment implements step 2 (font-affinity
// segmentation, keeping combining marks/ZWJ with their base cluster)
// followed by steps 3-6 (shape, measure, letter-space, finalize) for
// each resulting font-affinity segment.
func (b *fontRunBuilder) buildDirectionalSegment(start, end int32, runIdx int, st *style.Style, dir shape.Direction) ([]*FontRun, error) {
	var out []*FontRun

	segStart := start
	var curFace shape.Typeface
	for i := segStart; i < end; i++ {
		cp := b.cb.At(i)
		face, err := b.resolveFace(cp, st)
		if err != nil {
			face = curFace // kind-4 fallback handled inside resolveFace
		}

		isCombining := unicode.Is(unicode.Mn, rune(cp)) || unicode.Is(unicode.Me, rune(cp)) || rune(cp) == 0x200D // ZWJ

		if curFace == nil {
			curFace = face
		} else if face != curFace && !isCombining {
			fr, err := b.shapeSegment(segStart, i, runIdx, st, dir, curFace)
			if err != nil {
				return nil, err
			}
			out = append(out, fr)
			segStart = i
			curFace = face
		}
	}
	if segStart < end {
		fr, err := b.shapeSegment(segStart, end, runIdx, st, dir, curFace)
		if err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, nil
}

// resolveFace calls the font-matcher, applying the replacement
// character override and handling kind-4 failures with a U+FFFD
// fallback per §7.
func (b *fontRunBuilder) resolveFace(cp Codepoint, st *style.Style) (shape.Typeface, error) {
	if r := st.ReplacementChar(); r != 0 {
		cp = Codepoint(r)
	}
	face, err := b.deps.MatchFont(shape.Codepoint(cp), st)
	if err != nil && cp != replacementCodepoint {
		face, err = b.deps.MatchFont(shape.Codepoint(replacementCodepoint), st)
	}
	return face, err
}

// shapeSegment runs steps 3-6 of §4.3 for one font-affinity segment
// already confirmed to share a single typeface and direction.
func (b *fontRunBuilder) shapeSegment(start, end int32, runIdx int, st *style.Style, dir shape.Direction, face shape.Typeface) (*FontRun, error) {
	length := end - start

	size := st.FontSize()
	if st.Variant() != style.VariantNormal {
		size *= superSubScale
	}

	cps := make([]shape.Codepoint, length)
	replacement := st.ReplacementChar()
	for i := int32(0); i < length; i++ {
		if replacement != 0 {
			cps[i] = shape.Codepoint(replacement)
		} else {
			cps[i] = shape.Codepoint(b.cb.At(start + i))
		}
	}

	result, err := b.deps.Shape(cps, face, size, dir, "")
	if err != nil {
		// kind-4: substitute the replacement character (or U+FFFD) and
		// retry once; if that also fails, fall through with an empty
		// shaping result rather than aborting layout.
		fallback := replacement
		if fallback == 0 {
			fallback = rune(replacementCodepoint)
		}
		fallbackCps := make([]shape.Codepoint, length)
		for i := range fallbackCps {
			fallbackCps[i] = shape.Codepoint(fallback)
		}
		result, err = b.deps.Shape(fallbackCps, face, size, dir, "")
		if err != nil {
			result = shape.ShapeResult{}
		}
	}

	fr := allocFontRun(b.pool)
	fr.Kind = FontRunNormal
	fr.StyleRunIndex = runIdx
	fr.Start = start
	fr.Length = length
	fr.Direction = dir
	fr.Typeface = face
	if face != nil {
		fr.Metrics = face.Metrics(size)
	}
	if st.Variant() == style.VariantSuperscript {
		fr.Metrics.Ascent -= superOffset * st.FontSize()
	} else if st.Variant() == style.VariantSubscript {
		fr.Metrics.Ascent -= subOffset * st.FontSize()
	}

	fr.GlyphIDs = result.GlyphIDs
	fr.Clusters = result.Clusters
	fr.PositionX = result.OffsetsX
	fr.PositionY = result.OffsetsY

	b.computeRelativeCPX(fr, result, dir, st.LetterSpacing())

	return fr, nil
}

// computeRelativeCPX implements §4.3 step 4 (accumulate per-codepoint
// leading widths from glyph advances grouped by cluster) and step 5
// (letter-spacing inserted once per cluster boundary, not between
// codepoints of the same cluster — e.g. a base codepoint and a
// combining mark sharing one glyph cluster never get a spacing gap
// wedged between them).
func (b *fontRunBuilder) computeRelativeCPX(fr *FontRun, result shape.ShapeResult, dir shape.Direction, letterSpacing float64) {
	length := fr.Length
	advancePerCP := make([]float64, length)
	for gi, adv := range result.Advances {
		if gi >= len(result.Clusters) {
			continue
		}
		cpIdx := int32(result.Clusters[gi])
		if cpIdx >= 0 && cpIdx < length {
			advancePerCP[cpIdx] += adv
		}
	}
	cpCluster := clusterBoundaries(result.Clusters, length)

	relative := make([]float64, length+1)
	if dir != shape.RTL {
		acc := 0.0
		relative[0] = 0
		for i := int32(0); i < length; i++ {
			acc += advancePerCP[i]
			if i > 0 && cpCluster[i] != cpCluster[i-1] {
				acc += letterSpacing
			}
			relative[i+1] = acc
		}
	} else {
		acc := 0.0
		relative[length] = 0
		for i := length - 1; i >= 0; i-- {
			acc += advancePerCP[i]
			if i < length-1 && cpCluster[i] != cpCluster[i+1] {
				acc += letterSpacing
			}
			relative[i] = acc
		}
	}
	fr.RelativeCPX = relative
	if dir != shape.RTL {
		fr.Width = relative[length]
	} else {
		fr.Width = relative[0]
	}
}

// clusterBoundaries maps each codepoint offset in [0,length) to the
// cluster it belongs to, derived from the shaper's glyph-to-codepoint
// Clusters array: a cluster spans from one distinct cluster-start
// value up to (but not including) the next. A codepoint with no glyph
// of its own (e.g. a combining mark folded into its base glyph) shares
// its base's cluster rather than starting a new one. When the shaper
// produced no clusters at all (the kind-4 empty-result fallback),
// every codepoint is treated as its own cluster so letter-spacing
// still applies between every codepoint, as it would for ordinary text.
func clusterBoundaries(clusters []uint32, length int32) []int32 {
	cpCluster := make([]int32, length)
	if length == 0 {
		return cpCluster
	}
	seen := make(map[int32]bool, len(clusters))
	var starts []int32
	for _, c := range clusters {
		ci := int32(c)
		if ci >= 0 && ci < length && !seen[ci] {
			seen[ci] = true
			starts = append(starts, ci)
		}
	}
	if len(starts) == 0 {
		for i := range cpCluster {
			cpCluster[i] = int32(i)
		}
		return cpCluster
	}
	sort.Slice(starts, func(i, j int) bool { return starts[i] < starts[j] })

	si, cur := 0, starts[0]
	for i := int32(0); i < length; i++ {
		for si < len(starts) && starts[si] <= i {
			cur = starts[si]
			si++
		}
		cpCluster[i] = cur
	}
	return cpCluster
}
