// Package bidiutil supplies the default shape.BidiLevelsFunc, backed
// by golang.org/x/text/unicode/bidi — the same package the pack's
// npillmayer-opentype and gioui-gio shapers reach for when they need
// UAX #9 embedding levels. spec.md §1 treats the bidi algorithm as an
// external collaborator ("a function: codepoint slice → array of
// per-codepoint direction levels"); this is the concrete function a
// caller can plug in without writing their own bidi implementation.
package bidiutil

import (
	"unicode/utf16"

	"golang.org/x/text/unicode/bidi"

	"github.com/foldline/richtext/shape"
)

// Levels implements shape.BidiLevelsFunc using x/text/unicode/bidi's
// paragraph resolver. Codepoints outside the BMP are represented as
// their UTF-16 surrogate pair when calling into bidi.Paragraph (which
// operates on UTF-16 internally) and the resulting levels are
// expanded back to one level per input codepoint.
func Levels(cps []shape.Codepoint, base shape.Direction) []int {
	if len(cps) == 0 {
		return nil
	}

	units := make([]uint16, 0, len(cps))
	unitToCp := make([]int, 0, len(cps))
	for i, cp := range cps {
		r := rune(cp)
		if r < 0 || !utf16.IsSurrogate(r) && r > 0x10FFFF {
			r = 0xFFFD
		}
		encoded := utf16.Encode([]rune{r})
		for range encoded {
			unitToCp = append(unitToCp, i)
		}
		units = append(units, encoded...)
	}

	var p bidi.Paragraph
	opts := []bidi.Option{}
	if base == shape.RTL {
		opts = append(opts, bidi.DefaultDirection(bidi.RightToLeft))
	} else {
		opts = append(opts, bidi.DefaultDirection(bidi.LeftToRight))
	}
	p.SetString(string(utf16.Decode(units)), opts...)

	ordering, err := p.Order()
	levels := make([]int, len(cps))
	if err != nil || ordering.NumRuns() == 0 {
		// fall back to a uniform paragraph level; still a valid,
		// if unhelpful, level array.
		lvl := 0
		if base == shape.RTL {
			lvl = 1
		}
		for i := range levels {
			levels[i] = lvl
		}
		return levels
	}

	runeIdx := 0
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		// bidi.Direction starts LeftToRight=0, RightToLeft=1 (Mixed
		// and Neutral follow); using it directly as a level keeps the
		// even/odd parity spec.md §3 requires (even=LTR, odd=RTL) for
		// the two directional cases.
		runLevel := int(run.Direction())
		text := []rune(run.String())
		for range text {
			if runeIdx < len(cps) {
				levels[runeIdx] = runLevel
			}
			runeIdx++
		}
	}
	return levels
}
