// Package breakutil supplies the default shape.LineBreakClassFunc,
// backed by github.com/rivo/uniseg's UAX #14 line-breaking step
// function. uniseg ships as a real dependency in the retrieved pack
// (framegrace-texelation's terminal renderer pulls it in via
// mattn/go-runewidth for exactly this class of wrap decision), so it
// is reused here rather than hand-rolling a break-class table.
package breakutil

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/foldline/richtext/shape"
)

// Classes implements shape.LineBreakClassFunc. uniseg.Step operates on
// UTF-8 bytes and reports, per grapheme cluster it consumes, whether a
// line break is mandatory, allowed or prohibited after that cluster;
// that class is stored on the cluster's final codepoint, and the other
// codepoints of a multi-codepoint cluster stay BreakProhibited (a
// break can only fall on a cluster boundary).
func Classes(cps []shape.Codepoint) []shape.LineBreakClass {
	classes := make([]shape.LineBreakClass, len(cps))
	if len(cps) == 0 {
		return classes
	}

	b := make([]byte, 0, len(cps)*3)
	offsets := make([]int, 0, len(cps)+1) // codepoint index -> byte offset
	for _, cp := range cps {
		offsets = append(offsets, len(b))
		b = appendRune(b, rune(cp))
	}
	offsets = append(offsets, len(b))

	state := -1
	pos := 0
	for len(b) > 0 {
		cluster, rest, boundaries, newState := uniseg.Step(b, state)
		state = newState

		consumed := len(b) - len(rest)
		clusterEnd := pos + consumed

		cls := shape.BreakProhibited
		switch boundaries & uniseg.MaskLine {
		case uniseg.LineCanBreak:
			cls = shape.BreakAllowed
		case uniseg.LineMustBreak:
			cls = shape.BreakMandatory
		}

		// find the last codepoint index whose byte range ends at clusterEnd
		cpIdx := codepointForByteOffset(offsets, clusterEnd-1)
		if cpIdx >= 0 && cpIdx < len(classes) {
			classes[cpIdx] = cls
		}
		_ = cluster

		b = rest
		pos = clusterEnd
	}
	return classes
}

func appendRune(b []byte, r rune) []byte {
	if r < 0 || r > 0x10FFFF || (0xD800 <= r && r <= 0xDFFF) {
		r = 0xFFFD
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(b, buf[:n]...)
}

func codepointForByteOffset(offsets []int, byteOffset int) int {
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if offsets[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}
