package richtext

import "unicode/utf16"

// Codepoint is a Unicode scalar value stored as a signed 32-bit
// integer. Lone surrogates (produced by malformed UTF-16 input) are
// preserved as-is rather than rejected, matching §6's character
// mapping contract.
type Codepoint int32

const replacementCodepoint Codepoint = 0xFFFD

// CodepointBuffer is an append-only UTF-32 buffer with bidirectional
// offset maps back to the UTF-16 view external callers index into.
// It owns no other state and is never shared for writes across Text
// Blocks — see §5 Concurrency & Resource Model.
type CodepointBuffer struct {
	cps     []Codepoint
	u16to32 []int32 // indexed by UTF-16 unit index, across all appends
	u32to16 []int32 // indexed by UTF-32 (codepoint) index
}

// NewCodepointBuffer returns an empty buffer ready to accept appends.
func NewCodepointBuffer() *CodepointBuffer {
	return &CodepointBuffer{}
}

// Append decodes a UTF-16 code unit slice as described by a styled
// text append (§6 Inputs): surrogate pairs collapse to one scalar, and
// CRLF collapses to a single LF scalar with both code units mapping to
// it. Lone surrogates, and a lone '\r' not followed by '\n', are
// preserved as their own scalar (Open Question 1 in SPEC_FULL.md §5).
func (b *CodepointBuffer) Append(units []uint16) {
	base := int32(len(b.u16to32))
	i := 0
	for i < len(units) {
		u := units[i]
		switch {
		case 0xD800 <= u && u <= 0xDBFF && i+1 < len(units) && 0xDC00 <= units[i+1] && units[i+1] <= 0xDFFF:
			lo := units[i+1]
			scalar := Codepoint(0x10000 + (int32(u)-0xD800)<<10 + (int32(lo) - 0xDC00))
			cpIdx := int32(len(b.cps))
			b.cps = append(b.cps, scalar)
			b.u32to16 = append(b.u32to16, base+int32(i))
			b.u16to32 = append(b.u16to32, cpIdx, cpIdx)
			i += 2
		case u == '\r' && i+1 < len(units) && units[i+1] == '\n':
			cpIdx := int32(len(b.cps))
			b.cps = append(b.cps, '\n')
			b.u32to16 = append(b.u32to16, base+int32(i))
			b.u16to32 = append(b.u16to32, cpIdx, cpIdx)
			i += 2
		default:
			cpIdx := int32(len(b.cps))
			b.cps = append(b.cps, Codepoint(u))
			b.u32to16 = append(b.u32to16, base+int32(i))
			b.u16to32 = append(b.u16to32, cpIdx)
			i++
		}
	}
}

// AppendString is a convenience wrapper over Append for callers
// working with Go's native UTF-8 strings; it re-encodes to UTF-16 so
// the offset-map contract of §6 still applies to the units the string
// would occupy on the wire.
func (b *CodepointBuffer) AppendString(s string) {
	b.Append(utf16.Encode([]rune(s)))
}

// Len returns the number of codepoints in the buffer.
func (b *CodepointBuffer) Len() int32 {
	return int32(len(b.cps))
}

// At returns the scalar at UTF-32 index i.
func (b *CodepointBuffer) At(i int32) Codepoint {
	return b.cps[i]
}

// AsSlice returns the codepoints in [start, start+length).
func (b *CodepointBuffer) AsSlice(start, length int32) []Codepoint {
	return b.cps[start : start+length]
}

// Utf16ToUtf32 maps a UTF-16 code unit index in the original input to
// the UTF-32 index of the scalar it is part of.
func (b *CodepointBuffer) Utf16ToUtf32(i int32) int32 {
	return b.u16to32[i]
}

// Utf32ToUtf16 maps a UTF-32 index to the first UTF-16 unit of that
// scalar in the original input.
func (b *CodepointBuffer) Utf32ToUtf16(j int32) int32 {
	return b.u32to16[j]
}

// Utf16Len returns the number of UTF-16 code units originally appended.
func (b *CodepointBuffer) Utf16Len() int32 {
	return int32(len(b.u16to32))
}

// RenderUTF16 reconstructs the UTF-16 unit sequence implied by the
// current scalar stream. Because CRLF collapses irreversibly to LF on
// append (§3), round-tripping input that contained CRLF yields the
// input with '\r' removed, matching the round-trip law in §8.
func (b *CodepointBuffer) RenderUTF16() []uint16 {
	units := make([]uint16, 0, len(b.cps))
	for _, cp := range b.cps {
		if 0xD800 <= cp && cp <= 0xDFFF {
			// lone surrogate, preserved verbatim
			units = append(units, uint16(cp))
			continue
		}
		units = append(units, utf16.Encode([]rune{rune(cp)})...)
	}
	return units
}
