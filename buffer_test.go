package richtext

import (
	"testing"
	"unicode/utf16"

	"github.com/tdewolff/test"
)

// TestSurrogateCollapse covers spec.md S2.
func TestSurrogateCollapse(t *testing.T) {
	b := NewCodepointBuffer()
	units := utf16.Encode([]rune("A🌐B"))
	test.T(t, len(units), 4)
	b.Append(units)

	test.T(t, b.Len(), int32(3))
	test.T(t, b.Utf32ToUtf16(0), int32(0))
	test.T(t, b.Utf32ToUtf16(1), int32(1))
	test.T(t, b.Utf32ToUtf16(2), int32(3))
	test.T(t, b.Utf16ToUtf32(0), int32(0))
	test.T(t, b.Utf16ToUtf32(1), int32(1))
	test.T(t, b.Utf16ToUtf32(2), int32(1))
	test.T(t, b.Utf16ToUtf32(3), int32(2))
}

func TestCRLFCollapse(t *testing.T) {
	b := NewCodepointBuffer()
	b.Append(utf16.Encode([]rune("a\r\nb")))
	test.T(t, b.Len(), int32(3)) // 'a', '\n', 'b'
	test.T(t, b.At(1), Codepoint('\n'))
	test.T(t, b.Utf16ToUtf32(1), b.Utf16ToUtf32(2)) // both \r and \n map to the LF scalar
}

func TestUTF16RoundTripNoCRLF(t *testing.T) {
	b := NewCodepointBuffer()
	input := utf16.Encode([]rune("hello 世界"))
	b.Append(input)
	test.T(t, b.RenderUTF16(), input)
}

func TestUTF16RoundTripWithCRLFRemovesCR(t *testing.T) {
	b := NewCodepointBuffer()
	input := utf16.Encode([]rune("a\r\nb"))
	b.Append(input)
	want := utf16.Encode([]rune("a\nb"))
	test.T(t, b.RenderUTF16(), want)
}

// TestUtf32ToUtf16RoundTrip covers quantified invariant 2 in spec.md §8.
func TestUtf32ToUtf16RoundTrip(t *testing.T) {
	b := NewCodepointBuffer()
	b.AppendString("This\r\na\r\nstring\n🌐 🍪 🍕 🚀")
	for j := int32(0); j < b.Len(); j++ {
		test.T(t, b.Utf16ToUtf32(b.Utf32ToUtf16(j)), j)
	}
}

func TestAsSlice(t *testing.T) {
	b := NewCodepointBuffer()
	b.AppendString("hello")
	test.T(t, len(b.AsSlice(1, 3)), 3)
	test.T(t, b.AsSlice(1, 3)[0], Codepoint('e'))
}

func TestLoneSurrogatePreserved(t *testing.T) {
	b := NewCodepointBuffer()
	b.Append([]uint16{0xD800, 'x'}) // lone high surrogate followed by non-surrogate
	test.T(t, b.Len(), int32(2))
	test.T(t, b.At(0), Codepoint(0xD800))
}
