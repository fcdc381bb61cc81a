package style

import (
	"testing"

	"github.com/tdewolff/test"
)

func TestBuilderDefaults(t *testing.T) {
	s := NewBuilder().Seal()
	test.Float(t, s.FontSize(), 12.0)
	test.T(t, s.FontWeight(), WeightRegular)
	test.Float(t, s.LineHeightMultiplier(), 1.0)
	test.That(t, s.Sealed())
}

func TestBuilderChaining(t *testing.T) {
	s := NewBuilder().
		FontFamily("dejavu-serif").
		FontSize(14).
		Italic(true).
		Underline(UnderlineSolid).
		Seal()

	test.T(t, s.FontFamily(), "dejavu-serif")
	test.Float(t, s.FontSize(), 14.0)
	test.That(t, s.Italic())
	test.T(t, s.UnderlineKind(), UnderlineSolid)
}

func TestSealedMutationPanics(t *testing.T) {
	b := NewBuilder()
	b.Seal()
	defer func() {
		r := recover()
		test.That(t, r != nil)
		_, ok := r.(*SealedMutationError)
		test.That(t, ok)
	}()
	b.FontSize(20)
}

func TestEquals(t *testing.T) {
	a := NewBuilder().FontFamily("a").FontSize(12).Seal()
	b := NewBuilder().FontFamily("a").FontSize(12).Seal()
	c := NewBuilder().FontFamily("a").FontSize(13).Seal()

	test.That(t, a.Equals(b))
	test.That(t, !a.Equals(c))
	test.That(t, a.Equals(a))
}

func TestOptionalOffsetsUnsetByDefault(t *testing.T) {
	s := NewBuilder().Seal()
	_, ok := s.UnderlineOffset()
	test.That(t, !ok)
	_, ok = s.StrokeThickness()
	test.That(t, !ok)
}
