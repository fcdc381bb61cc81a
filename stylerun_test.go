package richtext

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/foldline/richtext/style"
)

func plainStyle() *style.Style {
	return style.NewBuilder().FontFamily("serif").Seal()
}

func TestStyleRunTableStyleAt(t *testing.T) {
	a := plainStyle()
	b := plainStyle()
	srt := NewStyleRunTable()
	srt.AddRun(0, 5, a)
	srt.AddRun(5, 10, b)

	test.That(t, srt.StyleAt(0) == a)
	test.That(t, srt.StyleAt(4) == a)
	test.That(t, srt.StyleAt(5) == b)
	test.That(t, srt.StyleAt(9) == b)
}

func TestStyleRunTableValidateOK(t *testing.T) {
	srt := NewStyleRunTable()
	srt.AddRun(0, 5, plainStyle())
	srt.AddRun(5, 10, plainStyle())
	test.Error(t, srt.Validate(10))
}

func TestStyleRunTableValidateGap(t *testing.T) {
	srt := NewStyleRunTable()
	srt.AddRun(0, 4, plainStyle())
	srt.AddRun(5, 10, plainStyle())
	err := srt.Validate(10)
	test.That(t, err != nil)
}

func TestStyleRunTableValidateOverlap(t *testing.T) {
	srt := NewStyleRunTable()
	srt.AddRun(0, 6, plainStyle())
	srt.AddRun(5, 10, plainStyle())
	err := srt.Validate(10)
	test.That(t, err != nil)
}

func TestStyleRunTableValidateShortCoverage(t *testing.T) {
	srt := NewStyleRunTable()
	srt.AddRun(0, 5, plainStyle())
	err := srt.Validate(10)
	test.That(t, err != nil)
}
