package breakutil

import (
	"testing"

	"github.com/tdewolff/test"

	"github.com/foldline/richtext/shape"
)

func toCodepoints(s string) []shape.Codepoint {
	cps := make([]shape.Codepoint, 0, len(s))
	for _, r := range s {
		cps = append(cps, shape.Codepoint(r))
	}
	return cps
}

func TestClassesSpaceIsBreakable(t *testing.T) {
	cps := toCodepoints("foo bar")
	classes := Classes(cps)
	test.T(t, len(classes), len(cps))
	test.T(t, classes[3], shape.BreakAllowed) // "foo"[0:3], space at index 3
}

func TestClassesNewlineIsMandatory(t *testing.T) {
	cps := toCodepoints("foo\nbar")
	classes := Classes(cps)
	test.T(t, classes[3], shape.BreakMandatory)
}

func TestClassesNoBreakMidWord(t *testing.T) {
	cps := toCodepoints("foobar")
	classes := Classes(cps)
	for i := 0; i < len(classes)-1; i++ {
		test.T(t, classes[i], shape.BreakProhibited)
	}
}

func TestClassesEmpty(t *testing.T) {
	classes := Classes(nil)
	test.T(t, len(classes), 0)
}
