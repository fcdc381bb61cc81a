package bidiutil

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

func TestLevelsEmpty(t *testing.T) {
	levels := Levels(nil, shape.LTR)
	test.T(t, len(levels), 0)
}

func TestLevelsAllLatinIsLevelZero(t *testing.T) {
	cps := toCodepoints("hello world")
	levels := Levels(cps, shape.LTR)
	test.T(t, len(levels), len(cps))
	for _, lvl := range levels {
		test.T(t, lvl, 0)
	}
}

func TestLevelsHebrewIsOddLevel(t *testing.T) {
	cps := toCodepoints("אבג")
	levels := Levels(cps, shape.RTL)
	test.T(t, len(levels), len(cps))
	for _, lvl := range levels {
		test.That(t, lvl%2 == 1)
	}
}

func TestLevelsLengthMatchesInputRegardlessOfAstralCodepoints(t *testing.T) {
	cps := toCodepoints("a\U0001F600b")
	levels := Levels(cps, shape.LTR)
	test.T(t, len(levels), len(cps))
}
