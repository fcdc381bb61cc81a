package richtext

import "fmt"

// SealedMutationError describes an attempt to mutate a Style after Seal
// has been called on its builder. The style package's Builder panics
// with its own style.SealedMutationError; this type is raised only by
// panicSealed, which nothing in this package calls. Such a mutation is a
// programmer error, not a recoverable condition: a sealed Style is
// shared across Style Runs and possibly across goroutines laying out
// different Text Blocks, so allowing a late mutation would silently
// corrupt layouts that already read the old value.
type SealedMutationError struct {
	Field string
}

func (e *SealedMutationError) Error() string {
	return fmt.Sprintf("richtext: mutation of sealed style field %q", e.Field)
}

func panicSealed(field string) {
	panic(&SealedMutationError{Field: field})
}

// IndexOutOfRangeError is returned by FontRun.Split and TextBlock.CaretInfo
// when an index falls outside the valid range for the buffer or run
// being addressed.
type IndexOutOfRangeError struct {
	Op        string
	Index     int32
	Low, High int32
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("richtext: %s: index %d out of range [%d, %d)", e.Op, e.Index, e.Low, e.High)
}

// MalformedStyleCoverageError is returned at layout entry when the
// Style Run Table does not exactly tile [0, CB.Len()) without gaps or
// overlaps. It is a caller contract violation, not a transient
// condition.
type MalformedStyleCoverageError struct {
	Reason string
	At     int32
}

func (e *MalformedStyleCoverageError) Error() string {
	return fmt.Sprintf("richtext: malformed style coverage at %d: %s", e.At, e.Reason)
}
