package style

import "fmt"

// SealedMutationError is the panic value raised when a Builder setter
// is called after Seal. It is a programmer error, not a recoverable
// condition: the Style may already be shared by Style Runs (and thus
// by Text Blocks on other goroutines), so silently ignoring the
// mutation would be worse than failing loudly.
type SealedMutationError struct {
	Field string
}

func (e *SealedMutationError) Error() string {
	return fmt.Sprintf("style: mutation of sealed field %q", e.Field)
}

func panicSealed(field string) {
	panic(&SealedMutationError{Field: field})
}
