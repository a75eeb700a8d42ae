package assign

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Assign. All three are matched with
// errors.Is; Assign never returns an error that doesn't wrap one of
// these.
var (
	// ErrInvalidInput is returned for a malformed call. The only input
	// check Assign makes is for an empty endpoint roster; the length of
	// affinities is not checked against any expected count. It is never
	// returned for affinity to an unknown host — that is a normal
	// consequence of a narrow endpoint roster, not an error.
	ErrInvalidInput = errors.New("assign: invalid input")

	// ErrCancelled is returned when the caller's context was done while
	// Assign was still running. Any partial work is discarded; Assign
	// never returns a partial Result alongside this error.
	ErrCancelled = errors.New("assign: cancelled")

	// ErrInternal indicates a broken invariant: Assign's final check found
	// a total number of placed partitions different from len(affinities).
	// It should be unreachable; seeing it means a bug in this package, not
	// in the caller's input.
	ErrInternal = errors.New("assign: internal error")
)

// ctxCancelErr wraps ErrCancelled with the stage name that observed it,
// matching the teacher's "%s: %w" wrapping idiom.
func ctxCancelErr(stage string) error {
	return fmt.Errorf("%s: %w", stage, ErrCancelled)
}
