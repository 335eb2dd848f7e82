package testutil

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/mitchelldurbincs/GridTactics/internal/game/core"
	"github.com/rs/zerolog"
)

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertInvariantPanic asserts that f panics with an error wrapping
// core.ErrInvariantViolation. Panics with any other value fail the test.
func AssertInvariantPanic(t testing.TB, f func(), msgAndArgs ...interface{}) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("expected an invariant panic but none occurred %v", msgAndArgs)
			return
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, core.ErrInvariantViolation) {
			t.Errorf("expected a panic wrapping %v, got %v %v", core.ErrInvariantViolation, r, msgAndArgs)
		}
	}()
	f()
}
