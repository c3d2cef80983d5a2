// Package tester holds the few assertion helpers shared by tests that do
// not pull in testify. Each helper stops the test on failure.
package tester

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func describe(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	if format, ok := msgAndArgs[0].(string); ok && len(msgAndArgs) > 1 {
		return fmt.Sprintf(format, msgAndArgs[1:]...) + ": "
	}
	return fmt.Sprint(msgAndArgs[0]) + ": "
}

// Eq asserts that got equals want using reflect.DeepEqual.
func Eq[T any](t testing.TB, got, want T, msgAndArgs ...any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%sgot=%v want=%v", describe(msgAndArgs), got, want)
	}
}

// True asserts that cond holds.
func True(t testing.TB, cond bool, msgAndArgs ...any) {
	t.Helper()
	if !cond {
		t.Fatalf("%sexpected condition to be true", describe(msgAndArgs))
	}
}

// NoErr asserts that err is nil.
func NoErr(t testing.TB, err error, msgAndArgs ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf("%sunexpected error: %v", describe(msgAndArgs), err)
	}
}

// ErrIs asserts that err matches target per errors.Is.
func ErrIs(t testing.TB, err, target error, msgAndArgs ...any) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("%sgot error %v, want %v", describe(msgAndArgs), err, target)
	}
}
