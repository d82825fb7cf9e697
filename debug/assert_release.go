//go:build !debug

// Package debug provides assertions that are enabled with the debug
// build tag and compile to no-ops otherwise.
//
// Not idiomatic Go, but invaluable when the failure mode on hardware is
// a silent lockup.
package debug

// Guard assertions that could panic themselves with `if debug.Enabled
// {...}`, otherwise they can't be removed in release builds.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
