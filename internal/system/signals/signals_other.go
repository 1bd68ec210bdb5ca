// Released under an MIT license. See LICENSE.

//go:build !unix

// Package signals forwards terminal interrupts to the evaluator.
package signals

// Notify does nothing on this platform.
func Notify(interrupt func()) (stop func()) {
	return func() {}
}
