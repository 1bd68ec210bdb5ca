// Released under an MIT license. See LICENSE.

//go:build unix

// Package signals forwards terminal interrupts to the evaluator.
package signals

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Notify calls interrupt each time the process receives SIGINT.
// Calling the returned function stops delivery.
func Notify(interrupt func()) (stop func()) {
	c := make(chan os.Signal, 1)
	done := make(chan struct{})

	signal.Notify(c, unix.SIGINT)

	go func() {
		for {
			select {
			case <-c:
				interrupt()
			case <-done:
				return
			}
		}
	}()

	return func() {
		signal.Stop(c)
		close(done)
	}
}
