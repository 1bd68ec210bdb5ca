// Released under an MIT license. See LICENSE.

//go:build unix

package store

import (
	"golang.org/x/sys/unix"
)

func allocate(size int) ([]byte, error) {
	if size == 0 {
		size = 1
	}

	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func release(b []byte) {
	_ = unix.Munmap(b)
}
