// Released under an MIT license. See LICENSE.

//go:build !unix

package store

func allocate(size int) ([]byte, error) {
	if size == 0 {
		size = 1
	}

	return make([]byte, size), nil
}

func release(_ []byte) {}
