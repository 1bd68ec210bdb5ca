// Released under an MIT license. See LICENSE.

package store

import (
	"unsafe"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Buffer allocates size bytes of memory outside the pools, sets each byte
// to fill, and returns a pointer value for it.
func (s *T) Buffer(size int, fill byte) (value.T, error) {
	if size < 0 {
		return value.Nil, condition.New(condition.ErrRange, "negative buffer size %d", size)
	}

	b, err := allocate(size)
	if err != nil {
		return value.Nil, condition.New(condition.ErrCapacity, "cannot allocate %d bytes: %v", size, err)
	}

	for i := range b {
		b[i] = fill
	}

	addr := uintptr(unsafe.Pointer(&b[0]))

	v, err := value.NewPointer(value.Buffer, addr)
	if err != nil {
		release(b)

		return value.Nil, err
	}

	s.buffers[addr] = b[:size]

	return v, nil
}

// BufferBytes returns the memory referenced by the pointer value v.
// If v is not a buffer from this store, this function will panic.
func (s *T) BufferBytes(v value.T) []byte {
	if !value.IsPointerOf(value.Buffer, v) {
		condition.Raise(condition.ErrType, "expected buffer, got %s", value.Name(v))
	}

	b, ok := s.buffers[value.Addr(v)]
	if !ok {
		condition.Raise(condition.ErrForeign, "unknown buffer %#x", value.Addr(v))
	}

	return b
}

// IsBuffer returns true if v is a buffer owned by this store.
func (s *T) IsBuffer(v value.T) bool {
	if !value.IsPointerOf(value.Buffer, v) {
		return false
	}

	_, ok := s.buffers[value.Addr(v)]

	return ok
}

// Free releases every buffer. Pointer values for them become invalid.
// The pools themselves are left to Go's collector when the store is dropped.
func (s *T) Free() {
	for addr, b := range s.buffers {
		release(b[:cap(b)])
		delete(s.buffers, addr)
	}
}
