// Released under an MIT license. See LICENSE.

package store

import (
	"bytes"
	"encoding/binary"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Each arena entry is a 4-byte little-endian length, the bytes, and a
// terminating zero.
const header = 4

// String copies b into the string arena.
func (s *T) String(b []byte) (value.T, error) {
	offset, err := s.append(b)
	if err != nil {
		return value.Nil, err
	}

	return value.NewHandle(value.String, s.id, uint32(offset)), nil
}

// Bytes returns the content of a string or symbol.
// The returned slice must not be modified.
// Anything else will cause a panic.
func (s *T) Bytes(v value.T) []byte {
	k := value.String
	if value.IsHandle(value.Symbol, v) {
		k = value.Symbol
	}

	offset := s.check(k, v, len(s.bytes))
	n := int(binary.LittleEndian.Uint32(s.bytes[offset:]))
	start := offset + header

	return s.bytes[start : start+n : start+n]
}

// Text returns the content of a string or symbol as a Go string.
func (s *T) Text(v value.T) string {
	return string(s.Bytes(v))
}

// Intern returns the symbol for b, creating it if it does not exist.
// Two symbols with the same text are always the same word.
func (s *T) Intern(b []byte) (value.T, error) {
	bucket := int(hash(b) % uint32(len(s.buckets)))

	last := value.Nil
	for p := s.buckets[bucket]; p != value.Nil; p = s.Cdr(p) {
		sym := s.Car(p)
		if bytes.Equal(s.Bytes(sym), b) {
			return sym, nil
		}

		last = p
	}

	offset, err := s.append(b)
	if err != nil {
		return value.Nil, err
	}

	sym := value.NewHandle(value.Symbol, s.id, uint32(offset))

	link, err := s.Cons(sym, value.Nil)
	if err != nil {
		return value.Nil, err
	}

	if last == value.Nil {
		s.buckets[bucket] = link
	} else {
		s.SetCdr(last, link)
	}

	s.symbols++

	return sym, nil
}

// Symbol interns the string name.
func (s *T) Symbol(name string) (value.T, error) {
	return s.Intern([]byte(name))
}

// IsSymbol returns true if v is a symbol in this store.
func (s *T) IsSymbol(v value.T) bool {
	return value.IsHandle(value.Symbol, v) && value.Pool(v) == s.id
}

// IsString returns true if v is a string in this store.
func (s *T) IsString(v value.T) bool {
	return value.IsHandle(value.String, v) && value.Pool(v) == s.id
}

func (s *T) append(b []byte) (int, error) {
	need := header + len(b) + 1

	if len(s.bytes)+need > cap(s.bytes) {
		err := s.reserve(need)
		if err != nil {
			return 0, err
		}
	}

	offset := len(s.bytes)

	s.bytes = binary.LittleEndian.AppendUint32(s.bytes, uint32(len(b)))
	s.bytes = append(s.bytes, b...)
	s.bytes = append(s.bytes, 0)

	return offset, nil
}

func (s *T) reserve(need int) error {
	limit := s.bytesLimit
	if limit <= 0 || limit > maxBytes {
		limit = maxBytes
	}

	used := len(s.bytes)
	if used+need > limit {
		return condition.New(condition.ErrCapacity,
			"string arena is full (%d of %d bytes)", used, limit)
	}

	n := 2 * cap(s.bytes)
	if n < used+need {
		n = used + need
	}

	if n > limit {
		n = limit
	}

	grown := make([]byte, used, n)
	copy(grown, s.bytes)

	s.bytes = grown

	return nil
}

// hash is the shift-and-add string hash used to pick a symbol bucket.
func hash(b []byte) uint32 {
	h := uint32(0)
	for _, c := range b {
		h = (h << 5) + uint32(c)
	}

	return h
}
