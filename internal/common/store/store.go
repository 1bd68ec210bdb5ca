// Released under an MIT license. See LICENSE.

// Package store provides the pools every handle points into: the cons pool,
// the string arena, the symbol table and the procedure pool. A store also
// owns the raw buffers addressed by pointer values.
//
// Pools are append-only. Nothing is ever freed while the store is alive;
// there is no garbage collector.
package store

import (
	"math"
	"sync/atomic"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

// Config sizes the pools of a new store.
type Config struct {
	Cons       int `yaml:"cons"`        // Initial cons pool size in pairs.
	ConsLimit  int `yaml:"cons-limit"`  // Maximum pairs. Zero means no limit.
	Bytes      int `yaml:"bytes"`       // Initial string arena size.
	BytesLimit int `yaml:"bytes-limit"` // Maximum arena size. Zero means no limit.
	Symbols    int `yaml:"symbols"`     // Symbol table buckets.
}

// Stats describes how much of each pool is in use.
type Stats struct {
	Pairs        int
	PairCapacity int
	Bytes        int
	ByteCapacity int
	Symbols      int
	Procedures   int
	Buffers      int
}

// T (store) holds all of the pools for one interpreter.
type T struct {
	id uint16

	cons      []value.T
	pairs     int
	consLimit int

	bytes      []byte
	bytesLimit int

	buckets []value.T
	symbols int

	procedures []*Procedure

	buffers map[uintptr][]byte
}

const (
	maxPairs  = 1 << 30
	maxBytes  = 1<<31 - 1
	maxOffset = 1<<31 - 1
)

// Pool ids are never reused. Handles carry a 16-bit pool id, so a process can
// create at most 65535 stores; New fails after that.
//
//nolint:gochecknoglobals
var ids uint32

// Defaults returns the configuration used when none is provided.
func Defaults() Config {
	return Config{
		Cons:    4096,
		Bytes:   64 << 10,
		Symbols: 1021,
	}
}

// New creates a store with pools sized according to c.
func New(c Config) (*T, error) {
	id, err := next()
	if err != nil {
		return nil, err
	}

	d := Defaults()

	if c.Cons <= 0 {
		c.Cons = d.Cons
	}

	if c.ConsLimit > 0 && c.Cons > c.ConsLimit {
		c.Cons = c.ConsLimit
	}

	if c.Bytes <= 0 {
		c.Bytes = d.Bytes
	}

	if c.BytesLimit > 0 && c.Bytes > c.BytesLimit {
		c.Bytes = c.BytesLimit
	}

	if c.Symbols <= 0 {
		c.Symbols = d.Symbols
	}

	s := &T{
		id:         id,
		cons:       make([]value.T, 2*c.Cons),
		consLimit:  c.ConsLimit,
		bytes:      make([]byte, 0, c.Bytes),
		bytesLimit: c.BytesLimit,
		buckets:    make([]value.T, c.Symbols),
		buffers:    map[uintptr][]byte{},
	}

	fill(s.cons)
	fill(s.buckets)

	return s, nil
}

// ID returns the pool id carried by every handle this store issues.
func (s *T) ID() uint16 {
	return s.id
}

// Stats returns current pool usage.
func (s *T) Stats() Stats {
	return Stats{
		Pairs:        s.pairs,
		PairCapacity: len(s.cons) / 2,
		Bytes:        len(s.bytes),
		ByteCapacity: cap(s.bytes),
		Symbols:      s.symbols,
		Procedures:   len(s.procedures),
		Buffers:      len(s.buffers),
	}
}

// Owns returns true if v is a handle issued by this store.
func (s *T) Owns(v value.T) bool {
	return value.IsAnyHandle(v) && value.Pool(v) == s.id
}

func (s *T) check(k value.HandleKind, v value.T, limit int) int {
	if !value.IsHandle(k, v) {
		condition.Raise(condition.ErrType, "expected %s, got %s",
			value.Name(value.NewHandle(k, 0, 0)), value.Name(v))
	}

	if value.Pool(v) != s.id {
		condition.Raise(condition.ErrForeign, "pool %d is not pool %d", value.Pool(v), s.id)
	}

	offset := int(value.Offset(v))
	if offset >= limit {
		condition.Raise(condition.ErrRange, "offset %d is past the end of the pool", offset)
	}

	return offset
}

func next() (uint16, error) {
	for {
		id := atomic.LoadUint32(&ids)
		if id >= math.MaxUint16 {
			return 0, condition.New(condition.ErrCapacity, "no pool ids left after %d stores", id)
		}

		if atomic.CompareAndSwapUint32(&ids, id, id+1) {
			return uint16(id + 1), nil
		}
	}
}

func fill(vs []value.T) {
	for i := range vs {
		vs[i] = value.Nil
	}
}
