// Released under an MIT license. See LICENSE.

// Package value provides the NaN-boxed word every Scheme value is
// represented by.
//
// A word is an IEEE-754 double unless its exponent is all ones. Inside that
// reserved region the sign bit and a 4-bit subtype select the family:
//
//	s eeeeeeeeeee tttt pppppppppppppppp dddddddddddddddddddddddddddddddd
//
//	Double     any   not all ones   IEEE-754 double
//	Special    any   all ones       tttt = 0000 or 1000 (infinities, NaNs)
//	Pointer    1     all ones       tttt = 0001..0111, 48-bit address
//	Handle     1     all ones       tttt = 1001..1110, pool id, offset
//	Box        0     all ones       tttt = 0001..0111, 1001..1111, aux, data
//	Nil        1     all ones       tttt = 1111, every other bit set
//
// The table below is the only place the layout is written down. All
// constructors and predicates are derived from it.
package value

import (
	"math"
)

// T (value) is a tagged 64-bit word.
type T uint64

// Kind is the shape of a word.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindDouble
	KindSpecial
	KindPointer
	KindHandle
	KindBox
	KindNil
)

//nolint:gochecknoglobals
var kinds = [...]string{
	KindInvalid: "invalid",
	KindDouble:  "double",
	KindSpecial: "special",
	KindPointer: "pointer",
	KindHandle:  "handle",
	KindBox:     "box",
	KindNil:     "nil",
}

func (k Kind) String() string {
	return kinds[k]
}

const (
	signBit      = 0x8000000000000000
	exponentMask = 0x7FF0000000000000
	subtypeMask  = 0x000F000000000000
	auxMask      = 0x0000FFFF00000000
	dataMask     = 0x00000000FFFFFFFF
	addressMask  = 0x0000FFFFFFFFFFFF

	subtypeShift = 48
	auxShift     = 32

	// Prefixes for the two halves of the reserved region.
	pointerPrefix = signBit | exponentMask
	boxPrefix     = exponentMask
	prefixMask    = signBit | exponentMask
)

// family is the region a (sign, subtype) pair belongs to.
//
//nolint:gochecknoglobals
var family = [2][16]Kind{
	// Sign bit clear.
	{
		KindSpecial, KindBox, KindBox, KindBox, KindBox, KindBox, KindBox, KindBox,
		KindSpecial, KindBox, KindBox, KindBox, KindBox, KindBox, KindBox, KindBox,
	},
	// Sign bit set.
	{
		KindSpecial, KindPointer, KindPointer, KindPointer,
		KindPointer, KindPointer, KindPointer, KindPointer,
		KindSpecial, KindHandle, KindHandle, KindHandle,
		KindHandle, KindHandle, KindHandle, KindInvalid,
	},
}

// Fixed words.
const (
	Nil T = 0xFFFFFFFFFFFFFFFF

	PositiveInfinity T = 0x7FF0000000000000
	NegativeInfinity T = 0xFFF0000000000000
	SignallingNaN    T = 0x7FF0000000000001
	QuietNaN         T = 0x7FF8000000000001

	False = T(boxPrefix | uint64(Boolean)<<subtypeShift)
	True  = T(boxPrefix | uint64(Boolean)<<subtypeShift | 1)
)

// Classify returns the shape of the word v.
func Classify(v T) Kind {
	if v == Nil {
		return KindNil
	}

	if uint64(v)&exponentMask != exponentMask {
		return KindDouble
	}

	return family[uint64(v)>>63][subtype(v)]
}

// Equal returns true if a and b are the same word.
func Equal(a, b T) bool {
	return a == b
}

// IsDouble returns true if v is an ordinary double.
func IsDouble(v T) bool {
	return uint64(v)&exponentMask != exponentMask
}

// IsSpecial returns true if v is an infinity or a NaN.
func IsSpecial(v T) bool {
	return v != Nil && uint64(v)&exponentMask == exponentMask &&
		family[uint64(v)>>63][subtype(v)] == KindSpecial
}

// IsNil returns true if v is the empty list.
func IsNil(v T) bool {
	return v == Nil
}

// IsTruthy returns true for everything except #f.
func IsTruthy(v T) bool {
	return v != False
}

// IsNumber returns true if Number can convert v.
func IsNumber(v T) bool {
	return IsDouble(v) || IsSpecial(v) || IsBox(Integer, v) || IsBox(Float32, v)
}

// Float creates a double. NaNs collapse to QuietNaN so that no payload can
// reach the tagged region.
func Float(f float64) T {
	if math.IsNaN(f) {
		return QuietNaN
	}

	return T(math.Float64bits(f))
}

// Number returns the numeric value of v as a float64.
// Anything that is not a number panics.
func Number(v T) float64 {
	switch {
	case IsDouble(v):
		return math.Float64frombits(uint64(v))
	case IsSpecial(v):
		switch v {
		case PositiveInfinity:
			return math.Inf(1)
		case NegativeInfinity:
			return math.Inf(-1)
		}

		return math.NaN()
	case IsBox(Integer, v):
		return float64(IntOf(v))
	case IsBox(Float32, v):
		return float64(SingleOf(v))
	}

	panic("not a number")
}

func subtype(v T) uint8 {
	return uint8((uint64(v) & subtypeMask) >> subtypeShift)
}
