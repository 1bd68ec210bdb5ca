// Released under an MIT license. See LICENSE.

package value

import (
	"math"

	"github.com/michaelmacinnis/nanscheme/internal/common/condition"
)

// PointerKind is the subtype of a Pointer word.
type PointerKind uint8

// HandleKind is the subtype of a Handle word.
type HandleKind uint8

// BoxKind is the subtype of a Box word.
type BoxKind uint8

const (
	Buffer PointerKind = 1
)

const (
	Cons      HandleKind = 9
	Symbol    HandleKind = 10
	String    HandleKind = 11
	Procedure HandleKind = 12
)

const (
	Boolean   BoxKind = 1
	Character BoxKind = 2
	Integer   BoxKind = 3
	Float32   BoxKind = 4
	Error     BoxKind = 14
)

// NewPointer creates a Pointer word for an externally owned address.
// Addresses that need more than 48 bits are rejected, never truncated.
func NewPointer(k PointerKind, addr uintptr) (T, error) {
	if uint8(k) > 0xF || family[1][k] != KindPointer {
		return Nil, condition.New(condition.ErrAddress, "invalid pointer subtype %d", k)
	}

	a := uint64(addr)
	if a&^addressMask != 0 {
		return Nil, condition.New(condition.ErrAddress, "address %#x needs more than 48 bits", a)
	}

	return T(pointerPrefix | uint64(k)<<subtypeShift | a), nil
}

// NewHandle creates a Handle word. The subtype must be a handle subtype.
func NewHandle(k HandleKind, pool uint16, offset uint32) T {
	if uint8(k) > 0xF || family[1][k] != KindHandle {
		panic("invalid handle subtype")
	}

	return T(pointerPrefix | uint64(k)<<subtypeShift | uint64(pool)<<auxShift | uint64(offset))
}

// NewBox creates a Box word. The subtype must be a box subtype.
func NewBox(k BoxKind, aux uint16, data uint32) T {
	if uint8(k) > 0xF || family[0][k] != KindBox {
		panic("invalid box subtype")
	}

	return T(boxPrefix | uint64(k)<<subtypeShift | uint64(aux)<<auxShift | uint64(data))
}

// IsPointer returns true if v is a Pointer of any subtype.
func IsPointer(v T) bool {
	return Classify(v) == KindPointer
}

// IsPointerOf returns true if v is a Pointer with subtype k.
func IsPointerOf(k PointerKind, v T) bool {
	return uint64(v)&(prefixMask|subtypeMask) == pointerPrefix|uint64(k)<<subtypeShift &&
		IsPointer(v)
}

// IsAnyHandle returns true if v is a Handle of any subtype.
func IsAnyHandle(v T) bool {
	return Classify(v) == KindHandle
}

// IsHandle returns true if v is a Handle with subtype k.
func IsHandle(k HandleKind, v T) bool {
	return v != Nil && uint64(v)&(prefixMask|subtypeMask) == pointerPrefix|uint64(k)<<subtypeShift
}

// IsAnyBox returns true if v is a Box of any subtype.
func IsAnyBox(v T) bool {
	return Classify(v) == KindBox
}

// IsBox returns true if v is a Box with subtype k.
func IsBox(k BoxKind, v T) bool {
	return uint64(v)&(prefixMask|subtypeMask) == boxPrefix|uint64(k)<<subtypeShift
}

// Accessors. None of these check the shape of v.

// Addr returns the address carried by a Pointer.
func Addr(v T) uintptr {
	return uintptr(uint64(v) & addressMask)
}

// PointerOf returns the subtype of a Pointer.
func PointerOf(v T) PointerKind {
	return PointerKind(subtype(v))
}

// HandleOf returns the subtype of a Handle.
func HandleOf(v T) HandleKind {
	return HandleKind(subtype(v))
}

// BoxOf returns the subtype of a Box.
func BoxOf(v T) BoxKind {
	return BoxKind(subtype(v))
}

// Pool returns the pool id of a Handle.
func Pool(v T) uint16 {
	return uint16((uint64(v) & auxMask) >> auxShift)
}

// Offset returns the offset of a Handle.
func Offset(v T) uint32 {
	return uint32(uint64(v) & dataMask)
}

// Aux returns the auxiliary field of a Box.
func Aux(v T) uint16 {
	return uint16((uint64(v) & auxMask) >> auxShift)
}

// Data returns the data field of a Box.
func Data(v T) uint32 {
	return uint32(uint64(v) & dataMask)
}

// Box constructors and accessors.

// Bool returns True or False.
func Bool(b bool) T {
	if b {
		return True
	}

	return False
}

// Char creates a character.
func Char(r rune) T {
	return NewBox(Character, 0, uint32(r))
}

// Rune returns the rune stored in a character.
func Rune(v T) rune {
	return rune(Data(v))
}

// Int creates a small integer.
func Int(i int32) T {
	return NewBox(Integer, 0, uint32(i))
}

// IntOf returns the integer stored in a small integer.
func IntOf(v T) int32 {
	return int32(Data(v))
}

// Single creates a 32-bit float.
func Single(f float32) T {
	return NewBox(Float32, 0, math.Float32bits(f))
}

// SingleOf returns the float stored in a 32-bit float.
func SingleOf(v T) float32 {
	return math.Float32frombits(Data(v))
}

// Fail creates an error code word.
func Fail(class condition.Class, code condition.Code) T {
	return NewBox(Error, uint16(class), uint32(code))
}

// Condition returns the class and code of an error word.
func Condition(v T) (condition.Class, condition.Code) {
	return condition.Class(Aux(v)), condition.Code(Data(v))
}

// Name returns a short type name for v.
func Name(v T) string {
	switch Classify(v) {
	case KindDouble, KindSpecial:
		return "double"
	case KindNil:
		return "null"
	case KindPointer:
		return "buffer"
	case KindHandle:
		switch HandleOf(v) {
		case Cons:
			return "pair"
		case Symbol:
			return "symbol"
		case String:
			return "string"
		case Procedure:
			return "procedure"
		}
	case KindBox:
		switch BoxOf(v) {
		case Boolean:
			return "boolean"
		case Character:
			return "character"
		case Integer:
			return "integer"
		case Float32:
			return "float"
		case Error:
			return "error"
		}
	case KindInvalid:
	}

	return "invalid"
}
