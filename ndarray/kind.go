// SPDX-License-Identifier: MIT

package ndarray

import (
	"reflect"

	"golang.org/x/exp/constraints"
)

// Numeric is the element constraint of Array: every integer and
// floating-point type, including named types derived from them.
type Numeric interface {
	constraints.Integer | constraints.Float
}

// Kind is the runtime tag of an element type. It is what untyped
// introspection (KindOf) reports and what type-mismatch errors name.
type Kind uint8

// Element kinds. Invalid marks anything that is not a numeric leaf.
const (
	Invalid Kind = iota
	Int
	Int8
	Int16
	Int32
	Int64
	Uint
	Uint8
	Uint16
	Uint32
	Uint64
	Uintptr
	Float32
	Float64
)

var kindNames = [...]string{
	Invalid: "invalid",
	Int:     "int",
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint:    "uint",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Uintptr: "uintptr",
	Float32: "float32",
	Float64: "float64",
}

// String returns the Go name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}

	return kindNames[Invalid]
}

// IsFloat reports whether the kind can hold the NaN missing-value marker.
func (k Kind) IsFloat() bool { return k == Float32 || k == Float64 }

// IsSigned reports whether the kind is a signed integer.
func (k Kind) IsSigned() bool { return k >= Int && k <= Int64 }

// IsUnsigned reports whether the kind is an unsigned integer.
func (k Kind) IsUnsigned() bool { return k >= Uint && k <= Uintptr }

// Bits returns the storage width of the kind in bits (platform width for
// Int, Uint and Uintptr); 0 for Invalid.
func (k Kind) Bits() int {
	switch k {
	case Int8, Uint8:
		return 8
	case Int16, Uint16:
		return 16
	case Int32, Uint32, Float32:
		return 32
	case Int64, Uint64, Float64:
		return 64
	case Int, Uint, Uintptr:
		return 32 << (^uint(0) >> 63)
	default:
		return 0
	}
}

// kindFromReflect maps a reflect.Kind onto the element kinds.
func kindFromReflect(k reflect.Kind) Kind {
	switch k {
	case reflect.Int:
		return Int
	case reflect.Int8:
		return Int8
	case reflect.Int16:
		return Int16
	case reflect.Int32:
		return Int32
	case reflect.Int64:
		return Int64
	case reflect.Uint:
		return Uint
	case reflect.Uint8:
		return Uint8
	case reflect.Uint16:
		return Uint16
	case reflect.Uint32:
		return Uint32
	case reflect.Uint64:
		return Uint64
	case reflect.Uintptr:
		return Uintptr
	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64
	default:
		return Invalid
	}
}

// KindFor returns the kind of the type parameter T.
// Named types report their underlying kind.
func KindFor[T Numeric]() Kind {
	var zero T

	return kindFromReflect(reflect.TypeOf(zero).Kind())
}

// isNaN reports whether v is the missing-value marker. Always false for
// integer kinds.
func isNaN[T Numeric](v T) bool { return v != v }
