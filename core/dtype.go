package core

import (
	"fmt"
	"strings"
	"unsafe"
)

// DType identifies the element storage type of a matrix.
type DType uint8

const (
	Byte DType = iota
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	Complex64
	Complex128
	Rational32
	Rational64
	Rational128
	Object
)

// NumDTypes is the number of supported element types.
const NumDTypes = int(Object) + 1

// NoDType is an out-of-range sentinel for errors with no target dtype.
const NoDType = DType(^uint8(0))

var dtypeNames = [NumDTypes]string{
	"byte",
	"int8",
	"int16",
	"int32",
	"int64",
	"float32",
	"float64",
	"complex64",
	"complex128",
	"rational32",
	"rational64",
	"rational128",
	"object",
}

// Complex and rational kinds are stored as two components of the widths
// below, real part (or numerator) first.
var dtypeSizes = [NumDTypes]uintptr{
	unsafe.Sizeof(uint8(0)),
	unsafe.Sizeof(int8(0)),
	unsafe.Sizeof(int16(0)),
	unsafe.Sizeof(int32(0)),
	unsafe.Sizeof(int64(0)),
	unsafe.Sizeof(float32(0)),
	unsafe.Sizeof(float64(0)),
	unsafe.Sizeof([2]float32{}),
	unsafe.Sizeof([2]float64{}),
	unsafe.Sizeof([2]int16{}),
	unsafe.Sizeof([2]int32{}),
	unsafe.Sizeof([2]int64{}),
	unsafe.Sizeof(uintptr(0)), // one opaque object handle
}

// Valid reports whether d is one of the enumerated types.
func (d DType) Valid() bool {
	return int(d) < NumDTypes
}

// Size returns the byte size of one element of this type, or 0 if d is invalid.
func (d DType) Size() uintptr {
	if !d.Valid() {
		return 0
	}
	return dtypeSizes[d]
}

// String returns the canonical lowercase name for the type.
func (d DType) String() string {
	if !d.Valid() {
		return fmt.Sprintf("dtype(%d)", d)
	}
	return dtypeNames[d]
}

// SizeOf is Size with an error for ordinals outside the enumeration.
func SizeOf(d DType) (uintptr, error) {
	if !d.Valid() {
		return 0, invalidDType(d)
	}
	return dtypeSizes[d], nil
}

// NameOf is String with an error for ordinals outside the enumeration.
func NameOf(d DType) (string, error) {
	if !d.Valid() {
		return "", invalidDType(d)
	}
	return dtypeNames[d], nil
}

// ParseDType looks up a dtype by name. Matching is case-insensitive and
// "uint8" is accepted as an alias for byte.
func ParseDType(name string) (DType, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "uint8" {
		return Byte, nil
	}
	for i, s := range dtypeNames {
		if s == n {
			return DType(i), nil
		}
	}
	return NoDType, &TypeConversionError{From: fmt.Sprintf("%q", name), To: NoDType, Reason: "unknown dtype name"}
}

// All returns every valid dtype in ordinal order.
func All() []DType {
	out := make([]DType, NumDTypes)
	for i := range out {
		out[i] = DType(i)
	}
	return out
}

// IsInteger returns true for byte and the signed integer types.
func (d DType) IsInteger() bool {
	return d <= Int64
}

// IsFloat returns true for float32 and float64.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

func (d DType) IsComplex() bool {
	return d == Complex64 || d == Complex128
}

func (d DType) IsRational() bool {
	return d == Rational32 || d == Rational64 || d == Rational128
}

// IsNumeric is true for every valid dtype except Object.
func (d DType) IsNumeric() bool {
	return d.Valid() && d != Object
}
