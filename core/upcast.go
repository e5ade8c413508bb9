package core

import "fmt"

// Short aliases keep the table readable.
const (
	bt   = Byte
	i8   = Int8
	i16  = Int16
	i32  = Int32
	i64  = Int64
	f32  = Float32
	f64  = Float64
	c64  = Complex64
	c128 = Complex128
	r32  = Rational32
	r64  = Rational64
	r128 = Rational128
	obj  = Object
)

// upcastTable[a][b] is the dtype both operands of a binary operation are
// converted to. The table is symmetric. Rational mixed with float always
// yields float64: rational precision is not kept once floating point is
// involved.
var upcastTable = [NumDTypes][NumDTypes]DType{
	/* byte        */ {bt, i16, i16, i32, i64, f32, f64, c64, c128, r32, r64, r128, obj},
	/* int8        */ {i16, i8, i16, i32, i64, f32, f64, c64, c128, r32, r64, r128, obj},
	/* int16       */ {i16, i16, i16, i32, i64, f32, f64, c64, c128, r32, r64, r128, obj},
	/* int32       */ {i32, i32, i32, i32, i64, f32, f64, c64, c128, r32, r64, r128, obj},
	/* int64       */ {i64, i64, i64, i64, i64, f32, f64, c64, c128, r32, r64, r128, obj},
	/* float32     */ {f32, f32, f32, f32, f32, f32, f64, c64, c128, f64, f64, f64, obj},
	/* float64     */ {f64, f64, f64, f64, f64, f64, f64, c128, c128, f64, f64, f64, obj},
	/* complex64   */ {c64, c64, c64, c64, c64, c64, c128, c64, c128, c64, c64, c128, obj},
	/* complex128  */ {c128, c128, c128, c128, c128, c128, c128, c128, c128, c128, c128, c128, obj},
	/* rational32  */ {r32, r32, r32, r32, r32, f64, f64, c64, c128, r32, r64, r128, obj},
	/* rational64  */ {r64, r64, r64, r64, r64, f64, f64, c64, c128, r64, r64, r128, obj},
	/* rational128 */ {r128, r128, r128, r128, r128, f64, f64, c128, c128, r128, r128, r128, obj},
	/* object      */ {obj, obj, obj, obj, obj, obj, obj, obj, obj, obj, obj, obj, obj},
}

// Upcast returns the dtype a binary operation between a and b runs in.
// It panics if either dtype is invalid; use LookupUpcast for unchecked input.
func Upcast(a, b DType) DType {
	if !a.Valid() || !b.Valid() {
		panic(fmt.Sprintf("core: upcast of invalid dtypes %v, %v", a, b))
	}
	return upcastTable[a][b]
}

// LookupUpcast is Upcast returning a TypeConversionError for invalid dtypes.
func LookupUpcast(a, b DType) (DType, error) {
	if !a.Valid() {
		return NoDType, invalidDType(a)
	}
	if !b.Valid() {
		return NoDType, invalidDType(b)
	}
	return upcastTable[a][b], nil
}
