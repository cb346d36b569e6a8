package types

import (
	"strconv"
	"strings"
)

// DataType is the interface for all source-level data types.
type DataType interface {
	// Repr returns a string representing the data type
	Repr() string

	// equals takes in another DataType returns if the two data types are
	// exactly equal.
	equals(other DataType) bool
}

// Equals returns whether two data types are equal.  Tuples of one element are
// equal to their element type and empty tuples are equal to `()`.  A nil type
// is only equal to another nil type.
func Equals(a, b DataType) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	return Simplify(a).equals(Simplify(b))
}

// Simplify collapses single-element tuples and converts empty tuples to the
// unit type.  Other types are returned as is.
func Simplify(dt DataType) DataType {
	if tt, ok := dt.(*TupleType); ok {
		switch len(tt.ElemTypes) {
		case 0:
			return PrimKindUnit
		case 1:
			return Simplify(tt.ElemTypes[0])
		}
	}

	return dt
}

// -----------------------------------------------------------------------------

// PrimType represents a primitive type such as an `i32` or a `bool`.  Its value
// must be one of the enumerated primitive kinds below
type PrimType uint

// Enumeration of primitive types
const (
	PrimKindU8 PrimType = iota
	PrimKindU16
	PrimKindU32
	PrimKindU64
	PrimKindI8
	PrimKindI16
	PrimKindI32
	PrimKindI64
	PrimKindF32
	PrimKindF64
	PrimKindBool
	PrimKindUnit  // void
	PrimKindNever // `!`
)

func (pt PrimType) equals(other DataType) bool {
	if opt, ok := other.(PrimType); ok {
		return pt == opt
	}

	return false
}

var primNames = [...]string{
	PrimKindU8:    "u8",
	PrimKindU16:   "u16",
	PrimKindU32:   "u32",
	PrimKindU64:   "u64",
	PrimKindI8:    "i8",
	PrimKindI16:   "i16",
	PrimKindI32:   "i32",
	PrimKindI64:   "i64",
	PrimKindF32:   "f32",
	PrimKindF64:   "f64",
	PrimKindBool:  "bool",
	PrimKindUnit:  "()",
	PrimKindNever: "!",
}

// Repr of a primitive type is just its corresponding token value
func (pt PrimType) Repr() string {
	if int(pt) < len(primNames) {
		return primNames[pt]
	}

	return "<invalid>"
}

// IsInteger returns whether the primitive type is an integer type.
func (pt PrimType) IsInteger() bool {
	return pt <= PrimKindI64
}

// IsSigned returns whether the primitive type is a signed integer type.
func (pt PrimType) IsSigned() bool {
	return PrimKindI8 <= pt && pt <= PrimKindI64
}

// IsFloat returns whether the primitive type is a floating point type.
func (pt PrimType) IsFloat() bool {
	return pt == PrimKindF32 || pt == PrimKindF64
}

// BitSize returns the size of the primitive type in bits.  Unit and never have
// a size of zero.
func (pt PrimType) BitSize() int {
	switch pt {
	case PrimKindU8, PrimKindI8:
		return 8
	case PrimKindU16, PrimKindI16:
		return 16
	case PrimKindU32, PrimKindI32, PrimKindF32:
		return 32
	case PrimKindU64, PrimKindI64, PrimKindF64:
		return 64
	case PrimKindBool:
		return 1
	default:
		return 0
	}
}

// -----------------------------------------------------------------------------

// ArrayType represents a fixed-length array type: `[N]T`.
type ArrayType struct {
	ElemType DataType
	Len      int
}

func (at *ArrayType) equals(other DataType) bool {
	if oat, ok := other.(*ArrayType); ok {
		return at.Len == oat.Len && Equals(at.ElemType, oat.ElemType)
	}

	return false
}

func (at *ArrayType) Repr() string {
	return "[" + strconv.Itoa(at.Len) + "]" + at.ElemType.Repr()
}

// TupleType represents a tuple type: `(T1, T2, ...)`.
type TupleType struct {
	ElemTypes []DataType
}

func (tt *TupleType) equals(other DataType) bool {
	if ott, ok := other.(*TupleType); ok {
		if len(tt.ElemTypes) != len(ott.ElemTypes) {
			return false
		}

		for i, elem := range tt.ElemTypes {
			if !Equals(elem, ott.ElemTypes[i]) {
				return false
			}
		}

		return true
	}

	return false
}

func (tt *TupleType) Repr() string {
	elemReprs := make([]string, len(tt.ElemTypes))
	for i, elem := range tt.ElemTypes {
		elemReprs[i] = elem.Repr()
	}

	return "(" + strings.Join(elemReprs, ", ") + ")"
}

// PointerType represents one level of indirection.  References (`&T` and
// `&mut T`) and raw pointers (`*T`) are both pointer types; a type with N
// levels of indirection is N nested pointer types.
type PointerType struct {
	ElemType DataType

	// Ref indicates whether this is a reference as opposed to a raw pointer.
	Ref bool

	// Mutable indicates whether the pointed-to value can be mutated through
	// this pointer.
	Mutable bool
}

func (pt *PointerType) equals(other DataType) bool {
	if opt, ok := other.(*PointerType); ok {
		return pt.Ref == opt.Ref && pt.Mutable == opt.Mutable && Equals(pt.ElemType, opt.ElemType)
	}

	return false
}

func (pt *PointerType) Repr() string {
	switch {
	case pt.Ref && pt.Mutable:
		return "&mut " + pt.ElemType.Repr()
	case pt.Ref:
		return "&" + pt.ElemType.Repr()
	default:
		return "*" + pt.ElemType.Repr()
	}
}

// StructType is a reference to a named struct definition.
type StructType struct {
	Name string
}

func (st *StructType) equals(other DataType) bool {
	if ost, ok := other.(*StructType); ok {
		return st.Name == ost.Name
	}

	return false
}

func (st *StructType) Repr() string {
	return st.Name
}

// EnumType is a reference to a named enum definition.
type EnumType struct {
	Name string
}

func (et *EnumType) equals(other DataType) bool {
	if oet, ok := other.(*EnumType); ok {
		return et.Name == oet.Name
	}

	return false
}

func (et *EnumType) Repr() string {
	return et.Name
}

// IsEnum returns whether a data type is an enum type.
func IsEnum(dt DataType) bool {
	_, ok := Simplify(dt).(*EnumType)
	return ok
}

// -----------------------------------------------------------------------------

// IsComposite returns whether a data type is a composite type: an array, a
// tuple of two or more elements, or a struct.
func IsComposite(dt DataType) bool {
	switch Simplify(dt).(type) {
	case *ArrayType, *TupleType, *StructType:
		return true
	default:
		return false
	}
}

// IsVoid returns whether a data type has no value: unit, never, or an empty
// tuple.
func IsVoid(dt DataType) bool {
	if pt, ok := Simplify(dt).(PrimType); ok {
		return pt == PrimKindUnit || pt == PrimKindNever
	}

	return false
}

// IsNumeric returns whether a data type is an integer or floating point type.
func IsNumeric(dt DataType) bool {
	if pt, ok := Simplify(dt).(PrimType); ok {
		return pt.IsInteger() || pt.IsFloat()
	}

	return false
}

// IsIntegral returns whether a data type is an integer type.
func IsIntegral(dt DataType) bool {
	if pt, ok := Simplify(dt).(PrimType); ok {
		return pt.IsInteger()
	}

	return false
}

// IsFloating returns whether a data type is a floating point type.
func IsFloating(dt DataType) bool {
	if pt, ok := Simplify(dt).(PrimType); ok {
		return pt.IsFloat()
	}

	return false
}

// IsBool returns whether a data type is `bool`.
func IsBool(dt DataType) bool {
	return Equals(dt, PrimKindBool)
}

// Repr returns the representation of a possibly nil data type.
func Repr(dt DataType) string {
	if dt == nil {
		return "<none>"
	}

	return dt.Repr()
}
